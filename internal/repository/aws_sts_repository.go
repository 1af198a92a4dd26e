package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	sts "github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI é o subconjunto do cliente STS usado pelo repositório.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CallerIdentity identifica a conta e a partição em que o processo roda.
type CallerIdentity struct {
	AccountID string
	Partition string
}

// STSRepository encapsula chamadas ao AWS STS.
type STSRepository struct {
	Client STSAPI
}

// GetCallerIdentity busca conta e partição do principal atual.
func (r *STSRepository) GetCallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	out, err := r.Client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity failed: %w", err)
	}

	parsed, err := arn.Parse(aws.ToString(out.Arn))
	if err != nil {
		return nil, fmt.Errorf("parsing caller arn: %w", err)
	}

	return &CallerIdentity{
		AccountID: aws.ToString(out.Account),
		Partition: parsed.Partition,
	}, nil
}
