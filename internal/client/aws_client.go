package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	kms "github.com/aws/aws-sdk-go-v2/service/kms"
	ssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	sts "github.com/aws/aws-sdk-go-v2/service/sts"
)

// AWSClient contém os clientes AWS usados pelo handler e pela CLI.
type AWSClient struct {
	Config aws.Config
	KMS    *kms.Client
	SSM    *ssm.Client
	STS    *sts.Client
	Region string
}

// New cria um novo AWSClient para a região fornecida.
// Região vazia usa a cadeia padrão do SDK (AWS_REGION, profile, IMDS).
func New(ctx context.Context, region string) (*AWSClient, error) {
	var cfg aws.Config
	var err error
	if strings.TrimSpace(region) == "" {
		cfg, err = config.LoadDefaultConfig(ctx)
	} else {
		cfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(region))
	}
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &AWSClient{
		Config: cfg,
		KMS:    kms.NewFromConfig(cfg),
		SSM:    ssm.NewFromConfig(cfg),
		STS:    sts.NewFromConfig(cfg),
		Region: cfg.Region,
	}, nil
}
