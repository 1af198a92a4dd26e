package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// SSMAPI é o subconjunto do cliente SSM usado pelo repositório (permite mocks).
type SSMAPI interface {
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
	ListTagsForResource(ctx context.Context, params *ssm.ListTagsForResourceInput, optFns ...func(*ssm.Options)) (*ssm.ListTagsForResourceOutput, error)
	AddTagsToResource(ctx context.Context, params *ssm.AddTagsToResourceInput, optFns ...func(*ssm.Options)) (*ssm.AddTagsToResourceOutput, error)
	RemoveTagsFromResource(ctx context.Context, params *ssm.RemoveTagsFromResourceInput, optFns ...func(*ssm.Options)) (*ssm.RemoveTagsFromResourceOutput, error)
}

// SSMRepository encapsula operações de baixo nível do Parameter Store.
type SSMRepository struct {
	Client SSMAPI
}

// PutSecureString cria ou sobrescreve um parâmetro SecureString.
func (r *SSMRepository) PutSecureString(ctx context.Context, p *dto.SecureStringParameter) (int64, error) {
	input := &ssm.PutParameterInput{
		Name:      aws.String(p.Name),
		Value:     aws.String(p.Value),
		Type:      ssmtypes.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	}
	if p.AllowedPattern != "" {
		input.AllowedPattern = aws.String(p.AllowedPattern)
	}
	if p.Description != "" {
		input.Description = aws.String(p.Description)
	}
	if p.Tier != "" {
		input.Tier = ssmtypes.ParameterTier(p.Tier)
	}
	if p.KeyID != "" {
		input.KeyId = aws.String(p.KeyID)
	}

	out, err := r.Client.PutParameter(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("PutParameter failed: %w", err)
	}
	return out.Version, nil
}

// DeleteParameter deleta o parâmetro. Retorna false, nil se ele já não existia.
func (r *SSMRepository) DeleteParameter(ctx context.Context, name string) (bool, error) {
	_, err := r.Client.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(name)})
	if err != nil {
		var nf *ssmtypes.ParameterNotFound
		if errors.As(err, &nf) || isAPIErrorCode(err, "ParameterNotFound") {
			return false, nil
		}
		return false, fmt.Errorf("DeleteParameter failed: %w", err)
	}
	return true, nil
}

// ListTags devolve as tags atuais do parâmetro, na ordem em que a API as retorna.
func (r *SSMRepository) ListTags(ctx context.Context, name string) ([]ssmtypes.Tag, error) {
	out, err := r.Client.ListTagsForResource(ctx, &ssm.ListTagsForResourceInput{
		ResourceType: ssmtypes.ResourceTypeForTaggingParameter,
		ResourceId:   aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("ListTagsForResource failed: %w", err)
	}
	return out.TagList, nil
}

// RemoveTags remove as chaves informadas do parâmetro.
func (r *SSMRepository) RemoveTags(ctx context.Context, name string, keys []string) error {
	_, err := r.Client.RemoveTagsFromResource(ctx, &ssm.RemoveTagsFromResourceInput{
		ResourceType: ssmtypes.ResourceTypeForTaggingParameter,
		ResourceId:   aws.String(name),
		TagKeys:      keys,
	})
	if err != nil {
		return fmt.Errorf("RemoveTagsFromResource failed: %w", err)
	}
	return nil
}

// AddTags adiciona (ou sobrescreve) tags no parâmetro.
func (r *SSMRepository) AddTags(ctx context.Context, name string, tags []ssmtypes.Tag) error {
	_, err := r.Client.AddTagsToResource(ctx, &ssm.AddTagsToResourceInput{
		ResourceType: ssmtypes.ResourceTypeForTaggingParameter,
		ResourceId:   aws.String(name),
		Tags:         tags,
	})
	if err != nil {
		return fmt.Errorf("AddTagsToResource failed: %w", err)
	}
	return nil
}
