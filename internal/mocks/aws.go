// Package mocks contém mocks testify/mock dos clientes AWS usados pelos repositórios.
package mocks

import (
	"context"

	kms "github.com/aws/aws-sdk-go-v2/service/kms"
	ssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	sts "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
)

// SSMClient implementa repository.SSMAPI.
type SSMClient struct {
	mock.Mock
}

func (m *SSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssm.PutParameterOutput)
	return out, args.Error(1)
}

func (m *SSMClient) DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssm.DeleteParameterOutput)
	return out, args.Error(1)
}

func (m *SSMClient) ListTagsForResource(ctx context.Context, params *ssm.ListTagsForResourceInput, optFns ...func(*ssm.Options)) (*ssm.ListTagsForResourceOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssm.ListTagsForResourceOutput)
	return out, args.Error(1)
}

func (m *SSMClient) AddTagsToResource(ctx context.Context, params *ssm.AddTagsToResourceInput, optFns ...func(*ssm.Options)) (*ssm.AddTagsToResourceOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssm.AddTagsToResourceOutput)
	return out, args.Error(1)
}

func (m *SSMClient) RemoveTagsFromResource(ctx context.Context, params *ssm.RemoveTagsFromResourceInput, optFns ...func(*ssm.Options)) (*ssm.RemoveTagsFromResourceOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssm.RemoveTagsFromResourceOutput)
	return out, args.Error(1)
}

// KMSClient implementa repository.KMSAPI.
type KMSClient struct {
	mock.Mock
}

func (m *KMSClient) Encrypt(ctx context.Context, params *kms.EncryptInput, optFns ...func(*kms.Options)) (*kms.EncryptOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*kms.EncryptOutput)
	return out, args.Error(1)
}

func (m *KMSClient) Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*kms.DecryptOutput)
	return out, args.Error(1)
}

// STSClient implementa repository.STSAPI.
type STSClient struct {
	mock.Mock
}

func (m *STSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}
