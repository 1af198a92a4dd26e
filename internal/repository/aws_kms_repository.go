package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	kms "github.com/aws/aws-sdk-go-v2/service/kms"
)

// KMSAPI é o subconjunto do cliente KMS usado pelo repositório.
type KMSAPI interface {
	Encrypt(ctx context.Context, params *kms.EncryptInput, optFns ...func(*kms.Options)) (*kms.EncryptOutput, error)
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// KMSRepository encapsula chamadas ao AWS KMS.
type KMSRepository struct {
	Client KMSAPI
}

// Decrypt decifra um blob. keyID é opcional: o KMS infere a chave a partir do
// próprio ciphertext, mas informá-la restringe a decifragem àquela chave.
func (r *KMSRepository) Decrypt(ctx context.Context, keyID string, ciphertext []byte) ([]byte, error) {
	input := &kms.DecryptInput{CiphertextBlob: ciphertext}
	if keyID != "" {
		input.KeyId = aws.String(keyID)
	}

	out, err := r.Client.Decrypt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("Decrypt failed: %w", err)
	}
	return out.Plaintext, nil
}

// Encrypt cifra plaintext com a chave informada (id, ARN ou alias).
func (r *KMSRepository) Encrypt(ctx context.Context, keyID string, plaintext []byte) ([]byte, error) {
	out, err := r.Client.Encrypt(ctx, &kms.EncryptInput{
		KeyId:     aws.String(keyID),
		Plaintext: plaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("Encrypt failed: %w", err)
	}
	return out.CiphertextBlob, nil
}
