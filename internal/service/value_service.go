package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/raywall/secure-string-parameter/internal/repository"
	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ValueService resolve o valor em texto claro a ser gravado no SSM.
type ValueService struct {
	KMSRepo *repository.KMSRepository
	Logger  hclog.Logger
}

// Resolve devolve o valor verbatim (plaintext) ou decifrado pelo KMS (encrypted).
func (s *ValueService) Resolve(ctx context.Context, props *dto.ResourceProperties) (string, error) {
	switch props.ValueType {
	case dto.ValueTypePlaintext:
		return props.Value, nil
	case dto.ValueTypeEncrypted:
		return s.decrypt(ctx, props.Value, props.EncryptionKey)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownValueType, props.ValueType)
	}
}

func (s *ValueService) decrypt(ctx context.Context, value, keyID string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}

	plaintext, err := s.KMSRepo.Decrypt(ctx, keyID, blob)
	if err != nil {
		s.logger().Error("kms decrypt failed", "key_id", keyID, "code", repository.APIErrorCode(err))
		return "", err
	}
	if len(plaintext) == 0 {
		return "", ErrEmptyPlaintext
	}

	s.logger().Debug("value decrypted", "key_id", keyID)
	return string(plaintext), nil
}

func (s *ValueService) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}
