package service

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/raywall/secure-string-parameter/internal/repository"
	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ParameterState é o resultado de um Create/Update bem-sucedido.
type ParameterState struct {
	Name    string
	Version int64
}

// SecureStringService Orquestrador do ciclo de vida do parâmetro
type SecureStringService struct {
	ValueService *ValueService
	TagService   *TagService
	SSMRepo      *repository.SSMRepository
	Logger       hclog.Logger
}

// EnsureParameter orquestra Create e Update: decifra, grava e reconcilia tags,
// nessa ordem e sem paralelismo.
func (s *SecureStringService) EnsureParameter(ctx context.Context, props *dto.ResourceProperties) (*ParameterState, error) {
	if props.Name == "" {
		return nil, ErrMissingName
	}
	log := s.logger().With("name", props.Name, "value_type", string(props.ValueType))

	// 1. RESOLVER VALOR (plaintext ou KMS Decrypt)
	value, err := s.ValueService.Resolve(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("resolving value: %w", err)
	}

	// 2. GRAVAR PARÂMETRO
	version, err := s.SSMRepo.PutSecureString(ctx, &dto.SecureStringParameter{
		Name:           props.Name,
		Value:          value,
		AllowedPattern: props.AllowedPattern,
		Description:    props.Description,
		Tier:           props.Tier,
		KeyID:          props.EncryptionKey,
	})
	if err != nil {
		log.Error("put parameter failed", "code", repository.APIErrorCode(err))
		return nil, err
	}
	log.Info("parameter stored", "version", version)

	// 3. RECONCILIAR TAGS
	if err := s.TagService.Reconcile(ctx, props.Name, props.Tags); err != nil {
		log.Error("tag reconciliation failed", "code", repository.APIErrorCode(err))
		return nil, fmt.Errorf("reconciling tags: %w", err)
	}

	// 4. ESTADO FINAL
	return &ParameterState{Name: props.Name, Version: version}, nil
}

// DeleteParameter remove o parâmetro. Parâmetro inexistente não é erro.
func (s *SecureStringService) DeleteParameter(ctx context.Context, name string) error {
	if name == "" {
		return ErrMissingName
	}

	deleted, err := s.SSMRepo.DeleteParameter(ctx, name)
	if err != nil {
		s.logger().Error("delete parameter failed", "name", name, "code", repository.APIErrorCode(err))
		return err
	}
	if !deleted {
		s.logger().Warn("parameter already absent", "name", name)
		return nil
	}
	s.logger().Info("parameter deleted", "name", name)
	return nil
}

func (s *SecureStringService) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}
