package service

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/hashicorp/go-hclog"
	"github.com/samber/lo"

	"github.com/raywall/secure-string-parameter/internal/repository"
)

// TagService reconcilia as tags do parâmetro com o conjunto desejado.
type TagService struct {
	SSMRepo *repository.SSMRepository
	Logger  hclog.Logger
}

// Reconcile lista as tags remotas, remove as que não estão em desired e então
// adiciona desired inteiro. Não é atômico: uma falha entre a remoção e a adição
// deixa as tags incompletas até o próximo Update.
func (s *TagService) Reconcile(ctx context.Context, name string, desired map[string]string) error {
	remote, err := s.SSMRepo.ListTags(ctx, name)
	if err != nil {
		return err
	}

	remove, add := DiffTags(remote, desired)

	if len(remove) > 0 {
		s.logger().Debug("removing tags", "name", name, "keys", remove)
		if err := s.SSMRepo.RemoveTags(ctx, name, remove); err != nil {
			return err
		}
	}

	if len(add) > 0 {
		s.logger().Debug("adding tags", "name", name, "count", len(add))
		if err := s.SSMRepo.AddTags(ctx, name, add); err != nil {
			return err
		}
	}
	return nil
}

// DiffTags calcula as chaves a remover (presentes em remote, ausentes em desired,
// na ordem de remote) e as tags a adicionar (desired inteiro, ordenado por chave).
func DiffTags(remote []ssmtypes.Tag, desired map[string]string) ([]string, []ssmtypes.Tag) {
	remove := lo.FilterMap(remote, func(t ssmtypes.Tag, _ int) (string, bool) {
		key := aws.ToString(t.Key)
		if key == "" {
			return "", false
		}
		_, keep := desired[key]
		return key, !keep
	})

	keys := lo.Keys(desired)
	sort.Strings(keys)
	add := lo.Map(keys, func(k string, _ int) ssmtypes.Tag {
		return ssmtypes.Tag{Key: aws.String(k), Value: aws.String(desired[k])}
	})

	return remove, add
}

func (s *TagService) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}
