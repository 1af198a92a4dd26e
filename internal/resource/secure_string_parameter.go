package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"

	"github.com/raywall/secure-string-parameter/internal/models"
	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ResourceType é o tipo CloudFormation do recurso.
const ResourceType = "Custom::SecureStringParameter"

// ErrUnknownRequestType indica um RequestType fora de Create|Update|Delete.
var ErrUnknownRequestType = errors.New("unknown request type")

// ErrNoOwnerArn indica um evento sem StackId, ServiceToken ou ARN da função
// que permita montar o ARN do parâmetro.
var ErrNoOwnerArn = errors.New("no arn to derive the parameter arn from")

// Dispatch (Controller) - Mapeia o evento e chama o Service
func Dispatch(ctx context.Context, bundle *models.ServiceBundle, event cfn.Event, logger hclog.Logger) (*dto.Response, error) {
	if bundle == nil || bundle.ParameterService == nil {
		return nil, fmt.Errorf("parameter service not configured")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch event.RequestType {
	case cfn.RequestCreate, cfn.RequestUpdate:
		return resourceEnsure(ctx, bundle, event)
	case cfn.RequestDelete:
		return resourceDelete(ctx, bundle, event, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, event.RequestType)
	}
}

// resourceEnsure (Controller) - Create e Update têm a mesma semântica (upsert)
func resourceEnsure(ctx context.Context, bundle *models.ServiceBundle, event cfn.Event) (*dto.Response, error) {
	props, err := DecodeProperties(event.ResourceProperties)
	if err != nil {
		return nil, err
	}

	// ARN resolvido antes de qualquer escrita e sem chamadas de rede
	arn, err := parameterArn(ctx, event, props.Name)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", event.RequestType, err)
	}

	state, err := bundle.ParameterService.EnsureParameter(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", event.RequestType, err)
	}

	return &dto.Response{
		PhysicalResourceID: state.Name,
		Data: map[string]string{
			dto.AttributeParameterName: state.Name,
			dto.AttributeParameterArn:  arn,
		},
	}, nil
}

// parameterArn usa a partição, região e conta do primeiro ARN válido entre o
// StackId, o ARN da função invocada e o ServiceToken.
func parameterArn(ctx context.Context, event cfn.Event, name string) (string, error) {
	owners := []string{event.StackID}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		owners = append(owners, lc.InvokedFunctionArn)
	}
	if token, ok := event.ResourceProperties["ServiceToken"].(string); ok {
		owners = append(owners, token)
	}

	for _, owner := range owners {
		if owner == "" {
			continue
		}
		if arn, err := dto.ParameterArnFromOwner(owner, name); err == nil {
			return arn, nil
		}
	}
	return "", ErrNoOwnerArn
}

// resourceDelete (Controller) - Sem KMS e sem tags
func resourceDelete(ctx context.Context, bundle *models.ServiceBundle, event cfn.Event, logger hclog.Logger) (*dto.Response, error) {
	name := event.PhysicalResourceID
	props, err := DecodeProperties(event.ResourceProperties)
	switch {
	case err != nil:
		logger.Warn("could not decode properties on delete, using physical id", "error", err)
	case props.Name != "":
		name = props.Name
	}

	if err := bundle.ParameterService.DeleteParameter(ctx, name); err != nil {
		return nil, fmt.Errorf("Delete failed: %w", err)
	}
	return &dto.Response{PhysicalResourceID: name}, nil
}

// DecodeProperties converte as ResourceProperties recebidas do CloudFormation.
// Chaves desconhecidas (ServiceToken) são ignoradas; CloudFormation entrega
// escalares como string, então a decodificação é fracamente tipada.
func DecodeProperties(raw map[string]interface{}) (*dto.ResourceProperties, error) {
	var props dto.ResourceProperties
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &props,
	})
	if err != nil {
		return nil, fmt.Errorf("building properties decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding resource properties: %w", err)
	}
	return &props, nil
}
