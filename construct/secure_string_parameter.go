// Package construct declara o SecureStringParameter para apps CDK em Go.
//
// O construct gera um recurso Custom::SecureStringParameter atendido pelo
// handler deste repositório (main.go), publicado uma única vez por stack
// junto com o Provider do framework de custom resources.
package construct

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/aws-cdk-go/awscdk/v2/customresources"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/google/uuid"

	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ResourceType é o tipo CloudFormation gerado pelo construct.
const ResourceType = "Custom::SecureStringParameter"

// EnvHandlerAsset sobrescreve o diretório do binário do handler (bootstrap).
const EnvHandlerAsset = "SECURE_STRING_PARAMETER_HANDLER_ASSET"

// DefaultHandlerAsset é o diretório padrão do binário do handler.
const DefaultHandlerAsset = "dist/handler"

// SecureStringParameterProps configura o SecureStringParameter.
type SecureStringParameterProps struct {
	// Valor do parâmetro. Com ValueTypeEncrypted, um blob KMS em base64.
	StringValue *string
	// Como StringValue deve ser interpretado.
	ValueType dto.ValueType
	// Chave usada para cifrar o parâmetro. Obrigatória com ValueTypeEncrypted;
	// sem ela, o SSM usa alias/aws/ssm.
	EncryptionKey KeyReference
	// Nome do parâmetro. Padrão: um UUID.
	ParameterName  *string
	Description    *string
	AllowedPattern *string
	Tier           awsssm.ParameterTier
	// Padrão: RemovalPolicy_DESTROY.
	RemovalPolicy awscdk.RemovalPolicy
	// Tags do parâmetro, somadas às tags da stack (as explícitas prevalecem).
	Tags map[string]*string
	// Código do handler. Padrão: asset em DefaultHandlerAsset. Só a primeira
	// instância de cada stack é considerada.
	HandlerCode awslambda.Code
}

// SecureStringParameter cria um parâmetro SSM SecureString cujo valor pode vir
// cifrado pelo KMS, e portanto versionado junto com o código.
type SecureStringParameter struct {
	constructs.Construct

	ParameterName string
	ParameterArn  *string
	ParameterType string
	StringValue   *string
	ValueType     dto.ValueType
	EncryptionKey KeyReference

	tags            awscdk.TagManager
	resource        awscdk.CustomResource
	singletons      *stackSingletons
	stringParameter awsssm.IStringParameter
}

var _ awscdk.ITaggable = (*SecureStringParameter)(nil)

// NewSecureStringParameter declara o parâmetro. Propriedades inválidas causam
// panic durante a síntese, como nos demais constructs.
func NewSecureStringParameter(scope constructs.Construct, id string, props *SecureStringParameterProps) *SecureStringParameter {
	if err := validateProps(props); err != nil {
		panic(fmt.Sprintf("invalid SecureStringParameter %q: %v", id, err))
	}

	name := uuid.NewString()
	if props.ParameterName != nil {
		name = *props.ParameterName
	}

	p := &SecureStringParameter{
		ParameterName: name,
		ParameterType: "SecureString",
		StringValue:   props.StringValue,
		ValueType:     props.ValueType,
		EncryptionKey: props.EncryptionKey,
	}
	// _Override registra p no runtime: Tags() passa a ser visto como ITaggable
	// pelo aspect de Tags.of.
	constructs.NewConstruct_Override(p, scope, jsii.String(id))
	this := p.Construct
	stack := awscdk.Stack_Of(this)

	p.ParameterArn = parameterArn(stack, name)
	p.tags = awscdk.NewTagManager(awscdk.TagType_MAP, jsii.String(ResourceType), explicitTags(props.Tags), nil)

	// 1. HANDLER + PROVIDER (um par por stack)
	p.singletons = singletons.lookupOrInsert(stack, func(stack awscdk.Stack) *stackSingletons {
		return newStackSingletons(stack, props.HandlerCode)
	})

	// 2. PERMISSÃO NA CHAVE
	var keyID *string
	if props.EncryptionKey != nil {
		key := props.EncryptionKey.resolve(this)
		keyID = key.keyID
		p.singletons.handler.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Effect:    awsiam.Effect_ALLOW,
			Resources: &[]*string{key.keyArn},
			Actions:   jsii.Strings("kms:Decrypt", "kms:Encrypt"),
		}))
	}

	// 3. CUSTOM RESOURCE
	removalPolicy := props.RemovalPolicy
	if removalPolicy == "" {
		removalPolicy = awscdk.RemovalPolicy_DESTROY
	}
	p.resource = awscdk.NewCustomResource(this, jsii.String("Resource"), &awscdk.CustomResourceProps{
		ServiceToken:         p.singletons.provider.ServiceToken(),
		ResourceType:         jsii.String(ResourceType),
		RemovalPolicy:        removalPolicy,
		Properties:           resourceProperties(stack, p.tags, name, keyID, props),
		PascalCaseProperties: jsii.Bool(true),
	})

	return p
}

// Tags é o TagManager do parâmetro (awscdk.ITaggable).
func (p *SecureStringParameter) Tags() awscdk.TagManager {
	return p.tags
}

// HandlerFunction devolve a função compartilhada que atende os eventos da stack.
func (p *SecureStringParameter) HandlerFunction() awslambda.IFunction {
	return p.singletons.handler
}

// AttrParameterArn é o ARN devolvido pelo handler (Fn::GetAtt).
func (p *SecureStringParameter) AttrParameterArn() *string {
	return p.resource.GetAttString(jsii.String(dto.AttributeParameterArn))
}

// AsStringParameter devolve o parâmetro como um awsssm.IStringParameter nativo.
func (p *SecureStringParameter) AsStringParameter() awsssm.IStringParameter {
	if p.stringParameter == nil {
		p.stringParameter = awsssm.StringParameter_FromSecureStringParameterAttributes(p.Construct, jsii.String("StringParameter"), &awsssm.SecureStringParameterAttributes{
			ParameterName: jsii.String(p.ParameterName),
		})
	}
	return p.stringParameter
}

// GrantRead concede leitura do parâmetro ao grantee.
func (p *SecureStringParameter) GrantRead(grantee awsiam.IGrantable) awsiam.Grant {
	return p.AsStringParameter().GrantRead(grantee)
}

// GrantWrite concede escrita do parâmetro ao grantee.
func (p *SecureStringParameter) GrantWrite(grantee awsiam.IGrantable) awsiam.Grant {
	return p.AsStringParameter().GrantWrite(grantee)
}

func validateProps(props *SecureStringParameterProps) error {
	if props == nil {
		return fmt.Errorf("props are required")
	}
	if props.StringValue == nil {
		return fmt.Errorf("StringValue is required")
	}
	if !props.ValueType.Valid() {
		return fmt.Errorf("unknown ValueType %q", props.ValueType)
	}
	if props.ValueType == dto.ValueTypeEncrypted && props.EncryptionKey == nil {
		return fmt.Errorf("EncryptionKey is required when ValueType is %q", dto.ValueTypeEncrypted)
	}
	return nil
}

func newStackSingletons(stack awscdk.Stack, code awslambda.Code) *stackSingletons {
	if code == nil {
		code = awslambda.Code_FromAsset(jsii.String(handlerAssetPath()), nil)
	}

	handler := awslambda.NewFunction(stack, jsii.String(handlerID), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		Handler:      jsii.String("bootstrap"),
		Code:         code,
		Timeout:      awscdk.Duration_Minutes(jsii.Number(1)),
		InitialPolicy: &[]awsiam.PolicyStatement{
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Effect: awsiam.Effect_ALLOW,
				// "*" para suportar troca de nome do parâmetro
				Resources: jsii.Strings("*"),
				Actions: jsii.Strings(
					"ssm:PutParameter",
					"ssm:DeleteParameter",
					"ssm:GetParameters",
					"ssm:ListTagsForResource",
					"ssm:AddTagsToResource",
					"ssm:RemoveTagsFromResource",
				),
			}),
		},
		LogRetention: awslogs.RetentionDays_ONE_WEEK,
	})

	provider := customresources.NewProvider(stack, jsii.String(providerID), &customresources.ProviderProps{
		OnEventHandler: handler,
		LogRetention:   awslogs.RetentionDays_ONE_WEEK,
	})

	return &stackSingletons{stack: stack, handler: handler, provider: provider}
}

func handlerAssetPath() string {
	if v := strings.TrimSpace(os.Getenv(EnvHandlerAsset)); v != "" {
		return v
	}
	return DefaultHandlerAsset
}

// resourceProperties monta as propriedades em camelCase; o CustomResource as
// converte para PascalCase, formato lido pelo handler.
func resourceProperties(stack awscdk.Stack, tags awscdk.TagManager, name string, keyID *string, props *SecureStringParameterProps) *map[string]interface{} {
	properties := map[string]interface{}{
		"name":      jsii.String(name),
		"value":     props.StringValue,
		"valueType": jsii.String(string(props.ValueType)),
		"tags":      awscdk.Lazy_Any(&tagsProducer{stack: stack, tags: tags}, nil),
	}
	if props.AllowedPattern != nil {
		properties["allowedPattern"] = props.AllowedPattern
	}
	if props.Description != nil {
		properties["description"] = props.Description
	}
	if props.Tier != "" {
		properties["tier"] = jsii.String(string(props.Tier))
	}
	if keyID != nil {
		properties["encryptionKey"] = keyID
	}
	return &properties
}

// tagsProducer resolve as tags na síntese, depois que os aspects de Tags.of
// já rodaram.
type tagsProducer struct {
	stack awscdk.Stack
	tags  awscdk.TagManager
}

// Produce soma as tags da stack (StackProps.Tags) às do TagManager, que
// prevalecem. Sem tags, a propriedade é omitida.
func (t *tagsProducer) Produce() interface{} {
	merged := make(map[string]*string)
	if stackTags := t.stack.Tags().TagValues(); stackTags != nil {
		for k, v := range *stackTags {
			merged[k] = v
		}
	}
	if tagValues := t.tags.TagValues(); tagValues != nil {
		for k, v := range *tagValues {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func explicitTags(tags map[string]*string) interface{} {
	if len(tags) == 0 {
		return nil
	}
	return &tags
}

func parameterArn(stack awscdk.Stack, name string) *string {
	return stack.FormatArn(&awscdk.ArnComponents{
		Service:      jsii.String("ssm"),
		Resource:     jsii.String("parameter"),
		ResourceName: jsii.String(strings.TrimPrefix(name, "/")),
		ArnFormat:    awscdk.ArnFormat_SLASH_RESOURCE_NAME,
	})
}
