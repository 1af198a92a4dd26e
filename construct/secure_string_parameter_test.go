package construct

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awskms"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"

	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

const lookupKeyArnSuffix = ":kms:us-east-1:123456789012:key/1234abcd-12ab-34cd-56ef-1234567890ab"

func testCode() awslambda.Code {
	return awslambda.Code_FromAsset(jsii.String("testdata/handler"), nil)
}

func newStack(withEnv bool) awscdk.Stack {
	app := awscdk.NewApp(nil)
	props := &awscdk.StackProps{}
	if withEnv {
		props.Env = &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		}
	}
	return awscdk.NewStack(app, jsii.String("Stack"), props)
}

func encrypted(stack awscdk.Stack, key KeyReference) *SecureStringParameter {
	return NewSecureStringParameter(stack, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("test"),
		StringValue:   jsii.String("encryptedvalue"),
		ValueType:     dto.ValueTypeEncrypted,
		EncryptionKey: key,
		HandlerCode:   testCode(),
	})
}

func assertKeyPolicy(template assertions.Template, keyResource interface{}) {
	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				map[string]interface{}{
					"Action":   []interface{}{"kms:Decrypt", "kms:Encrypt"},
					"Effect":   "Allow",
					"Resource": keyResource,
				},
			}),
		}),
	})
}

func assertEncryptionKey(template assertions.Template, keyID interface{}) {
	template.HasResourceProperties(jsii.String(ResourceType), map[string]interface{}{
		"Name":          "test",
		"Value":         "encryptedvalue",
		"ValueType":     "encrypted",
		"EncryptionKey": keyID,
	})
}

func lookupKeyArn() map[string]interface{} {
	return map[string]interface{}{
		"Fn::Join": []interface{}{"", []interface{}{
			"arn:",
			map[string]interface{}{"Ref": "AWS::Partition"},
			lookupKeyArnSuffix,
		}},
	}
}

func TestPlaintext(t *testing.T) {
	stack := newStack(false)
	NewSecureStringParameter(stack, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("test"),
		StringValue:   jsii.String("value"),
		ValueType:     dto.ValueTypePlaintext,
		HandlerCode:   testCode(),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String(ResourceType), map[string]interface{}{
		"Name":      "test",
		"Value":     "value",
		"ValueType": "plaintext",
	})
	template.HasResource(jsii.String(ResourceType), map[string]interface{}{
		"DeletionPolicy": "Delete",
	})
	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Handler": "bootstrap",
		"Runtime": "provided.al2023",
	})
}

func TestEncryptedWithNewKey(t *testing.T) {
	stack := newStack(false)
	key := awskms.NewKey(stack, jsii.String("Key"), nil)
	encrypted(stack, KeyFromKey(key))

	template := assertions.Template_FromStack(stack, nil)
	assertEncryptionKey(template, map[string]interface{}{"Ref": assertions.Match_AnyValue()})
	assertKeyPolicy(template, map[string]interface{}{"Fn::GetAtt": assertions.Match_ArrayWith(&[]interface{}{"Arn"})})
}

func TestEncryptedWithNewAliasAndKey(t *testing.T) {
	stack := newStack(false)
	key := awskms.NewKey(stack, jsii.String("Key"), nil)
	alias := awskms.NewAlias(stack, jsii.String("Alias"), &awskms.AliasProps{
		AliasName: jsii.String("alias/custom"),
		TargetKey: key,
	})
	encrypted(stack, KeyFromAlias(alias))

	template := assertions.Template_FromStack(stack, nil)
	assertEncryptionKey(template, "alias/custom")
	assertKeyPolicy(template, map[string]interface{}{"Fn::GetAtt": assertions.Match_ArrayWith(&[]interface{}{"Arn"})})
}

func TestEncryptedWithNewAliasFromExistingKey(t *testing.T) {
	stack := newStack(true)
	key := awskms.Key_FromLookup(stack, jsii.String("Key"), &awskms.KeyLookupOptions{AliasName: jsii.String("alias/custom")})
	alias := awskms.NewAlias(stack, jsii.String("Alias"), &awskms.AliasProps{
		AliasName: jsii.String("alias/second"),
		TargetKey: key,
	})
	encrypted(stack, KeyFromAlias(alias))

	template := assertions.Template_FromStack(stack, nil)
	assertEncryptionKey(template, "alias/second")
	assertKeyPolicy(template, lookupKeyArn())
}

func TestEncryptedWithExistingKey(t *testing.T) {
	stack := newStack(true)
	key := awskms.Key_FromLookup(stack, jsii.String("Key"), &awskms.KeyLookupOptions{AliasName: jsii.String("alias/custom")})
	encrypted(stack, KeyFromKey(key))

	template := assertions.Template_FromStack(stack, nil)
	assertEncryptionKey(template, "1234abcd-12ab-34cd-56ef-1234567890ab")
	assertKeyPolicy(template, lookupKeyArn())
}

func TestEncryptedWithExistingAlias(t *testing.T) {
	stack := newStack(true)
	encrypted(stack, KeyFromAliasName("alias/custom"))

	template := assertions.Template_FromStack(stack, nil)
	assertEncryptionKey(template, "alias/custom")
	assertKeyPolicy(template, lookupKeyArn())
}

func TestHandlerIsSharedPerStack(t *testing.T) {
	stack := newStack(false)
	first := NewSecureStringParameter(stack, "First", &SecureStringParameterProps{
		StringValue: jsii.String("a"),
		ValueType:   dto.ValueTypePlaintext,
		HandlerCode: testCode(),
	})
	second := NewSecureStringParameter(stack, "Second", &SecureStringParameterProps{
		StringValue: jsii.String("b"),
		ValueType:   dto.ValueTypePlaintext,
	})

	assert.Same(t, first.singletons, second.singletons)
	assert.NotEqual(t, first.ParameterName, second.ParameterName)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String(ResourceType), jsii.Number(2))

	other := newStack(false)
	third := NewSecureStringParameter(other, "Third", &SecureStringParameterProps{
		StringValue: jsii.String("c"),
		ValueType:   dto.ValueTypePlaintext,
		HandlerCode: testCode(),
	})
	assert.NotSame(t, first.singletons, third.singletons)
}

func TestTagsMergeStackTags(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Stack"), &awscdk.StackProps{
		Tags: &map[string]*string{"team": jsii.String("platform"), "env": jsii.String("dev")},
	})
	NewSecureStringParameter(stack, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("/app/secret"),
		StringValue:   jsii.String("value"),
		ValueType:     dto.ValueTypePlaintext,
		Tags:          map[string]*string{"env": jsii.String("prod")},
		HandlerCode:   testCode(),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String(ResourceType), map[string]interface{}{
		"Name": "/app/secret",
		"Tags": map[string]interface{}{"team": "platform", "env": "prod"},
	})
}

func TestTagsOfPropagates(t *testing.T) {
	stack := newStack(false)
	group := constructs.NewConstruct(stack, jsii.String("Secrets"))
	NewSecureStringParameter(group, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("/app/secret"),
		StringValue:   jsii.String("value"),
		ValueType:     dto.ValueTypePlaintext,
		Tags:          map[string]*string{"owner": jsii.String("db")},
		HandlerCode:   testCode(),
	})

	awscdk.Tags_Of(stack).Add(jsii.String("cost-center"), jsii.String("42"), nil)
	awscdk.Tags_Of(group).Add(jsii.String("team"), jsii.String("platform"), nil)

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String(ResourceType), map[string]interface{}{
		"Name": "/app/secret",
		"Tags": map[string]interface{}{"owner": "db", "cost-center": "42", "team": "platform"},
	})
}

func TestTagsOmittedWhenEmpty(t *testing.T) {
	stack := newStack(false)
	NewSecureStringParameter(stack, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("test"),
		StringValue:   jsii.String("value"),
		ValueType:     dto.ValueTypePlaintext,
		HandlerCode:   testCode(),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String(ResourceType), map[string]interface{}{
		"Name": "test",
		"Tags": assertions.Match_Absent(),
	})
}

func TestGrantRead(t *testing.T) {
	stack := newStack(true)
	p := NewSecureStringParameter(stack, "Parameter", &SecureStringParameterProps{
		ParameterName: jsii.String("test"),
		StringValue:   jsii.String("value"),
		ValueType:     dto.ValueTypePlaintext,
		HandlerCode:   testCode(),
	})
	role := awsiam.NewRole(stack, jsii.String("Reader"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
	})
	p.GrantRead(role)

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Action": assertions.Match_ArrayWith(&[]interface{}{"ssm:GetParameter"}),
				}),
			}),
		}),
	})
}

func TestInvalidProps(t *testing.T) {
	tests := []struct {
		name  string
		props *SecureStringParameterProps
	}{
		{name: "nil props"},
		{name: "missing value", props: &SecureStringParameterProps{ValueType: dto.ValueTypePlaintext}},
		{name: "unknown value type", props: &SecureStringParameterProps{StringValue: jsii.String("v"), ValueType: "rot13"}},
		{name: "encrypted without key", props: &SecureStringParameterProps{StringValue: jsii.String("v"), ValueType: dto.ValueTypeEncrypted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, validateProps(tt.props))
		})
	}
	assert.NoError(t, validateProps(&SecureStringParameterProps{StringValue: jsii.String("v"), ValueType: dto.ValueTypePlaintext}))
}
