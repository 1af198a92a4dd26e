package construct

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awskms"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// KeyReference identifica a chave KMS usada para cifrar o valor do parâmetro.
// Use KeyFromKey, KeyFromAlias ou KeyFromAliasName.
type KeyReference interface {
	resolve(scope constructs.Construct) resolvedKey
}

// resolvedKey é o que o construct precisa de uma KeyReference: o ARN da chave
// (para a policy do handler) e o identificador repassado ao PutParameter/Decrypt.
type resolvedKey struct {
	keyArn *string
	keyID  *string
}

type keyRef struct {
	key awskms.IKey
}

// KeyFromKey referencia uma chave (nova ou importada).
func KeyFromKey(key awskms.IKey) KeyReference {
	return keyRef{key: key}
}

func (r keyRef) resolve(constructs.Construct) resolvedKey {
	return resolvedKey{keyArn: r.key.KeyArn(), keyID: r.key.KeyId()}
}

type aliasRef struct {
	alias awskms.IAlias
}

// KeyFromAlias referencia um alias cuja chave alvo é conhecida no app
// (awskms.NewAlias). Para aliases importados por nome, use KeyFromAliasName.
func KeyFromAlias(alias awskms.IAlias) KeyReference {
	return aliasRef{alias: alias}
}

func (r aliasRef) resolve(constructs.Construct) resolvedKey {
	return resolvedKey{keyArn: r.alias.AliasTargetKey().KeyArn(), keyID: r.alias.AliasName()}
}

type aliasNameRef struct {
	name string
}

// KeyFromAliasName referencia um alias existente na conta. A chave alvo é
// resolvida com Key.fromLookup, o que exige account/region explícitos na stack.
func KeyFromAliasName(name string) KeyReference {
	return aliasNameRef{name: name}
}

func (r aliasNameRef) resolve(scope constructs.Construct) resolvedKey {
	key := awskms.Key_FromLookup(scope, jsii.String("Key"), &awskms.KeyLookupOptions{
		AliasName: jsii.String(r.name),
	})
	return resolvedKey{keyArn: key.KeyArn(), keyID: jsii.String(r.name)}
}
