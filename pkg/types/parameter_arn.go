package types

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// ParameterArn monta o ARN de um parâmetro SSM. Nomes hierárquicos ("/app/db")
// já carregam a barra inicial; nomes simples recebem "parameter/".
func ParameterArn(partition, region, accountID, name string) string {
	resource := "parameter/" + name
	if strings.HasPrefix(name, "/") {
		resource = "parameter" + name
	}
	return arn.ARN{
		Partition: partition,
		Service:   "ssm",
		Region:    region,
		AccountID: accountID,
		Resource:  resource,
	}.String()
}

// ParameterArnFromOwner monta o ARN do parâmetro com partição, região e conta
// de outro ARN do mesmo ambiente (a stack ou a função do evento).
func ParameterArnFromOwner(ownerArn, name string) (string, error) {
	owner, err := arn.Parse(ownerArn)
	if err != nil {
		return "", fmt.Errorf("parsing owner arn: %w", err)
	}
	if owner.Region == "" || owner.AccountID == "" {
		return "", fmt.Errorf("owner arn %q has no region or account", ownerArn)
	}
	return ParameterArn(owner.Partition, owner.Region, owner.AccountID, name), nil
}
