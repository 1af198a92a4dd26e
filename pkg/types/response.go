package types

// Response é a resposta devolvida ao framework Provider do CDK.
// PhysicalResourceId é sempre o nome do parâmetro.
type Response struct {
	PhysicalResourceID string            `json:"PhysicalResourceId"`
	Data               map[string]string `json:"Data,omitempty"`
}

// Chaves expostas como atributos do recurso (Fn::GetAtt).
const (
	AttributeParameterName = "ParameterName"
	AttributeParameterArn  = "ParameterArn"
)
