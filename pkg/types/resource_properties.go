package types

// ResourceProperties DTO com as propriedades do recurso Custom::SecureStringParameter,
// exatamente como chegam do CloudFormation (PascalCase).
type ResourceProperties struct {
	Name           string            `mapstructure:"Name" json:"Name"`
	Value          string            `mapstructure:"Value" json:"Value"`
	ValueType      ValueType         `mapstructure:"ValueType" json:"ValueType"`
	AllowedPattern string            `mapstructure:"AllowedPattern" json:"AllowedPattern,omitempty"`
	Description    string            `mapstructure:"Description" json:"Description,omitempty"`
	Tier           string            `mapstructure:"Tier" json:"Tier,omitempty"`
	EncryptionKey  string            `mapstructure:"EncryptionKey" json:"EncryptionKey,omitempty"`
	Tags           map[string]string `mapstructure:"Tags" json:"Tags,omitempty"`
}

// Redacted devolve uma cópia segura para log, sem o valor do segredo.
func (p ResourceProperties) Redacted() ResourceProperties {
	if p.Value != "" {
		p.Value = "*****"
	}
	return p
}
