package types

// ValueType indica como o campo Value das propriedades deve ser interpretado.
type ValueType string

const (
	// ValueTypePlaintext: o valor é gravado no SSM como recebido.
	ValueTypePlaintext ValueType = "plaintext"
	// ValueTypeEncrypted: o valor é um blob KMS em base64 e é decifrado antes da gravação.
	ValueTypeEncrypted ValueType = "encrypted"
)

// Valid reporta se o tipo é um dos valores conhecidos.
func (v ValueType) Valid() bool {
	return v == ValueTypePlaintext || v == ValueTypeEncrypted
}
