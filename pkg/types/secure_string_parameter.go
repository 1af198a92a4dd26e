package types

// SecureStringParameter DTO com o que é efetivamente gravado no SSM.
// Value já está em texto claro neste ponto.
type SecureStringParameter struct {
	Name           string
	Value          string
	AllowedPattern string
	Description    string
	Tier           string
	KeyID          string
}
