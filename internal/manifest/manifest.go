// Package manifest lê o arquivo YAML usado pelo comando `ssparam synth`.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ErrInvalidManifest indica um manifesto que não pode ser sintetizado.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest descreve uma stack com os parâmetros a declarar.
//
//	stack:
//	  name: secrets
//	  region: us-east-1
//	parameters:
//	  - id: DatabasePassword
//	    name: /app/db/password
//	    value: AQICAHh...
//	    valueType: encrypted
//	    key:
//	      alias: alias/app
type Manifest struct {
	Stack      Stack       `yaml:"stack"`
	Parameters []Parameter `yaml:"parameters"`
}

// Stack identifica a stack CDK gerada.
type Stack struct {
	Name    string            `yaml:"name"`
	Account string            `yaml:"account"`
	Region  string            `yaml:"region"`
	Tags    map[string]string `yaml:"tags"`
}

// Parameter é um SecureStringParameter do manifesto.
type Parameter struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Value          string            `yaml:"value"`
	ValueType      dto.ValueType     `yaml:"valueType"`
	Description    string            `yaml:"description"`
	AllowedPattern string            `yaml:"allowedPattern"`
	Tier           string            `yaml:"tier"`
	Key            *Key              `yaml:"key"`
	Tags           map[string]string `yaml:"tags"`
}

// Key referencia a chave KMS por ARN ou por alias (exatamente um dos dois).
type Key struct {
	Arn   string `yaml:"arn"`
	Alias string `yaml:"alias"`
}

// Load lê e valida o manifesto em path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodifica e valida um manifesto. valueType ausente vale plaintext.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	for i := range m.Parameters {
		if m.Parameters[i].ValueType == "" {
			m.Parameters[i].ValueType = dto.ValueTypePlaintext
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate verifica as regras que o construct aplicaria com panic.
func (m *Manifest) Validate() error {
	if m.Stack.Name == "" {
		return fmt.Errorf("%w: stack.name is required", ErrInvalidManifest)
	}
	if len(m.Parameters) == 0 {
		return fmt.Errorf("%w: at least one parameter is required", ErrInvalidManifest)
	}

	for i, p := range m.Parameters {
		if p.ID == "" {
			return fmt.Errorf("%w: parameters[%d]: id is required", ErrInvalidManifest, i)
		}
		if p.Value == "" {
			return fmt.Errorf("%w: parameter %q: value is required", ErrInvalidManifest, p.ID)
		}
		if !p.ValueType.Valid() {
			return fmt.Errorf("%w: parameter %q: unknown valueType %q", ErrInvalidManifest, p.ID, p.ValueType)
		}
		if p.ValueType == dto.ValueTypeEncrypted && p.Key == nil {
			return fmt.Errorf("%w: parameter %q: key is required for encrypted values", ErrInvalidManifest, p.ID)
		}
		if p.Key != nil && (p.Key.Arn == "") == (p.Key.Alias == "") {
			return fmt.Errorf("%w: parameter %q: key needs exactly one of arn or alias", ErrInvalidManifest, p.ID)
		}
	}

	if dups := lo.FindDuplicates(lo.Map(m.Parameters, func(p Parameter, _ int) string { return p.ID })); len(dups) > 0 {
		return fmt.Errorf("%w: duplicated parameter ids %v", ErrInvalidManifest, dups)
	}
	return nil
}

// NeedsEnvironment indica se algum parâmetro referencia a chave por alias sem
// que a stack tenha account e region. Aliases são resolvidos com Key.fromLookup,
// que exige ambiente explícito.
func (m *Manifest) NeedsEnvironment() bool {
	if m.Stack.Account != "" && m.Stack.Region != "" {
		return false
	}
	return lo.SomeBy(m.Parameters, func(p Parameter) bool {
		return p.Key != nil && p.Key.Alias != ""
	})
}

// FillEnvironment completa account e region ausentes da stack.
func (m *Manifest) FillEnvironment(account, region string) error {
	if m.Stack.Account == "" {
		m.Stack.Account = account
	}
	if m.Stack.Region == "" {
		m.Stack.Region = region
	}
	if m.NeedsEnvironment() {
		return fmt.Errorf("%w: key alias requires stack.account and stack.region", ErrInvalidManifest)
	}
	return nil
}
