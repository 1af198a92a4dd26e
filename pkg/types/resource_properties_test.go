package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourcePropertiesRedacted(t *testing.T) {
	p := ResourceProperties{Name: "n", Value: "secret"}
	r := p.Redacted()
	assert.Equal(t, "*****", r.Value)
	assert.Equal(t, "secret", p.Value)
	assert.Equal(t, "", ResourceProperties{}.Redacted().Value)
}
