package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/raywall/secure-string-parameter/internal/config"
)

// New cria o logger raiz do processo a partir da configuração.
func New(name string, cfg config.Config) hclog.Logger {
	return NewWithOutput(name, cfg, os.Stderr)
}

// NewWithOutput é como New, mas escrevendo em w.
func NewWithOutput(name string, cfg config.Config, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      cfg.LogLevel,
		JSONFormat: cfg.LogJSON,
		Output:     w,
	})
}
