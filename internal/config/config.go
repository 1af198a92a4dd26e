package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
)

// Variáveis de ambiente lidas pelo handler e pela CLI.
const (
	EnvRegion   = "AWS_REGION"
	EnvLogLevel = "LOG_LEVEL"
	EnvLogJSON  = "LOG_JSON"
)

const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true
)

// Config contém a configuração do processo (Lambda ou CLI).
type Config struct {
	Region   string
	LogLevel hclog.Level
	LogJSON  bool
}

// Load lê a configuração das variáveis de ambiente.
// Região vazia delega a resolução ao LoadDefaultConfig do SDK.
func Load() (Config, error) {
	level := hclog.LevelFromString(getEnvOrDefault(EnvLogLevel, DefaultLogLevel))
	if level == hclog.NoLevel {
		return Config{}, fmt.Errorf("%s: invalid log level %q", EnvLogLevel, os.Getenv(EnvLogLevel))
	}

	logJSON := DefaultLogJSON
	if raw := strings.TrimSpace(os.Getenv(EnvLogJSON)); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogJSON, err)
		}
		logJSON = b
	}

	return Config{
		Region:   strings.TrimSpace(os.Getenv(EnvRegion)),
		LogLevel: level,
		LogJSON:  logJSON,
	}, nil
}

// LoadWithDotenv carrega arquivos .env (se existirem) antes de ler o ambiente.
// Usado apenas pela CLI; na Lambda o ambiente vem da função.
func LoadWithDotenv(files ...string) (Config, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("loading dotenv: %w", err)
		}
	}
	return Load()
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}
