// Package main é a CLI ssparam: cifra valores para commit, verifica blobs e
// sintetiza stacks de SecureStringParameter a partir de um manifesto YAML.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
