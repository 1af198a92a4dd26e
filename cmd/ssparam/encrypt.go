package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type encryptFlags struct {
	key   string
	value string
}

func newEncryptCmd(c *cli) *cobra.Command {
	var opts encryptFlags

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a value with KMS and print the base64 blob",
		Long: `Encrypt a value with KMS and print the base64 ciphertext, ready to be
used as the value of an encrypted SecureStringParameter.

The value is read from --value or, when omitted, from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := readValue(cmd, opts.value)
			if err != nil {
				return err
			}
			if plaintext == "" {
				return fmt.Errorf("empty value")
			}

			repo, err := c.deps.kmsRepo(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			blob, err := repo.Encrypt(cmd.Context(), opts.key, []byte(plaintext))
			if err != nil {
				return err
			}

			c.logger.Debug("value encrypted", "key", opts.key, "bytes", len(blob))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(blob))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "KMS key id, ARN or alias")
	cmd.Flags().StringVarP(&opts.value, "value", "v", "", "value to encrypt (default: stdin)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// readValue devolve flag ou, se vazia, o stdin sem a quebra de linha final.
func readValue(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
