package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type decryptFlags struct {
	key   string
	value string
	quiet bool
}

func newDecryptCmd(c *cli) *cobra.Command {
	var opts decryptFlags

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a base64 blob to check it before deploying",
		Long: `Decrypt a base64 KMS blob the same way the handler does. With --quiet
only the result of the check is printed, not the plaintext.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readValue(cmd, opts.value)
			if err != nil {
				return err
			}
			blob, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("value is not valid base64: %w", err)
			}

			repo, err := c.deps.kmsRepo(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			plaintext, err := repo.Decrypt(cmd.Context(), opts.key, blob)
			if err != nil {
				return err
			}
			if len(plaintext) == 0 {
				return fmt.Errorf("decrypted value is empty")
			}

			if opts.quiet {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok (%d bytes)\n", len(plaintext))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(plaintext))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "expected KMS key id, ARN or alias (optional)")
	cmd.Flags().StringVarP(&opts.value, "value", "v", "", "base64 blob (default: stdin)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the plaintext")

	return cmd
}
