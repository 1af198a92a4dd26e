package main

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/raywall/secure-string-parameter/internal/client"
	"github.com/raywall/secure-string-parameter/internal/config"
	"github.com/raywall/secure-string-parameter/internal/logging"
	"github.com/raywall/secure-string-parameter/internal/repository"
)

// deps são as dependências externas dos comandos, substituídas nos testes.
type deps struct {
	loadConfig func() (config.Config, error)
	kmsRepo    func(ctx context.Context, cfg config.Config) (*repository.KMSRepository, error)

	// environment devolve conta e região das credenciais atuais.
	environment func(ctx context.Context, cfg config.Config) (account, region string, err error)
}

func defaultDeps() deps {
	return deps{
		loadConfig: func() (config.Config, error) {
			return config.LoadWithDotenv(".env")
		},
		kmsRepo: func(ctx context.Context, cfg config.Config) (*repository.KMSRepository, error) {
			c, err := client.New(ctx, cfg.Region)
			if err != nil {
				return nil, err
			}
			return &repository.KMSRepository{Client: c.KMS}, nil
		},
		environment: func(ctx context.Context, cfg config.Config) (string, string, error) {
			c, err := client.New(ctx, cfg.Region)
			if err != nil {
				return "", "", err
			}
			id, err := (&repository.STSRepository{Client: c.STS}).GetCallerIdentity(ctx)
			if err != nil {
				return "", "", err
			}
			return id.AccountID, c.Region, nil
		},
	}
}

// cli guarda o estado compartilhado entre os subcomandos.
type cli struct {
	deps   deps
	cfg    config.Config
	logger hclog.Logger
	region string
}

func newRootCmd(d deps) *cobra.Command {
	c := &cli{deps: d}

	rootCmd := &cobra.Command{
		Use:   "ssparam",
		Short: "SecureStringParameter toolkit",
		Long: `ssparam prepares values for the Custom::SecureStringParameter resource.

Encrypt a secret with KMS and commit the resulting blob, verify a blob
before deploying it, or synthesise a CDK app from a YAML manifest.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.deps.loadConfig()
			if err != nil {
				return err
			}
			if c.region != "" {
				cfg.Region = c.region
			}
			c.cfg = cfg
			c.logger = logging.NewWithOutput("ssparam", cfg, cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.region, "region", "", "AWS region (default: AWS_REGION or the SDK chain)")

	rootCmd.AddCommand(newEncryptCmd(c))
	rootCmd.AddCommand(newDecryptCmd(c))
	rootCmd.AddCommand(newSynthCmd(c))

	return rootCmd
}
