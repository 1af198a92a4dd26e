package main

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awskms"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/raywall/secure-string-parameter/construct"
	"github.com/raywall/secure-string-parameter/internal/manifest"
)

type synthFlags struct {
	file   string
	outdir string
}

func newSynthCmd(c *cli) *cobra.Command {
	var opts synthFlags

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesise a CDK app from a parameters manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(opts.file)
			if err != nil {
				return err
			}
			if m.NeedsEnvironment() {
				account, region, err := c.deps.environment(cmd.Context(), c.cfg)
				if err != nil {
					return fmt.Errorf("resolving stack environment: %w", err)
				}
				if err := m.FillEnvironment(account, region); err != nil {
					return err
				}
				c.logger.Debug("stack environment resolved", "account", m.Stack.Account, "region", m.Stack.Region)
			}

			app := awscdk.NewApp(&awscdk.AppProps{Outdir: jsii.String(opts.outdir)})
			buildStack(app, m)
			assembly := app.Synth(nil)

			c.logger.Info("app synthesised", "stack", m.Stack.Name, "parameters", len(m.Parameters), "outdir", *assembly.Directory())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "parameters.yaml", "manifest file")
	cmd.Flags().StringVarP(&opts.outdir, "outdir", "o", "cdk.out", "cloud assembly output directory")

	return cmd
}

// buildStack declara no app a stack e os parâmetros do manifesto.
func buildStack(app awscdk.App, m *manifest.Manifest) awscdk.Stack {
	props := &awscdk.StackProps{}
	if m.Stack.Account != "" || m.Stack.Region != "" {
		props.Env = &awscdk.Environment{}
		if m.Stack.Account != "" {
			props.Env.Account = jsii.String(m.Stack.Account)
		}
		if m.Stack.Region != "" {
			props.Env.Region = jsii.String(m.Stack.Region)
		}
	}
	if len(m.Stack.Tags) > 0 {
		props.Tags = toStringPtrMap(m.Stack.Tags)
	}

	stack := awscdk.NewStack(app, jsii.String(m.Stack.Name), props)

	for _, p := range m.Parameters {
		construct.NewSecureStringParameter(stack, p.ID, parameterProps(stack, p))
	}
	return stack
}

func parameterProps(stack awscdk.Stack, p manifest.Parameter) *construct.SecureStringParameterProps {
	props := &construct.SecureStringParameterProps{
		StringValue: jsii.String(p.Value),
		ValueType:   p.ValueType,
		Tier:        awsssm.ParameterTier(p.Tier),
	}
	if p.Name != "" {
		props.ParameterName = jsii.String(p.Name)
	}
	if p.Description != "" {
		props.Description = jsii.String(p.Description)
	}
	if p.AllowedPattern != "" {
		props.AllowedPattern = jsii.String(p.AllowedPattern)
	}
	if len(p.Tags) > 0 {
		props.Tags = *toStringPtrMap(p.Tags)
	}

	if p.Key != nil {
		switch {
		case p.Key.Arn != "":
			key := awskms.Key_FromKeyArn(stack, jsii.String(p.ID+"Key"), jsii.String(p.Key.Arn))
			props.EncryptionKey = construct.KeyFromKey(key)
		case p.Key.Alias != "":
			props.EncryptionKey = construct.KeyFromAliasName(p.Key.Alias)
		}
	}
	return props
}

func toStringPtrMap(in map[string]string) *map[string]*string {
	out := lo.MapValues(in, func(v string, _ string) *string { return jsii.String(v) })
	return &out
}
