// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/terradrive/terradrive/internal/getproviders"
	"github.com/terradrive/terradrive/internal/lifecycle"
	"github.com/terradrive/terradrive/internal/logging"
	"github.com/terradrive/terradrive/internal/params"
	"github.com/terradrive/terradrive/internal/plugin"
	"github.com/terradrive/terradrive/internal/provider"
	"github.com/terradrive/terradrive/internal/states"
)

type options struct {
	providerBinary string
	providerSpec   string // <namespace>/<type>[@version]
	providerConfig string
	stateDir       string
	dynamoTable    string
	resourceType   string
	stateKey       string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "terradrive",
		Short:         "Drive provider plugin resources through their lifecycle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.providerBinary, "provider-binary", "", "path to a provider plugin binary")
	flags.StringVar(&opts.providerSpec, "provider", "", "provider to install from the registry, as <namespace>/<type>[@version]")
	flags.StringVar(&opts.providerConfig, "provider-config", "", "JSON file with the provider's own configuration")
	flags.StringVar(&opts.stateDir, "state-dir", defaultStateDir(), "directory for persisted resource state")
	flags.StringVar(&opts.dynamoTable, "dynamodb-table", "", "DynamoDB table for persisted resource state, instead of --state-dir")
	flags.StringVar(&opts.resourceType, "type", "", "resource type, e.g. local_file")
	flags.StringVar(&opts.stateKey, "key", "", "state key identifying this resource instance (default: the resource type)")

	root.AddCommand(
		newSchemaCommand(opts),
		newImportCommand(opts),
		newReadCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
	)
	return root
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "terradrive", "states")
	}
	return ".terradrive/states"
}

func (o *options) key() string {
	if o.stateKey != "" {
		return o.stateKey
	}
	return o.resourceType
}

// binaryPath returns the provider binary to run, installing it from the
// registry when only --provider was given.
func (o *options) binaryPath(ctx context.Context) (string, error) {
	if o.providerBinary != "" {
		return o.providerBinary, nil
	}
	if o.providerSpec == "" {
		return "", fmt.Errorf("either --provider-binary or --provider is required")
	}

	spec, pinned, _ := strings.Cut(o.providerSpec, "@")
	namespace, providerType, ok := strings.Cut(spec, "/")
	if !ok {
		return "", fmt.Errorf("invalid --provider %q, expected <namespace>/<type>[@version]", o.providerSpec)
	}

	installer := getproviders.NewInstaller(namespace, providerType, pinned, logging.HCLogger())
	if err := installer.Resolve(ctx); err != nil {
		return "", err
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = ".terradrive"
	}
	providerDir := filepath.Join(cacheDir, "terradrive", "providers", namespace, providerType, installer.Version)
	if err := os.MkdirAll(providerDir, 0o755); err != nil {
		return "", err
	}

	if _, err := installer.Download(ctx, filepath.Join(providerDir, "archive.zip")); err != nil {
		return "", err
	}
	// A previous run may have extracted the binary already.
	if binary, _, err := installer.InstallDryRun(providerDir); err == nil {
		if _, statErr := os.Stat(binary); statErr == nil {
			return binary, nil
		}
	}
	return installer.Install(providerDir, true)
}

func (o *options) store(ctx context.Context) (*states.Store, error) {
	logger := logging.HCLogger()
	if o.dynamoTable != "" {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return states.NewStore(params.NewDynamoDB(dynamodb.NewFromConfig(cfg), o.dynamoTable), logger), nil
	}
	dir, err := params.NewDir(o.stateDir)
	if err != nil {
		return nil, err
	}
	return states.NewStore(dir, logger), nil
}

// withProvider runs fn against a started and configured provider,
// stopping the plugin process afterwards no matter what.
func (o *options) withProvider(ctx context.Context, fn func(context.Context, *provider.Provider) error) (err error) {
	binary, err := o.binaryPath(ctx)
	if err != nil {
		return err
	}

	logger := logging.HCLogger()
	client := plugin.NewClient(binary, logger)
	if err := client.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := client.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	proto, err := client.Proto()
	if err != nil {
		return err
	}
	p := provider.New(proto, logger)

	config := map[string]any{}
	if o.providerConfig != "" {
		if config, err = readJSONFile(o.providerConfig); err != nil {
			return err
		}
	}
	if err := p.Configure(ctx, config); err != nil {
		return err
	}

	return fn(ctx, p)
}

// withLifecycle runs fn against a lifecycle client restored from the
// persisted state of the instance named by --type/--key.
func (o *options) withLifecycle(ctx context.Context, fn func(context.Context, *lifecycle.Client) error) error {
	if o.resourceType == "" {
		return fmt.Errorf("--type is required")
	}
	store, err := o.store(ctx)
	if err != nil {
		return err
	}
	return o.withProvider(ctx, func(ctx context.Context, p *provider.Provider) error {
		client := lifecycle.NewClient(p, store, o.resourceType, o.key(), logging.HCLogger())
		if err := client.Load(ctx); err != nil {
			return err
		}
		return fn(ctx, client)
	})
}

func readJSONFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", path, err)
	}
	return doc, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newSchemaCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the provider's resource schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withProvider(cmd.Context(), func(ctx context.Context, p *provider.Provider) error {
				schemas, err := p.Schema(ctx)
				if err != nil {
					return err
				}
				if opts.resourceType != "" {
					block, ok := schemas.ResourceTypes[opts.resourceType]
					if !ok {
						return fmt.Errorf("provider has no resource type %q", opts.resourceType)
					}
					return printJSON(describeBlock(block))
				}

				listing := make(map[string]any, len(schemas.ResourceTypes)+1)
				listing["provider"] = describeBlock(schemas.Provider)
				for name, block := range schemas.ResourceTypes {
					listing[name] = describeBlock(block)
				}
				return printJSON(listing)
			})
		},
	}
}

func newImportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <id>",
		Short: "Bind existing infrastructure located by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLifecycle(cmd.Context(), func(ctx context.Context, client *lifecycle.Client) error {
				state, err := client.Import(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(state)
			})
		},
	}
}

func newReadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Refresh and print the current resource state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withLifecycle(cmd.Context(), func(ctx context.Context, client *lifecycle.Client) error {
				state, err := client.Read(ctx)
				if err != nil {
					return err
				}
				return printJSON(state)
			})
		},
	}
}

func newCreateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <desired.json>",
		Short: "Create the resource from a desired-configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := readJSONFile(args[0])
			if err != nil {
				return err
			}
			return opts.withLifecycle(cmd.Context(), func(ctx context.Context, client *lifecycle.Client) error {
				state, err := client.Create(ctx, desired)
				if err != nil {
					return err
				}
				return printJSON(state)
			})
		},
	}
}

func newUpdateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "update <desired.json>",
		Short: "Update the resource towards a desired-configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := readJSONFile(args[0])
			if err != nil {
				return err
			}
			return opts.withLifecycle(cmd.Context(), func(ctx context.Context, client *lifecycle.Client) error {
				state, err := client.Update(ctx, desired)
				if err != nil {
					return err
				}
				return printJSON(state)
			})
		},
	}
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Destroy the resource and purge its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withLifecycle(cmd.Context(), func(ctx context.Context, client *lifecycle.Client) error {
				if err := client.Delete(ctx); err != nil {
					return err
				}
				fmt.Println("deleted")
				return nil
			})
		},
	}
}
