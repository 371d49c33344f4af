package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contract-mapper/codec"
	"contract-mapper/internal/config"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/logger"
)

// app holds what every subcommand needs, built once in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	log   *zap.SugaredLogger
	codec *codec.Codec
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "contract-mapper",
		Short: "Convert data contracts to an entity model and back",
		Long: `contract-mapper normalizes data contract documents (YAML or JSON, current
and legacy shapes) into an entity model of tables, columns, relationships and
compound keys, and serializes that model back into a contract document.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CONTRACT_MAPPER_* prefix)
3. Config file given with --config
4. Default values

Examples:
  contract-mapper normalize contract.yaml > model.json
  contract-mapper export model.json
  contract-mapper roundtrip contract.yaml
  contract-mapper inspect --dump contract.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newNormalizeCmd(a),
		newExportCmd(a),
		newRoundTripCmd(a),
		newInspectCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.cfg = cfg
	a.log = log
	a.codec = codec.New(cfg.CodecOptions(log))

	a.log.Debugw("configuration loaded",
		logger.FieldPath, a.configPath,
		logger.FieldEngine, cfg.Engine.WASMPath,
	)

	return nil
}

// readInput reads the named file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}

	return data, nil
}

// printDiagnostics writes every diagnostic to the command's stderr.
func printDiagnostics(cmd *cobra.Command, diags codec.Diagnostics) {
	for _, d := range diags.All() {
		cmd.PrintErrf("%-7s %s\n", d.Severity.String(), d.String())
	}
}
