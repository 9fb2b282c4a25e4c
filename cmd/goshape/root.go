package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/manifest"
)

// errInvalid signals that the input was rejected after the issues were
// printed.
var errInvalid = errors.New("input rejected")

// app carries per-invocation state shared by subcommands.
type app struct {
	configFile string
	cfg        *viper.Viper
	logger     *zap.Logger
	manifest   *manifest.Manifest
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "goshape",
		Short:         "Validate and classify documents against a variant registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./.goshape.yaml or ~/.goshape.yaml)")
	pf.String(cfgKeyManifest, "", "registry manifest (YAML or JSON)")
	pf.Bool(cfgKeyStrict, false, "reject values matching more than one variant")
	pf.String(cfgKeyLang, "en", "issue message language (en, ja)")
	pf.BoolP(cfgKeyVerbose, "v", false, "enable debug logging")

	root.AddCommand(newValidateCmd(a), newClassifyCmd(a), newSchemaCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	for _, key := range []string{cfgKeyManifest, cfgKeyStrict, cfgKeyLang, cfgKeyVerbose} {
		if err := cfg.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.GetBool(cfgKeyVerbose) {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	i18n.SetLanguage(cfg.GetString(cfgKeyLang))

	path := cfg.GetString(cfgKeyManifest)
	if path == "" {
		return errors.New("no manifest: set --manifest or manifest in config")
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	a.manifest = m
	a.logger.Debug("Loaded manifest",
		zap.String("path", path),
		zap.Int("variants", len(m.Registry.Tags())),
		zap.Bool("strict", a.mode() == goshape.Strict))
	return nil
}

// mode is the manifest mode unless --strict forces Strict.
func (a *app) mode() goshape.Mode {
	if a.cfg.GetBool(cfgKeyStrict) {
		return goshape.Strict
	}
	return a.manifest.Mode
}

func (a *app) container() *goshape.Container[map[string]any] {
	return goshape.NewContainer[map[string]any](a.manifest.Registry, goshape.WithMode(a.mode()))
}
