package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = ".goshape"
	configFileType = "yaml"
	envPrefix      = "GOSHAPE"

	cfgKeyManifest = "manifest"
	cfgKeyStrict   = "strict"
	cfgKeyLang     = "lang"
	cfgKeyVerbose  = "verbose"
)

// loadConfig reads .goshape.yaml from the working directory or $HOME, or the
// explicit file when path is set. A missing default config file is not an
// error; a missing explicit one is.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLang, "en")
	v.SetDefault(cfgKeyStrict, false)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &nf) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
