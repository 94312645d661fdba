package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyStoreFile     = "store_file"
	cfgKeyContextWidth  = "context_width"
	cfgKeyNameDirective = "name_directive"
	cfgKeyLogLevel      = "log_level"

	defaultLogLevel = "warn"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; every key then takes its default.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendFile)
	v.SetDefault(cfgKeyStoreFile, types.DefaultStoreFile)
	v.SetDefault(cfgKeyContextWidth, types.DefaultContextWidth)
	v.SetDefault(cfgKeyNameDirective, types.DefaultNameDirective)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		Backend:       v.GetString(cfgKeyBackend),
		DataDir:       v.GetString(cfgKeyDataDir),
		StoreFile:     v.GetString(cfgKeyStoreFile),
		ContextWidth:  v.GetInt(cfgKeyContextWidth),
		NameDirective: v.GetString(cfgKeyNameDirective),
		LogLevel:      v.GetString(cfgKeyLogLevel),
	}, nil
}
