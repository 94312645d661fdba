package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tablemarks/internal/paths"
	"github.com/mesh-intelligence/tablemarks/pkg/tablemarks"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// configHeader is written above the generated config.yaml.
const configHeader = "# tablemarks configuration\n# backend: file | sqlite\n"

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tablemarks configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif none exists, then initialize the highlight store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	configPath := filepath.Join(a.configDir, paths.ConfigFileName)
	if err := writeConfigIfMissing(configPath, a.cfg); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	p, err := tablemarks.NewPersister(a.cfg)
	if err != nil {
		return userError(err)
	}
	current, err := p.Load()
	if err != nil {
		return sysError(fmt.Errorf("read existing store: %w", err))
	}
	if err := p.Save(current); err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}

	a.logger.Info("storage initialized", "backend", a.cfg.Backend, "data_dir", a.cfg.DataDir)
	fmt.Fprintln(cmd.OutOrStdout(), "tablemarks initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg types.Config) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
