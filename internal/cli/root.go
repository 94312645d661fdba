// Package cli implements the tablemarks command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/anchor"
	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/internal/paths"
	"github.com/mesh-intelligence/tablemarks/pkg/tablemarks"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	storeFile string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *log.Logger
}

// NewRootCmd creates the top-level "tablemarks" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tablemarks",
		Short: "Persistent row and column highlights for plain-text tables",
		Long: "tablemarks keeps colored highlights on the rows and columns of org-style\n" +
			"pipe tables. Highlights survive structural edits and are restored when a\n" +
			"document is reopened.",
		Version: tablemarks.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.storeFile, "store", "", "highlight file for the file backend (default: highlights.json in the data dir)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newEvalCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	err := NewRootCmd().Execute()
	os.Exit(ExitCode(err))
}

// setup resolves directories, reads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return userError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg.DataDir = dataDir
	if a.flags.storeFile != "" {
		cfg.StoreFile = a.flags.storeFile
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config: %w: %q", err, cfg.Backend))
	}
	a.cfg = cfg

	logger, err := newLogger(cmd, cfg.LogLevel)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	a.logger.Debug("config loaded", "config_dir", configDir, "data_dir", cfg.DataDir, "backend", cfg.Backend)
	return nil
}

func newLogger(cmd *cobra.Command, level string) (*log.Logger, error) {
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
		Prefix:          "tablemarks",
		Level:           lvl,
	}), nil
}

// openStore opens the highlight store the config selects.
func (a *app) openStore() (*highlight.Store, error) {
	s, err := tablemarks.Open(a.cfg, a.logger)
	if err != nil {
		return nil, userError(err)
	}
	return s, nil
}

func (a *app) anchorOptions() anchor.Options {
	return anchor.OptionsFromConfig(a.cfg)
}
