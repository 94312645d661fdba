package types

import "errors"

// Config holds the persistence backend and table-identification settings.
type Config struct {
	Backend       string `json:"backend" yaml:"backend"`
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	StoreFile     string `json:"store_file" yaml:"store_file,omitempty"`
	ContextWidth  int    `json:"context_width" yaml:"context_width"`
	NameDirective string `json:"name_directive" yaml:"name_directive"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Defaults applied by WithDefaults.
const (
	DefaultContextWidth  = 40
	DefaultNameDirective = "#+NAME:"
	DefaultStoreFile     = "highlights.json"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrContextWidthInvalid = errors.New("context width must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
}

// WithDefaults fills zero fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.ContextWidth == 0 {
		c.ContextWidth = DefaultContextWidth
	}
	if c.NameDirective == "" {
		c.NameDirective = DefaultNameDirective
	}
	if c.StoreFile == "" {
		c.StoreFile = DefaultStoreFile
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.ContextWidth < 0 {
		return ErrContextWidthInvalid
	}
	return nil
}
