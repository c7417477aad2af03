package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/filetree/internal/util"
	"gopkg.in/yaml.v3"
)

// CLI style verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultCheckInvariants disables the per-mutation invariant check
	DefaultCheckInvariants = false

	// DefaultMaxNodes of 0 places no limit on the number of live nodes
	DefaultMaxNodes = 0

	// DefaultFileMode is the permission mode of files in a mounted snapshot (r--r--r--)
	DefaultFileMode = 0o444

	// DefaultDirMode is the permission mode of directories in a mounted snapshot (r-xr-xr-x)
	DefaultDirMode = 0o555

	DefaultFsName = "filetree"
	DefaultName   = "filetree"
)

// Config contains runtime configuration values for a file tree.
type Config struct {
	MountOptions
	LogLvl util.LogLevel // Log level (Default Info)
	// Run the invariant checker before and after every mutating call and
	// panic on the first violation. Meant for development builds. (Default false)
	CheckInvariants bool
	// Maximum number of live nodes in one tree; creating more fails with a
	// resource exhausted error. 0 means unlimited. (Default 0)
	MaxNodes int
	FileMode uint32 // Permission bits of files in a mounted snapshot (Default 0444)
	DirMode  uint32 // Permission bits of directories in a mounted snapshot (Default 0555)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// LogLvl is a verbosity between ErrorVerbose (1) and TraceVerbose (5);
	// out of range values are clamped.
	LogLvl          *int    `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	CheckInvariants *bool   `yaml:"check_invariants,omitempty" json:"check_invariants,omitempty"`
	MaxNodes        *int    `yaml:"max_nodes,omitempty" json:"max_nodes,omitempty"`
	FileMode        *uint32 `yaml:"file_mode,omitempty" json:"file_mode,omitempty"`
	DirMode         *uint32 `yaml:"dir_mode,omitempty" json:"dir_mode,omitempty"`
	Debug           *bool   `yaml:"mount_debug,omitempty" json:"mount_debug,omitempty"`
	FsName          *string `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name            *string `yaml:"name,omitempty" json:"name,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:          DefaultLogLvl,
		CheckInvariants: DefaultCheckInvariants,
		MaxNodes:        DefaultMaxNodes,
		FileMode:        DefaultFileMode,
		DirMode:         DefaultDirMode,
	}
}

// NewConfig returns the defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = LogLevelFromVerbosity(*override.LogLvl)
	}
	if override.CheckInvariants != nil {
		c.CheckInvariants = *override.CheckInvariants
	}
	if override.MaxNodes != nil {
		c.MaxNodes = *override.MaxNodes
	}
	if override.FileMode != nil {
		c.FileMode = *override.FileMode
	}
	if override.DirMode != nil {
		c.DirMode = *override.DirMode
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
}

// LogLevelFromVerbosity maps a CLI verbosity (1 error .. 5 trace) onto a
// log level, clamping out of range values.
func LogLevelFromVerbosity(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	if c.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes)
	}
	if c.FileMode > 0o777 || c.DirMode > 0o777 {
		return fmt.Errorf("file_mode and dir_mode must be permission bits, got %o and %o", c.FileMode, c.DirMode)
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
