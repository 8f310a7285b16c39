// Package config loads the litetable-schema.hcl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/litetable/litetable-schema/internal/litetable"
)

const (
	configFileName = "litetable-schema.hcl"

	defaultInstance      = "default"
	defaultAddress       = "127.0.0.1"
	defaultServerPort    = 32472
	defaultCDCPort       = 32473
	defaultMetaBackend   = "bbolt"
	defaultLockTimeout   = 30
	defaultShardCount    = 4
	maxShardCount        = 64
	defaultMetaDirectory = "meta"
)

type Config struct {
	Instance string `hcl:"instance"`
	// StoreAddress is host:port of a store server, or "memory" for an in-process store.
	StoreAddress string `hcl:"store_address"`
	MetaBackend  string `hcl:"meta_backend"`
	MetaPath     string `hcl:"meta_path"`
	JournalPath  string `hcl:"journal_path"`
	// LockTimeout is in seconds. Zero waits forever.
	LockTimeout   int    `hcl:"lock_timeout"`
	Debug         bool   `hcl:"debug"`
	ServerAddress string `hcl:"server_address"`
	ServerPort    int    `hcl:"server_port"`
	CDCAddress    string `hcl:"cdc_address"`
	CDCPort       int    `hcl:"cdc_port"`
	ShardCount    int    `hcl:"shard_count"`
	LeakDetection bool   `hcl:"leak_detection"`
}

// Default returns the configuration used when no file is present, rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Instance:      defaultInstance,
		StoreAddress:  fmt.Sprintf("%s:%d", defaultAddress, defaultServerPort),
		MetaBackend:   defaultMetaBackend,
		MetaPath:      filepath.Join(dir, defaultMetaDirectory),
		JournalPath:   dir,
		LockTimeout:   defaultLockTimeout,
		ServerAddress: defaultAddress,
		ServerPort:    defaultServerPort,
		CDCAddress:    defaultAddress,
		CDCPort:       defaultCDCPort,
		ShardCount:    defaultShardCount,
	}
}

// NewConfig loads litetable-schema.hcl from the LiteTable directory.
func NewConfig() (*Config, error) {
	liteTableDir, err := litetable.GetLitetableDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get LiteTable directory: %w", err)
	}
	return Load(filepath.Join(liteTableDir, configFileName))
}

// Load reads the configuration at path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.validate()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := hcl.Decode(&raw, string(b)); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for name := range raw {
		if !isVar(name) {
			return nil, fmt.Errorf("%s is not a config variable", name)
		}
	}

	if err := hcl.Decode(cfg, string(b)); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var vars = []string{
	"instance", "store_address", "meta_backend", "meta_path", "journal_path", "lock_timeout",
	"debug", "server_address", "server_port", "cdc_address", "cdc_port", "shard_count",
	"leak_detection",
}

func isVar(name string) bool {
	for _, v := range vars {
		if v == name {
			return true
		}
	}
	return false
}

// Set overrides one variable from its string form, as given on the command line.
func (c *Config) Set(name, value string) error {
	var err error
	switch name {
	case "instance":
		c.Instance = value
	case "store_address":
		c.StoreAddress = value
	case "meta_backend":
		c.MetaBackend = value
	case "meta_path":
		c.MetaPath = value
	case "journal_path":
		c.JournalPath = value
	case "lock_timeout":
		c.LockTimeout, err = strconv.Atoi(value)
	case "debug":
		c.Debug, err = strconv.ParseBool(value)
	case "server_address":
		c.ServerAddress = value
	case "server_port":
		c.ServerPort, err = strconv.Atoi(value)
	case "cdc_address":
		c.CDCAddress = value
	case "cdc_port":
		c.CDCPort, err = strconv.Atoi(value)
	case "shard_count":
		c.ShardCount, err = strconv.Atoi(value)
	case "leak_detection":
		c.LeakDetection, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%s is not a config variable", name)
	}
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return nil
}

// Validate checks the configuration after overrides were applied.
func (c *Config) Validate() error {
	return c.validate()
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Instance == "" {
		errGrp = append(errGrp, errors.New("instance cannot be empty"))
	}
	if c.StoreAddress == "" {
		errGrp = append(errGrp, errors.New("store_address cannot be empty"))
	}
	switch c.MetaBackend {
	case "bbolt", "sqlite":
	default:
		errGrp = append(errGrp, fmt.Errorf("meta_backend must be bbolt or sqlite, got %q",
			c.MetaBackend))
	}
	if c.MetaPath == "" {
		errGrp = append(errGrp, errors.New("meta_path cannot be empty"))
	}
	if c.JournalPath == "" {
		errGrp = append(errGrp, errors.New("journal_path cannot be empty"))
	}
	if c.LockTimeout < 0 {
		errGrp = append(errGrp, errors.New("lock_timeout cannot be negative"))
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid server_port %d", c.ServerPort))
	}
	if c.CDCPort < 0 || c.CDCPort > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid cdc_port %d", c.CDCPort))
	}
	if c.ShardCount < 1 || c.ShardCount > maxShardCount {
		errGrp = append(errGrp, fmt.Errorf("shard_count must be between 1 and %d",
			maxShardCount))
	}
	return errors.Join(errGrp...)
}

// LockTimeoutDuration is the lock timeout as a duration.
func (c *Config) LockTimeoutDuration() time.Duration {
	return time.Duration(c.LockTimeout) * time.Second
}
