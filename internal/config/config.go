package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/game"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultWorldSize = 15
	defaultWildCount = 5
	minWorldSize     = 3
)

type rawConfig struct {
	SpeciesList   []game.Species            `json:"species_list" yaml:"species_list"`
	Effectiveness []game.EffectivenessEntry `json:"effectiveness" yaml:"effectiveness"`
	Server        *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Database *struct {
		Driver string `json:"driver" yaml:"driver"`
		DSN    string `json:"dsn" yaml:"dsn"`
	} `json:"database" yaml:"database"`
	World *struct {
		Size      int `json:"size" yaml:"size"`
		WildCount int `json:"wild_count" yaml:"wild_count"`
	} `json:"world" yaml:"world"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// WorldConfig sizes the exploration map.
type WorldConfig struct {
	Size      int
	WildCount int
}

// LoadedConfig contains the species catalog, the effectiveness table and the
// process settings.
type LoadedConfig struct {
	Catalog       *game.Catalog
	Effectiveness *game.EffectivenessTable
	ServerAddress string
	Database      DatabaseConfig
	World         WorldConfig
}

// Path returns the config path from ARENA_CONFIG or the default.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(constants.EnvConfigPath)); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}

// LoadConfig reads the configuration file at path, validates it and applies
// environment overrides. It requires the key `species_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates raw config bytes. ext selects the decoder:
// ".yaml"/".yml" use YAML, anything else JSON.
func Parse(b []byte, ext string) (*LoadedConfig, error) {
	var rc rawConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}

	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("species_list is empty (provide 'species_list' array)")
	}
	catalog, err := game.NewCatalog(rc.SpeciesList)
	if err != nil {
		return nil, err
	}
	if len(catalog.Starters()) == 0 {
		return nil, fmt.Errorf("at least one species must be marked 'starter'")
	}

	entries := rc.Effectiveness
	if len(entries) == 0 {
		entries = game.DefaultEffectivenessEntries()
	}
	table, err := game.NewEffectivenessTable(entries)
	if err != nil {
		return nil, err
	}

	cfg := &LoadedConfig{
		Catalog:       catalog,
		Effectiveness: table,
		ServerAddress: constants.DefaultServerAddr,
		Database:      DatabaseConfig{Driver: DriverSQLite, DSN: constants.DefaultDBPath},
		World:         WorldConfig{Size: defaultWorldSize, WildCount: defaultWildCount},
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil {
		if d := strings.ToLower(strings.TrimSpace(rc.Database.Driver)); d != "" {
			cfg.Database.Driver = d
			cfg.Database.DSN = ""
		}
		if rc.Database.DSN != "" {
			cfg.Database.DSN = rc.Database.DSN
		}
		if cfg.Database.Driver == DriverSQLite && cfg.Database.DSN == "" {
			cfg.Database.DSN = constants.DefaultDBPath
		}
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database.driver '%s'", cfg.Database.Driver)
	}
	if rc.World != nil {
		if rc.World.Size != 0 {
			cfg.World.Size = rc.World.Size
		}
		if rc.World.WildCount != 0 {
			cfg.World.WildCount = rc.World.WildCount
		}
	}
	if cfg.World.Size < minWorldSize {
		return nil, fmt.Errorf("world.size must be at least %d", minWorldSize)
	}
	if cfg.World.WildCount < 0 || cfg.World.WildCount >= cfg.World.Size*cfg.World.Size {
		return nil, fmt.Errorf("world.wild_count must be between 0 and %d", cfg.World.Size*cfg.World.Size-1)
	}
	return cfg, nil
}

// applyEnv lets deployment override the file: ARENA_ADDR for the listen
// address, ARENA_DATABASE_URL to switch to PostgreSQL, ARENA_DB for the
// SQLite path.
func (c *LoadedConfig) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(constants.EnvServerAddr)); v != "" {
		c.ServerAddress = v
	}
	if v := strings.TrimSpace(getenv(constants.EnvDatabaseURL)); v != "" {
		c.Database = DatabaseConfig{Driver: DriverPostgres, DSN: v}
		return
	}
	if v := strings.TrimSpace(getenv(constants.EnvDBPath)); v != "" {
		c.Database = DatabaseConfig{Driver: DriverSQLite, DSN: v}
	}
}

// Validate checks a postgres config has a DSN; sqlite always has one.
func (c *LoadedConfig) Validate() error {
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn (or %s) is required for postgres", constants.EnvDatabaseURL)
	}
	return nil
}
