package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
	"github.com/hashicorp/hcl"
	"github.com/naoina/toml"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/allfs/quadstorvtl/form"
)

type Config struct {
	Listen    string       `hcl:"listen" toml:"listen"`
	Spool     DBConfig     `hcl:"spool" toml:"spool"`
	Inventory DBConfig     `hcl:"inventory" toml:"inventory"`
	Limits    LimitsConfig `hcl:"limits" toml:"limits"`
}

type DBConfig struct {
	Type string `hcl:"type" toml:"type"`
	Path string `hcl:"path" toml:"path"`
}

type LimitsConfig struct {
	MaxDrives     int `hcl:"max_drives" toml:"max_drives"`
	MaxCartridges int `hcl:"max_cartridges" toml:"max_cartridges"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := new(Config)
	cfg.fill()

	return cfg
}

func (cfg *Config) fill() {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}

	if cfg.Spool.Type == "" {
		cfg.Spool.Type = "boltdb"
	}

	if cfg.Spool.Path == "" {
		cfg.Spool.Path = "./spool.db"
	}

	if cfg.Inventory.Type == "" {
		cfg.Inventory.Type = "sqlite3"
	}

	if cfg.Inventory.Path == "" {
		cfg.Inventory.Path = "./inventory.db"
	}

	if cfg.Limits.MaxDrives == 0 {
		cfg.Limits.MaxDrives = catalog.MaxDrives
	}

	if cfg.Limits.MaxCartridges == 0 {
		cfg.Limits.MaxCartridges = form.MaxCartridges
	}
}

func (cfg *Config) check() error {
	if cfg.Spool.Type != "boltdb" {
		return merry.Errorf("unknown spool database type: %s", cfg.Spool.Type)
	}

	if cfg.Inventory.Type != "sqlite3" {
		return merry.Errorf("unknown inventory database type: %s", cfg.Inventory.Type)
	}

	if n := cfg.Limits.MaxDrives; n < 1 || n > catalog.MaxDrives {
		return merry.Errorf("limits.max_drives must be between 1 and %d, got %d", catalog.MaxDrives, n)
	}

	if n := cfg.Limits.MaxCartridges; n < 1 || n > form.MaxCartridges {
		return merry.Errorf("limits.max_cartridges must be between 1 and %d, got %d", form.MaxCartridges, n)
	}

	return nil
}

func Parse(r io.Reader) (*Config, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}

	hclTree, err := hcl.Parse(buf.String())
	if err != nil {
		return nil, err
	}

	result := new(Config)
	if err := hcl.DecodeObject(&result, hclTree); err != nil {
		return nil, err
	}

	result.fill()

	if err := result.check(); err != nil {
		return nil, err
	}

	return result, nil
}

// ParseTOML reads the same settings from a TOML document.
func ParseTOML(r io.Reader) (*Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	result := new(Config)
	if err := toml.Unmarshal(buf, result); err != nil {
		return nil, err
	}

	result.fill()

	if err := result.check(); err != nil {
		return nil, err
	}

	return result, nil
}

// Load reads the file at path, as TOML when it ends in .toml and as HCL
// otherwise.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg *Config
	if filepath.Ext(path) == ".toml" {
		cfg, err = ParseTOML(f)
	} else {
		cfg, err = Parse(f)
	}

	if err != nil {
		return nil, merry.Prependf(err, "config %s", path)
	}

	return cfg, nil
}
