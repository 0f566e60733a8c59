package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = `
listen = "127.0.0.1:9090"

spool {
        type = "boltdb"
        path = "/var/lib/vtl/spool.db"
}

inventory {
        type = "sqlite3"
        path = "/var/lib/vtl/inventory.db"
}

limits {
        max_drives = 8
        max_cartridges = 100
}
`

var testTOML = `
listen = "127.0.0.1:9090"

[spool]
type = "boltdb"
path = "/var/lib/vtl/spool.db"

[inventory]
type = "sqlite3"
path = "/var/lib/vtl/inventory.db"

[limits]
max_drives = 8
max_cartridges = 100
`

var expected = &Config{
	Listen:    "127.0.0.1:9090",
	Spool:     DBConfig{Type: "boltdb", Path: "/var/lib/vtl/spool.db"},
	Inventory: DBConfig{Type: "sqlite3", Path: "/var/lib/vtl/inventory.db"},
	Limits:    LimitsConfig{MaxDrives: 8, MaxCartridges: 100},
}

func TestConfigParsing(t *testing.T) {
	config, err := Parse(bytes.NewBufferString(testConfig))
	require.NoError(t, err)

	assert.Equal(t, expected, config)
}

func TestConfigParsingTOML(t *testing.T) {
	config, err := ParseTOML(bytes.NewBufferString(testTOML))
	require.NoError(t, err)

	assert.Equal(t, expected, config)
}

func TestConfigDefaults(t *testing.T) {
	config, err := Parse(bytes.NewBufferString(""))
	require.NoError(t, err)

	assert.Equal(t, Default(), config)
	assert.Equal(t, ":8080", config.Listen)
	assert.Equal(t, "./spool.db", config.Spool.Path)
	assert.Equal(t, "./inventory.db", config.Inventory.Path)
	assert.Equal(t, 15, config.Limits.MaxDrives)
	assert.Equal(t, 512, config.Limits.MaxCartridges)
}

func TestConfigRejects(t *testing.T) {
	for _, doc := range []string{
		`spool { type = "mongodb" }`,
		`inventory { type = "postgres" }`,
		`limits { max_drives = 16 }`,
		`limits { max_cartridges = 513 }`,
		`listen = `,
	} {
		_, err := Parse(bytes.NewBufferString(doc))
		assert.Error(t, err, doc)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "vtlconsole.hcl")
	require.NoError(t, os.WriteFile(hclPath, []byte(testConfig), 0644))

	tomlPath := filepath.Join(dir, "vtlconsole.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(testTOML), 0644))

	for _, path := range []string{hclPath, tomlPath} {
		config, err := Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, config)
	}

	_, err := Load(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}
