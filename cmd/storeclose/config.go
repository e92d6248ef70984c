// Config loading for the storeclose CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/retailops/storeclose/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# storeclose configuration

# Workbook holding the management and archive sheets.
workbook_path: stores.xlsx

manager:
  name: Gerenciador
  start_row: 6
  identifier_column: C
  status_column: D
  name_column: G
  group_column: B
  clear_columns: [A, B]

archive:
  name: Lojas Fechadas
  start_row: 2
  name_column: B
  identifier_column: C
  status_column: D
  date_column: E
  observation_column: F

# Status literal written to the manager sheet on closure.
closed_status: Fechada

# Status literal written to the archive sheet.
pending_status: "NÃO"

# Observation used when none is supplied (empty: a per-store text is generated).
default_observation: ""

# Optional relational mirror of store status.
mirror:
  enabled: false
  path: stores.db
  closed_status_code: 3
`

// loadConfig reads config.yaml from the config directory using Viper. The
// config directory and a default config.yaml are created on first run; the
// result is a plain value handed to every component, never a global.
func loadConfig(configDir string) (types.Config, error) {
	var cfg types.Config

	if err := ensureConfigDir(configDir); err != nil {
		return cfg, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return cfg, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error; defaults apply.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every configuration key with its default value so a
// partial config.yaml only overrides what it names.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("workbook_path", d.WorkbookPath)
	v.SetDefault("manager.name", d.Manager.Name)
	v.SetDefault("manager.start_row", d.Manager.StartRow)
	v.SetDefault("manager.identifier_column", d.Manager.IdentifierColumn)
	v.SetDefault("manager.status_column", d.Manager.StatusColumn)
	v.SetDefault("manager.name_column", d.Manager.NameColumn)
	v.SetDefault("manager.group_column", d.Manager.GroupColumn)
	v.SetDefault("manager.clear_columns", d.Manager.ClearColumns)
	v.SetDefault("archive.name", d.Archive.Name)
	v.SetDefault("archive.start_row", d.Archive.StartRow)
	v.SetDefault("archive.name_column", d.Archive.NameColumn)
	v.SetDefault("archive.identifier_column", d.Archive.IdentifierColumn)
	v.SetDefault("archive.status_column", d.Archive.StatusColumn)
	v.SetDefault("archive.date_column", d.Archive.DateColumn)
	v.SetDefault("archive.observation_column", d.Archive.ObservationColumn)
	v.SetDefault("closed_status", d.ClosedStatus)
	v.SetDefault("pending_status", d.PendingStatus)
	v.SetDefault("default_observation", d.DefaultObservation)
	v.SetDefault("mirror.enabled", d.Mirror.Enabled)
	v.SetDefault("mirror.path", d.Mirror.Path)
	v.SetDefault("mirror.closed_status_code", d.Mirror.ClosedStatusCode)
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
