package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/config"
	"github.com/jonathan/hr-insights/internal/ingestion"
	"github.com/jonathan/hr-insights/internal/types"
)

// loadConfig reads the service configuration from the --config file and the environment.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	if v == nil {
		v = viper.New()
	}
	return config.Load(v, configPath)
}

// loadCatalog loads the catalog at path, or the embedded default when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// readJSONFile decodes the JSON file at path into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// readRequirementSet loads and validates a requirement set file.
func readRequirementSet(path string) (*types.RequirementSet, error) {
	var set types.RequirementSet
	if err := readJSONFile(path, &set); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid requirement set %s: %w", path, err)
	}
	return &set, nil
}

// readText returns the cleaned contents of a text document.
func readText(path string) (string, error) {
	return ingestion.ReadDocument(path)
}

// writeJSON writes v to out as indented JSON.
func writeJSON(out io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(jsonBytes))
	return err
}
