package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/bnema/dockable/internal/domain/entity"
)

const (
	configSchemaID = "https://github.com/bnema/dockable/config.schema.json"
	layoutSchemaID = "https://github.com/bnema/dockable/layout.schema.json"
)

// ConfigSchema returns the JSON schema of config.toml.
func ConfigSchema() ([]byte, error) {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})
	schema.ID = configSchemaID
	schema.Title = "dockable configuration"
	schema.Description = "Configuration schema for dockable, a dockable panel layout engine"
	return marshalSchema(schema)
}

// LayoutSchema returns the JSON schema of layout snapshot files.
func LayoutSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&entity.LayoutSnapshot{})
	schema.ID = layoutSchemaID
	schema.Title = "dockable layout snapshot"
	schema.Description = "Panel tree handed to the engine at startup"
	return marshalSchema(schema)
}

func marshalSchema(schema *jsonschema.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes config.schema.json next to the config file.
func GenerateSchemaFile(configDir string) (string, error) {
	data, err := ConfigSchema()
	if err != nil {
		return "", err
	}
	schemaFile := filepath.Join(configDir, "config.schema.json")
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
