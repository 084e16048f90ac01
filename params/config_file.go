package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadInto overlays a YAML config file onto cfg. Fields absent from the
// file keep whatever cfg already holds, so defaults survive partial files.
func LoadInto(path string, cfg *TrainingConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
