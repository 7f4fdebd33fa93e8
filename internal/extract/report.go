// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/namecol/pkg/types"
)

// WriteReport writes res to path as YAML.
func WriteReport(path string, res types.ExtractionResult) error {
	data, err := yaml.Marshal(&res)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (types.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ExtractionResult{}, fmt.Errorf("reading report: %w", err)
	}
	var res types.ExtractionResult
	if err := yaml.Unmarshal(data, &res); err != nil {
		return types.ExtractionResult{}, fmt.Errorf("parsing report: %w", err)
	}
	return res, nil
}
