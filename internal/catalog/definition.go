package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Definition is the on-disk shape of a catalog:
//
//	foods:
//	  - name: Chicken
//	    price: 2.33
//	    nutrients: {protein: 25, carbohydrate: 0, lipid: 7.1, energy: 170.4}
type Definition struct {
	Foods []FoodItem `json:"foods" yaml:"foods"`
}

// FormatFromPath picks the definition format from a file or object name.
// Anything that is not .json is read as YAML.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a YAML or JSON definition and builds the catalog.
func Decode(data []byte, format string) (*Catalog, error) {
	var def Definition

	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return New(def.Foods...)
}

// Encode writes the catalog as a definition document.
func Encode(c *Catalog, format string) ([]byte, error) {
	def := Definition{Foods: c.All()}

	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return nil, fmt.Errorf("encode yaml catalog: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml catalog: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
