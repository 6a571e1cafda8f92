package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a flat YAML document of KEY: value pairs and returns a root Conf
// that consults the environment first and the file second.
// Nested maps are flattened with "_" so
//
//	DOMA:
//	  API_KEY: abc
//
// is the same as DOMA_API_KEY: abc
func LoadFile(path string) (Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conf{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Conf{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	flat := map[string]string{}
	flatten("", doc, flat)
	return Conf{file: flat}, nil
}

// FromEnvOrFile loads the file named by envKey when set, otherwise returns New().
// A broken file is reported but never fatal; env-only config still boots.
func FromEnvOrFile(envKey string) (Conf, error) {
	path := strings.TrimSpace(os.Getenv(envKey))
	if path == "" {
		return New(), nil
	}
	c, err := LoadFile(path)
	if err != nil {
		return New(), err
	}
	return c, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}
		switch x := v.(type) {
		case map[string]any:
			flatten(key, x, out)
		case []any:
			parts := make([]string, 0, len(x))
			for _, p := range x {
				parts = append(parts, fmt.Sprint(p))
			}
			out[key] = strings.Join(parts, ",")
		case nil:
			// explicit null leaves the key unset
		default:
			out[key] = fmt.Sprint(x)
		}
	}
}
