// Package parameters handles generic configuration Params, a map[string]string that the
// user can set, either with a configuration string (e.g. "qlearning,alpha=0.5,episodes=10000")
// or with a YAML file.
package parameters

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string.
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	if config == "" {
		return params
	}
	parts := strings.Split(config, ",")
	for _, part := range parts {
		subParts := strings.SplitN(part, "=", 2) // Split into up to 2 parts to handle '=' in values
		if len(subParts) == 1 {
			params[subParts[0]] = ""
		} else if len(subParts) == 2 {
			params[subParts[0]] = subParts[1]
		}
	}
	return params
}

// LoadYAML reads a YAML file with a flat mapping of keys to scalar values, and returns it as Params.
// Nested values are not accepted.
func LoadYAML(filePath string) (Params, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %q", filePath)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return nil, errors.Wrapf(err, "failed to parse YAML configuration file %q", filePath)
	}
	params := make(Params, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			params[key] = ""
		case string:
			params[key] = v
		case bool, int, int64, uint64, float64:
			params[key] = fmt.Sprint(v)
		case []any:
			// Lists are encoded as ';' separated values, see PopIntsOr.
			parts := make([]string, len(v))
			for ii, e := range v {
				parts[ii] = fmt.Sprint(e)
			}
			params[key] = strings.Join(parts, ";")
		default:
			return nil, errors.Errorf("configuration file %q: key %q has unsupported value type %T", filePath, key, value)
		}
	}
	return params, nil
}

// Merge returns a new Params with the values of base overwritten by those in override.
func Merge(base, override Params) Params {
	merged := make(Params, len(base)+len(override))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range override {
		merged[key] = value
	}
	return merged
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T interface {
	bool | int | float32 | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// PopIntsOr parses a list of ints separated by ";" (e.g.: "piles=1;3;5;7"), and deletes the key from params.
// It returns defaultValue if the key is not set.
func PopIntsOr(params Params, key string, defaultValue []int) ([]int, error) {
	value, exists := params[key]
	if !exists || value == "" {
		delete(params, key)
		return defaultValue, nil
	}
	parts := strings.Split(value, ";")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		parsedValue, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse configuration %s=%q to list of ints", key, value)
		}
		values = append(values, parsedValue)
	}
	delete(params, key)
	return values, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T interface {
	bool | int | float32 | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	vAny := (any)(defaultValue)
	var t T
	toT := func(v any) T { return v.(T) }
	switch vAny.(type) {
	case string:
		if value, exists := params[key]; exists {
			return toT(value), nil
		}
	case int:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.Atoi(value)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
			}
			return toT(parsedValue), nil
		}
	case float32:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(float32(parsedValue)), nil
		}
	case float64:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(parsedValue), nil
		}
	case bool:
		if value, exists := params[key]; exists {
			if value == "" || strings.ToLower(value) == "true" || value == "1" { // Empty value is considered "true"
				return toT(true), nil
			}
			if strings.ToLower(value) == "false" || value == "0" {
				return toT(false), nil
			}
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return defaultValue, nil
}
