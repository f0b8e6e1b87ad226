package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files such
// as the one written by the init command.
//
// The document is a flat mapping of flag names to values:
//
//	log-level: debug
//	output-dir: out
//	path:
//	  - ./scripts
//
// Keys may use underscores in place of hyphens (log_level). Numbers are
// passed to kong as strings. An empty or malformed file configures nothing;
// command-line flags override configured values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return config{}, nil
	}

	cfg := make(config, len(values))

	for key, value := range values {
		cfg[key] = normalize(value)
	}

	return cfg, nil
}

// normalize converts numbers, which kong cannot parse from native types, to
// strings, descending into lists.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	default:
		return value
	}
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
