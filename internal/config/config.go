package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "ABIPROBE_"

// ErrUnknownKeys is returned, after every known value has been applied,
// when the config file sets keys no option reads. These are usually typos.
var ErrUnknownKeys = errors.New("unknown config keys")

// option is one field of an options struct with the names it is known by
// on the command line, in the config file and in the environment.
type option struct {
	value reflect.Value
	flag  string
	toml  string
	env   string
}

func optionsOf(opts any) []option {
	v := reflect.ValueOf(opts).Elem()
	out := make([]option, 0, v.NumField())
	for i := range v.NumField() {
		sf := v.Type().Field(i)
		out = append(out, option{
			value: v.Field(i),
			flag:  flagName(sf.Name),
			toml:  sf.Tag.Get("toml"),
			env:   sf.Tag.Get("env"),
		})
	}
	return out
}

// LoadConfig fills opts from the config file named by its Config field and
// from ABIPROBE_ env vars. Flags set on cmd keep their CLI value; env beats
// the file.
func LoadConfig(opts any, cmd *cobra.Command) error {
	options := optionsOf(opts)

	var configPath string
	if f := reflect.ValueOf(opts).Elem().FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		configPath = f.String()
	}
	file, err := readTOML(configPath)
	if err != nil {
		return err
	}

	fromCLI := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) { fromCLI[f.Name] = true })
	}

	known := make(map[string]bool, len(options))
	for _, o := range options {
		if o.toml != "" {
			known[o.toml] = true
		}
		if fromCLI[o.flag] {
			continue
		}
		if raw, ok := file[o.toml]; ok && o.toml != "" {
			assign(o.value, raw)
		}
		if o.env == "" {
			continue
		}
		if s := os.Getenv(EnvPrefix + o.env); s != "" {
			assign(o.value, s)
		}
	}

	var unknown []string
	for _, key := range slices.Sorted(maps.Keys(file)) {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%s: %w: %s", configPath, ErrUnknownKeys, strings.Join(unknown, ", "))
	}
	return nil
}

// readTOML returns the file's leaf values keyed by dotted path. A missing
// file yields no values.
func readTOML(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	flat := make(map[string]any)
	flatten("", doc, flat)
	return flat, nil
}

func flatten(prefix string, table map[string]any, out map[string]any) {
	for k, v := range table {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(k, sub, out)
			continue
		}
		out[k] = v
	}
}

// flagName is the kebab-case flag humacli derives from a field name,
// e.g. WatchDebounce -> watch-debounce.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

var durationType = reflect.TypeFor[time.Duration]()

// assign stores raw into dst, coercing env strings and TOML values alike.
// Values that do not convert leave dst untouched.
func assign(dst reflect.Value, raw any) {
	if !dst.CanSet() {
		return
	}
	s, isString := raw.(string)

	switch {
	case dst.Type() == durationType:
		if isString {
			if d, err := time.ParseDuration(s); err == nil {
				dst.SetInt(int64(d))
			}
		}

	case dst.Kind() == reflect.String:
		if isString {
			dst.SetString(s)
		}

	case dst.Kind() == reflect.Bool:
		switch v := raw.(type) {
		case bool:
			dst.SetBool(v)
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				dst.SetBool(b)
			}
		}

	case dst.CanInt():
		switch v := raw.(type) {
		case int64:
			dst.SetInt(v)
		case int:
			dst.SetInt(int64(v))
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				dst.SetInt(n)
			}
		}

	case dst.Kind() == reflect.Slice && dst.Type().Elem().Kind() == reflect.String:
		var items []string
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				str, _ := item.(string)
				items = append(items, str)
			}
		case string:
			for _, part := range strings.Split(v, ",") {
				items = append(items, strings.TrimSpace(part))
			}
		default:
			return
		}
		dst.Set(reflect.ValueOf(items))
	}
}
