package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultRuntime is the import path of the formatting runtime.
const DefaultRuntime = "debugctx-generator/debugctx"

// DefaultSuffix is appended to the package name to form the output file name.
const DefaultSuffix = "_debugctx.go"

// FileNames are searched, in order, when a directory is given as config path.
var FileNames = []string{"debugctx.yaml", "debugctx.yml", "debugctx.toml"}

var (
	ErrPolicyUnset   = errors.New("missing-context policy is not set")
	ErrUnknownPolicy = errors.New("unknown missing-context policy")
)

// Policy decides what happens to a selected type that declares no context.
type Policy string

const (
	PolicyUnset Policy = ""
	// PolicyFallback emits one unit generic over a synthesized context.
	PolicyFallback Policy = "fallback"
	// PolicyError reports a MissingContext diagnostic.
	PolicyError Policy = "error"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.TrimSpace(s)); p {
	case PolicyFallback, PolicyError:
		return p, nil
	case PolicyUnset:
		return PolicyUnset, ErrPolicyUnset
	default:
		return PolicyUnset, errors.WithHint(
			errors.Wrapf(ErrUnknownPolicy, "%q", s),
			"use \"fallback\" or \"error\"")
	}
}

// Config is the complete generator configuration.
type Config struct {
	// MissingContext is the policy for types without a context directive.
	MissingContext Policy `yaml:"missing_context" toml:"missing_context"`
	// Output overrides the generated file name.
	Output string `yaml:"output" toml:"output"`
	// Suffix forms the generated file name from the package name when Output
	// is empty.
	Suffix string `yaml:"suffix" toml:"suffix"`
	// Jobs bounds concurrent emission; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Types selects additional types by name even without a directive.
	Types NameList `yaml:"types" toml:"types"`
	// Runtime is the import path of the formatting runtime.
	Runtime string `yaml:"runtime" toml:"runtime"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MissingContext: PolicyFallback,
		Suffix:         DefaultSuffix,
		Runtime:        DefaultRuntime,
	}
}

// OutputName is the generated file name for a package.
func (c Config) OutputName(pkgName string) string {
	if c.Output != "" {
		return c.Output
	}

	return pkgName + c.Suffix
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if _, err := ParsePolicy(string(c.MissingContext)); err != nil {
		return err
	}

	if c.Jobs < 0 {
		return errors.Newf("jobs must not be negative, got %d", c.Jobs)
	}

	if c.Output != "" {
		if err := checkFileName("output", c.Output); err != nil {
			return err
		}
	} else if !strings.HasSuffix(c.Suffix, ".go") {
		return errors.Newf("suffix %q must end in .go", c.Suffix)
	}

	if c.Runtime == "" {
		return errors.New("runtime import path is empty")
	}

	return nil
}

func checkFileName(key, name string) error {
	if !strings.HasSuffix(name, ".go") {
		return errors.Newf("%s %q must end in .go", key, name)
	}

	if strings.ContainsAny(name, `/\`) {
		return errors.WithHint(
			errors.Newf("%s %q must be a file name", key, name),
			"the file is always written next to the package sources")
	}

	return nil
}

// Load returns Default overlaid with the file at path. A directory is searched
// for one of FileNames; finding none there is not an error. An empty path
// returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}

	if info.IsDir() {
		found, ok := Find(path)
		if !ok {
			return cfg, nil
		}

		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}

	if err := Parse(filepath.Ext(path), data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "%s", path)
	}

	return cfg, nil
}

// Find returns the first config file of FileNames present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}

	return "", false
}

// Parse decodes data into cfg according to the file extension. Keys absent
// from data keep their current values; unknown keys are rejected.
func Parse(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "failed to parse config YAML")
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(err, "failed to parse config TOML")
		}

		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}

			return errors.Newf("unknown config keys: %s", strings.Join(keys, ", "))
		}
	default:
		return errors.WithHint(
			errors.Newf("unsupported config format %q", ext),
			"use a .yaml, .yml or .toml file")
	}

	return nil
}
