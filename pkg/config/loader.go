package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/logging"
	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "LABWS_"

// Names of the layers recorded in Config.Sources.
const (
	SourceDefaults = "defaults"
	SourceEnv      = "env"
	SourceFlags    = "flags"
)

// environment variables that share the prefix but are not settings
var nonConfigEnv = map[string]bool{
	paths.EnvRoot:      true,
	paths.EnvConfigDir: true,
	paths.EnvStateDir:  true,
}

// LoadOptions select the layers to load.
type LoadOptions struct {
	// Root is the project root searched for a project config.
	Root string
	// ConfigFile replaces the project config lookup. It must exist.
	ConfigFile string
	// Overrides are flag values keyed like the config, e.g. "labs" or
	// "output.format".
	Overrides map[string]interface{}
}

// Load builds the effective configuration and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}
	sources = append(sources, SourceDefaults)

	for _, path := range paths.UserConfigFiles() {
		if !exists(path) {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
		break
	}

	projectFile := opts.ConfigFile
	if projectFile != "" {
		if !exists(projectFile) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", projectFile).
				WithDetail("path", projectFile)
		}
	} else if opts.Root != "" {
		projectFile, _ = paths.FindProjectConfig(opts.Root)
	}
	if projectFile != "" {
		if err := loadFile(k, projectFile); err != nil {
			return nil, err
		}
		sources = append(sources, projectFile)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if nonConfigEnv[s] {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	})
	envK := koanf.New(".")
	if err := envK.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
	}
	if len(envK.Keys()) > 0 {
		if err := k.Merge(envK); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment")
		}
		sources = append(sources, SourceEnv)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
		sources = append(sources, SourceFlags)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	logger.Debug().
		Strs("sources", sources).
		Str("config", cfg.String()).
		Msg("Configuration loaded")

	if err := cfg.Validate(); err != nil {
		return nil, errors.AddDetail(err, "sources", strings.Join(sources, ","))
	}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       trimmedSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// trimmedSliceHookFunc splits strings into slices like
// mapstructure.StringToSliceHookFunc but also trims the parts, so that
// LABWS_LABS="lab1, lab2" works. A blank string becomes an empty list.
func trimmedSliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		raw, _ := data.(string)
		if strings.TrimSpace(raw) == "" {
			return []string{}, nil
		}
		parts := strings.Split(raw, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
