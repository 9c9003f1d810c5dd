package config

import (
	"os"

	"github.com/glitchwizard/tcore/internal/output"
)

// ConfigSource names where a resolved configuration value came from.
type ConfigSource string

const (
	SourceFlag    ConfigSource = "flag"
	SourceEnv     ConfigSource = "env"
	SourceConfig  ConfigSource = "config"
	SourceDefault ConfigSource = "default"
)

// ResolveCacheDirOptions carries every candidate value for the cache
// directory, in precedence order.
type ResolveCacheDirOptions struct {
	// FlagValue is --cache-dir (empty if not set).
	FlagValue string
	// ConfigValue is cacheDir from the config file (empty if not set).
	ConfigValue string
}

// ResolveCacheDirResult is the resolved cache directory and its source.
type ResolveCacheDirResult struct {
	CacheDir string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveCacheDir resolves the cache directory using precedence:
// (1) --cache-dir flag, (2) TCORE_CACHE_DIR env, (3) config file,
// (4) the built-in default.
func ResolveCacheDir(opts ResolveCacheDirOptions) ResolveCacheDirResult {
	result := ResolveCacheDirResult{Shadowed: make(map[ConfigSource]string)}

	envValue := os.Getenv("TCORE_CACHE_DIR")
	defaultValue, err := DefaultPaths()
	defaultDir := ""
	if err == nil {
		defaultDir = defaultValue.CacheDir
	}

	switch {
	case opts.FlagValue != "":
		result.CacheDir = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		if opts.ConfigValue != "" {
			result.Shadowed[SourceConfig] = opts.ConfigValue
		}
	case envValue != "":
		result.CacheDir = envValue
		result.Source = SourceEnv
		if opts.ConfigValue != "" {
			result.Shadowed[SourceConfig] = opts.ConfigValue
		}
	case opts.ConfigValue != "":
		result.CacheDir = opts.ConfigValue
		result.Source = SourceConfig
	default:
		result.CacheDir = defaultDir
		result.Source = SourceDefault
	}

	return result
}

// ResolveConfigPathOptions carries the --config flag value, if set.
type ResolveConfigPathOptions struct {
	FlagValue string
}

// ResolveConfigPathResult is the resolved config file path and its
// source.
type ResolveConfigPathResult struct {
	ConfigPath string
	Source     ConfigSource
	Shadowed   map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) TCORE_CONFIG env, (3) ~/.tcore/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{Shadowed: make(map[ConfigSource]string)}

	envValue := os.Getenv("TCORE_CONFIG")
	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs each value's resolution (and what it shadowed)
// at debug level, for --verbose runs.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
