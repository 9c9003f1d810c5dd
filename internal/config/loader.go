package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/glitchwizard/tcore/internal/output"
)

// LoaderOptions carries the flag values a cobra command collected,
// which take precedence over the config file and environment.
type LoaderOptions struct {
	// ConfigFlag is --config.
	ConfigFlag string
	// CacheDirFlag is --cache-dir.
	CacheDirFlag string
	// CacheDisabledFlag is --no-cache, non-nil only when the flag was
	// explicitly set.
	CacheDisabledFlag *bool
	// Verbose logs each value's resolved source via LogResolvedValues.
	Verbose bool
}

// Load resolves the config file path, reads it through viper (tolerating
// a missing file), binds TCORE_-prefixed environment variables, and
// layers flag values on top with ResolveCacheDir's precedence, returning
// the fully resolved Config.
func Load(opts LoaderOptions) (*Config, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, err
	}
	output.Debug("resolved config path", "path", pathResult.ConfigPath, "source", pathResult.Source)

	v := viper.New()
	v.SetConfigFile(pathResult.ConfigPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TCORE")
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("projectRoot", defaults.ProjectRoot)
	v.SetDefault("cacheDir", defaults.CacheDir)
	v.SetDefault("cacheDisabled", defaults.CacheDisabled)
	v.SetDefault("logLevel", defaults.LogLevel)

	if _, err := os.Stat(pathResult.ConfigPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	} else {
		output.Debug("config file not found, using defaults", "path", pathResult.ConfigPath)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cacheDirResult := ResolveCacheDir(ResolveCacheDirOptions{
		FlagValue:   opts.CacheDirFlag,
		ConfigValue: cfg.CacheDir,
	})
	cfg.CacheDir = ExpandTilde(cacheDirResult.CacheDir)

	if opts.CacheDisabledFlag != nil {
		cfg.CacheDisabled = *opts.CacheDisabledFlag
	}

	if opts.Verbose {
		LogResolvedValues([]ResolvedValue{
			{Key: "configPath", Value: pathResult.ConfigPath, Source: pathResult.Source},
			{
				Key: "cacheDir", Value: cfg.CacheDir, Source: cacheDirResult.Source,
				Shadowed: shadowedAsAny(cacheDirResult.Shadowed),
			},
		})
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func shadowedAsAny(in map[ConfigSource]string) map[ConfigSource]any {
	out := make(map[ConfigSource]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
