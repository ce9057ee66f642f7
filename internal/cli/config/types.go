// Package config provides configuration management for the stk CLI.
package config

// Default values for configuration.
const (
	DefaultStorePath = ".stk/collection.db"
	DefaultFormat    = "nexus"
)

// Config holds all CLI configuration options.
type Config struct {
	StorePath string `koanf:"store_path"`
	Format    string `koanf:"format"`
	Anonymous bool   `koanf:"anonymous"`
	Weighted  bool   `koanf:"weighted"`
	Outgroup  bool   `koanf:"outgroup"`
	Verbose   bool   `koanf:"verbose"`

	// Output is the file results are written to. Empty means stdout.
	Output string `koanf:"output"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		StorePath: DefaultStorePath,
		Format:    DefaultFormat,
	}
}
