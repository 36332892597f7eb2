// Package config loads service configuration from a YAML file, a .env file
// and the process environment, in that order of increasing precedence.
//
// Applications embed ServiceConfig in their own struct:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Store store.Config   `yaml:"store" mapstructure:"store"`
//	}
//
//	var cfg Config
//	err := config.Load("xesmeta", &cfg)
//
// Environment variables carry the upper-cased service name as prefix and
// use underscores for nesting: XESMETA_STORE_BACKEND sets store.backend.
// After unmarshalling, Load calls ApplyDefaults and then Validate when the
// target implements them.
package config
