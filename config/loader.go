package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/kbukum/xesmeta/errors"
)

// FileSystem abstracts the file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the real file system.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Defaulter is implemented by configs that fill in unset fields.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by configs that check themselves.
type Validator interface {
	Validate() error
}

// Files are the resolved inputs of one Load.
type Files struct {
	ConfigFile string
	EnvFile    string
}

// Options holds loader dependencies and explicit file paths.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// Option configures Load.
type Option func(*Options)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. The file must exist.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path. The file must exist.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = prefix }
}

// Resolve returns the config and .env files Load would read for service.
// Explicit paths win; otherwise standard locations are searched and an
// empty path means none was found.
func Resolve(service string, o Options) Files {
	fs := o.FileSystem
	if fs == nil {
		fs = OSFileSystem{}
	}
	files := Files{ConfigFile: o.ConfigFile, EnvFile: o.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = firstExisting(fs, configCandidates(service))
	}
	if files.EnvFile == "" {
		files.EnvFile = firstExisting(fs, envCandidates(service))
	}
	return files
}

func configCandidates(service string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", service),
		fmt.Sprintf("./cmd/%s/config.yaml", service),
		"./config/config.yml",
		"./config.yml",
		"./config.yaml",
	}
}

func envCandidates(service string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", service),
		fmt.Sprintf("./.env.%s", service),
		"./.env",
	}
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// Load reads configuration for service into cfg, which must be a pointer to
// a struct with mapstructure tags. Failures are CONFIG_LOAD_ERROR, except
// that a Validate failure is returned unchanged.
func Load(service string, cfg any, opts ...Option) error {
	o := Options{EnvPrefix: service}
	for _, opt := range opts {
		opt(&o)
	}
	if o.FileSystem == nil {
		o.FileSystem = OSFileSystem{}
	}
	files := Resolve(service, o)

	v := viper.New()
	if files.ConfigFile != "" {
		if !o.FileSystem.Exists(files.ConfigFile) {
			return apperrors.ConfigLoad(fmt.Errorf("config file %s not found", files.ConfigFile))
		}
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return apperrors.ConfigLoad(fmt.Errorf("read %s: %w", files.ConfigFile, err))
		}
	}

	if files.EnvFile != "" {
		if !o.FileSystem.Exists(files.EnvFile) {
			return apperrors.ConfigLoad(fmt.Errorf("env file %s not found", files.EnvFile))
		}
		if err := o.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return apperrors.ConfigLoad(fmt.Errorf("load %s: %w", files.EnvFile, err))
		}
	}
	bindEnv(v, envPrefix(o.EnvPrefix), os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return apperrors.ConfigLoad(fmt.Errorf("unmarshal config for %s: %w", service, err))
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if val, ok := cfg.(Validator); ok {
		return val.Validate()
	}
	return nil
}

func envPrefix(prefix string) string {
	prefix = strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(prefix))
	if prefix == "" {
		return ""
	}
	return prefix + "_"
}

// bindEnv sets every variable carrying prefix under each nested key it
// could stand for. viper ignores the variants that match no field.
func bindEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		key = strings.TrimPrefix(key, prefix)
		if key == "" {
			continue
		}
		for _, variant := range keyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// keyVariants lists the dotted keys an env name may map to.
//
//	STORE_REDIS_KEY_PREFIX -> store_redis_key_prefix, store.redis.key.prefix,
//	store.redis_key_prefix, store.redis.key_prefix, ...
func keyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(lower)
	add(strings.Join(parts, "."))

	// Every way of splitting the name into a dotted head and an
	// underscored tail, at one or two cut points.
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
		for j := i + 1; j < len(parts); j++ {
			add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:j], "_") + "." + strings.Join(parts[j:], "_"))
		}
	}
	return out
}
