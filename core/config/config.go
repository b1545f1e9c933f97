package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"disruption-sync/core/database"
	"disruption-sync/core/logger"
	"disruption-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings of one disruption-sync run. The database section is a base
// that the positional host, port, credential and database arguments of extract and
// update override.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the store connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage used by s3:// event patterns.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig reads path/.env (if any) into the environment, then resolves every field from
// DATABASE_*, LOG_* and STORAGE_* variables, falling back to the default tags.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	// Defaults also register every key so AutomaticEnv can resolve it.
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	// DATABASE_HOST -> database.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &config, nil
}

// registerDefaults walks the mapstructure-tagged fields of t, nesting keys for struct
// sections, and sets each leaf's `default` tag (possibly empty) in v.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, name)
			continue
		}
		v.SetDefault(name, field.Tag.Get("default"))
	}
}
