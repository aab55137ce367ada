package config

import (
	"context"
	"strings"

	"github.com/spf13/viper"
)

type contextKey struct{ key string }

var configKey = &contextKey{"viper"}

// New creates a new Viper instance with default configuration.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")))
	v.AutomaticEnv() // read in environment variables that match

	// Initialize default settings
	setDefaults(v)

	return v
}

// SetViper saves the Viper instance into the context.
func SetViper(ctx context.Context, v *viper.Viper) context.Context {
	if v == nil {
		v = New()
	}

	return context.WithValue(ctx, configKey, v)
}

// Viper retrieves the Viper instance from the context.
func Viper(ctx context.Context) *viper.Viper {
	if v, ok := ctx.Value(configKey).(*viper.Viper); ok {
		return v
	}

	// fallback to global viper instance
	return viper.GetViper()
}

// LoadFixture returns a context carrying a fresh Viper instance populated from
// the named config file in dir; for testing only!
func LoadFixture(dir, name string) (context.Context, error) {
	v := New()
	v.SetConfigName(name)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return SetViper(context.Background(), v), nil
}
