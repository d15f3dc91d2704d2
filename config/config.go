// Package config loads client settings from the environment, with optional
// .env file support for local development.
package config

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/hdt3213/goldap/lib/logger"
)

// ClientProperties defines the settings of the command line client
type ClientProperties struct {
	Address      string `env:"GOLDAP_ADDR,default=localhost:389"`
	BindDN       string `env:"GOLDAP_BIND_DN"`
	BindPassword string `env:"GOLDAP_BIND_PASSWORD"`
	BaseDN       string `env:"GOLDAP_BASE_DN"`

	Log logger.Settings
}

// Properties holds the loaded config properties
var Properties *ClientProperties

func init() {
	// defaults, overridden by Load
	Properties = &ClientProperties{
		Address: "localhost:389",
	}
}

// Load reads properties from a .env file (if present) and the environment
func Load(ctx context.Context) (*ClientProperties, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	props := &ClientProperties{}
	if err := envconfig.Process(ctx, props); err != nil {
		return nil, err
	}
	Properties = props
	return props, nil
}
