package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/bartossh/addrgen/address"
	"github.com/bartossh/addrgen/batch"
	"github.com/bartossh/addrgen/display"
	"github.com/bartossh/addrgen/logging"
	"github.com/bartossh/addrgen/telemetry"
)

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Configuration is the main configuration of the application that corresponds to the *.yaml file
// that holds the configuration.
type Configuration struct {
	Generator address.Config   `yaml:"generator"`
	Display   display.Config   `yaml:"display"`
	Batch     batch.Config     `yaml:"batch"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	Logging   logging.Config   `yaml:"logging"`
}

// Default returns configuration used when no file is given.
func Default() Configuration {
	return Configuration{
		Generator: address.Config{Hash: "sha256"},
		Display:   display.Config{Format: "text", Encoding: "hex"},
		Logging:   logging.Config{Level: "warn", Source: "addrgen"},
	}
}

// Read reads the configuration from the file and returns the Configuration with set fields according to the yaml setup.
// Fields not present in the file keep Default values.
// ${VAR} references in the file are expanded from the environment, a .env file next to the configuration is loaded first if present.
func Read(path string) (Configuration, error) {
	if path == "" {
		return Default(), nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configuration{}, fmt.Errorf("in file %q: %w", envFile, err)
	}

	main := Default()
	err = yaml.UnmarshalStrict(expandEnv(buf), &main)
	if err != nil {
		return Configuration{}, fmt.Errorf("in file %q: %w", path, err)
	}

	return main, nil
}

// expandEnv replaces ${VAR} references only, any other $ is kept as is.
func expandEnv(buf []byte) []byte {
	return envReference.ReplaceAllFunc(buf, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}
