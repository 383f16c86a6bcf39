package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file configuration of the command line tool.
type Config struct {
	Prompt         string `yaml:"prompt"`
	LogLevel       string `yaml:"log_level"`
	HistoryFile    string `yaml:"history_file"`
	Prelude        bool   `yaml:"prelude"`
	MaxStackHeight int    `yaml:"max_stack_height"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   "somelisp> ",
		LogLevel: "warn",
		Prelude:  true,
	}
}

// ReadConfigFile decodes the YAML file at path over DefaultConfig.  An empty
// path returns DefaultConfig.
func ReadConfigFile(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	err = c.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Decode decodes YAML into c.  Fields absent from b keep their values.
// Unknown fields are an error.
func (c *Config) Decode(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err != nil {
		return err
	}
	if c.MaxStackHeight < 0 {
		return fmt.Errorf("negative max_stack_height: %d", c.MaxStackHeight)
	}
	return nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + string(os.PathSeparator) + ".somelisp_history"
}
