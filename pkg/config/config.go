package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v2"

	"github.com/birdayz/emojibytes/pkg/alphabet"
)

// Alphabet is a user-defined alphabet. Symbols are taken rune by rune.
type Alphabet struct {
	Name    string `yaml:"name"`
	Symbols string `yaml:"symbols"`
}

// Build validates the configured symbols.
func (a *Alphabet) Build() (*alphabet.Alphabet, error) {
	abc, err := alphabet.FromString(a.Symbols)
	if err != nil {
		return nil, fmt.Errorf("alphabet %q: %w", a.Name, err)
	}
	return abc, nil
}

type Config struct {
	CurrentAlphabet  string      `yaml:"current-alphabet"`
	AlphabetOverride string      `yaml:"-"`
	Alphabets        []*Alphabet `yaml:"alphabets"`
	// configPath is the file path used for reading and writing this config.
	configPath string `yaml:"-"`
}

func (c *Config) HasAlphabet(name string) bool {
	return c.Alphabet(name) != nil
}

// Alphabet returns the configured alphabet called name, or nil.
func (c *Config) Alphabet(name string) *Alphabet {
	for _, a := range c.Alphabets {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AddAlphabet validates symbols and appends a new alphabet. It does not write.
func (c *Config) AddAlphabet(name, symbols string) error {
	if alphabet.IsBuiltin(name) {
		return fmt.Errorf("alphabet name %q is reserved by a built-in alphabet", name)
	}
	if c.HasAlphabet(name) {
		return fmt.Errorf("alphabet with name '%v' exists already", name)
	}
	a := &Alphabet{Name: name, Symbols: symbols}
	if _, err := a.Build(); err != nil {
		return err
	}
	c.Alphabets = append(c.Alphabets, a)
	return nil
}

// RemoveAlphabet drops the named alphabet. It does not write.
func (c *Config) RemoveAlphabet(name string) error {
	for i, a := range c.Alphabets {
		if a.Name == name {
			c.Alphabets = append(c.Alphabets[:i], c.Alphabets[i+1:]...)
			if c.CurrentAlphabet == name {
				c.CurrentAlphabet = ""
			}
			return nil
		}
	}
	return fmt.Errorf("alphabet with name '%v' does not exist", name)
}

func (c *Config) SetCurrentAlphabet(name string) error {
	if !alphabet.IsBuiltin(name) && !c.HasAlphabet(name) {
		return fmt.Errorf("could not find alphabet with name %v", name)
	}

	oldAlphabet := c.CurrentAlphabet
	c.CurrentAlphabet = name
	if err := c.Write(); err != nil {
		// "Revert" change, either everything is successful or nothing.
		c.CurrentAlphabet = oldAlphabet
		return err
	}
	return nil
}

// ActiveAlphabet returns the selected alphabet name, override first.
// Empty means nothing is selected.
func (c *Config) ActiveAlphabet() string {
	if c == nil {
		return ""
	}
	if c.AlphabetOverride != "" {
		return c.AlphabetOverride
	}
	return c.CurrentAlphabet
}

// Path is the file this config is read from and written to.
func (c *Config) Path() string { return c.configPath }

func (c *Config) Write() error {
	configPath := c.configPath
	if configPath == "" {
		var err error
		configPath, err = getDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, "config.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encoder := yaml.NewEncoder(tmpFile)
	if err := encoder.Encode(c); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flush config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp config file: %w", err)
	}
	c.configPath = configPath
	return nil
}

func ReadConfig(cfgPath string) (c Config, err error) {
	resolvedPath, err := resolveConfigPath(cfgPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.OpenFile(resolvedPath, os.O_RDONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{configPath: resolvedPath}, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.configPath = resolvedPath
	return c, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func resolveConfigPath(cfgPath string) (string, error) {
	if cfgPath == "" {
		return getDefaultConfigPath()
	}
	if !fileExists(cfgPath) {
		return "", fmt.Errorf("config file %q does not exist", cfgPath)
	}
	return cfgPath, nil
}

func getDefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".emojibytes", "config"), nil
}
