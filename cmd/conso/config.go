package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command-line flags. Flags given explicitly win over
// values from the file.
type fileConfig struct {
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	Sheets      []string `yaml:"sheets"`
	Range       string   `yaml:"range"`
	PrintArea   *bool    `yaml:"print_area"`
	Column      *int     `yaml:"column"`
	AutoColumn  *bool    `yaml:"auto_column"`
	BlankPolicy string   `yaml:"blank_policy"`
	Timezone    string   `yaml:"timezone"`
	Delimiter   string   `yaml:"delimiter"`
	Encoding    string   `yaml:"encoding"`
	Inputs      []string `yaml:"inputs"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// apply sets every flag that was not given on the command line from the file.
func (c *fileConfig) apply(flags *pflag.FlagSet) error {
	values := map[string][]string{
		"log-level":    single(c.LogLevel),
		"log-format":   single(c.LogFormat),
		"sheet":        c.Sheets,
		"range":        single(c.Range),
		"blank-policy": single(c.BlankPolicy),
		"tz":           single(c.Timezone),
		"delimiter":    single(c.Delimiter),
		"encoding":     single(c.Encoding),
	}
	if c.PrintArea != nil {
		values["print-area"] = single(strconv.FormatBool(*c.PrintArea))
	}
	if c.Column != nil {
		values["column"] = single(strconv.Itoa(*c.Column))
	}
	if c.AutoColumn != nil {
		values["auto-column"] = single(strconv.FormatBool(*c.AutoColumn))
	}

	for name, vals := range values {
		if flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		for _, v := range vals {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("config %s: %w", name, err)
			}
		}
	}
	return nil
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
