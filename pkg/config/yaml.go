package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML renders c as YAML with two-space indentation. A nil config renders
// as nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := encodeYAML(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader renders c after a comment block and one blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteString("\n\n")
	}
	if c != nil {
		if err := encodeYAML(&buf, c); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeYAML(buf *bytes.Buffer, c *Config) error {
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// FromYAML decodes data over the default configuration, so keys the document
// leaves out keep their defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
