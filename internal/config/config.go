// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/modpoll/internal/backend"
)

// Config is a connection profile.
// Every field is optional; command-line values override it.
type Config struct {
	Mode      string `yaml:"mode"`   // rtu | tcp
	Device    string `yaml:"device"` // serial path or host
	Slave     *int   `yaml:"slave"`
	TimeoutMs *int   `yaml:"timeout_ms"`

	RTU RTUConfig `yaml:"rtu"`
	TCP TCPConfig `yaml:"tcp"`
}

// ---- TRANSPORT SECTIONS ----

// Values stay raw strings; they go through backend.SetParam like any option.

type RTUConfig struct {
	Baud     string `yaml:"baud"`
	DataBits string `yaml:"data_bits"`
	StopBits string `yaml:"stop_bits"`
	Parity   string `yaml:"parity"`
}

type TCPConfig struct {
	Port string `yaml:"port"`
}

// Load reads and decodes a profile file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes a profile. Unknown keys are rejected.
func Parse(raw []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// empty file: nothing to override
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Params returns the backend option codes the profile sets for kind, in
// the order the command line would apply them.
func (c *Config) Params(kind backend.Kind) []backend.Param {
	var out []backend.Param

	add := func(code byte, v string) {
		if v != "" {
			out = append(out, backend.Param{Code: code, Value: v})
		}
	}

	switch kind {
	case backend.KindRTU:
		add('b', c.RTU.Baud)
		add('d', c.RTU.DataBits)
		add('s', c.RTU.StopBits)
		add('p', c.RTU.Parity)
	case backend.KindTCP:
		add('p', c.TCP.Port)
	}

	return out
}
