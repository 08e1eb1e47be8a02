package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// ErrConfig is wrapped by every failure to find, read or parse the config.
var ErrConfig = errors.New("config")

type size uint64

// maxSize bounds buffer sizes; the buffer is allocated after stage 2.
const maxSize = 16 * units.MiB

func (s *size) UnmarshalText(t []byte) error {
	v, err := units.RAMInBytes(string(t))
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("size %q must be positive", t)
	}
	if v > maxSize {
		return fmt.Errorf("size %q is larger than %s", t, units.BytesSize(maxSize))
	}
	*s = size(v)
	return nil
}

func (s size) String() string {
	return units.BytesSize(float64(s))
}

// Sandbox selects the privilege drop. Empty fields are not configured.
type Sandbox struct {
	User   string `toml:"user" env:"JAIL_USER"`
	Chroot string `toml:"chroot" env:"JAIL_CHROOT"`
}

type IO struct {
	Buffer size `toml:"buffer" env:"JAIL_BUFFER_SIZE"`
}

type Config struct {
	Sandbox Sandbox `toml:"sandbox"`
	IO      IO      `toml:"io"`
}

const defaultBuffer = 32 * units.KiB

// Default is the config used when no file is found: no chroot, no user.
func Default() *Config {
	return &Config{IO: IO{Buffer: defaultBuffer}}
}

// BufferSize is the copy buffer size in bytes.
func (c *Config) BufferSize() int {
	return int(c.IO.Buffer)
}

// DefaultPaths are searched in order when $JAIL_CONFIG is unset.
var DefaultPaths = []string{
	"/etc/jailcat.conf",
	"/usr/local/etc/jailcat.conf",
}

// Source finds and loads config files.
type Source struct {
	Fs    afero.Fs
	Paths []string
	// Explicit means Paths were named by the operator, so finding none of
	// them is an error rather than a fallback to Default.
	Explicit bool
}

type sourceEnv struct {
	Path string `env:"JAIL_CONFIG"`
}

// NewSource searches the OS filesystem, at $JAIL_CONFIG if set or at
// DefaultPaths.
func NewSource() (*Source, error) {
	e := &sourceEnv{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("%w: parse env: %w", ErrConfig, err)
	}
	if e.Path != "" {
		return &Source{Fs: afero.NewOsFs(), Paths: []string{e.Path}, Explicit: true}, nil
	}
	return &Source{Fs: afero.NewOsFs(), Paths: DefaultPaths}, nil
}

func (s *Source) checkExists(path string) (bool, error) {
	_, err := s.Fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Find returns the first candidate path that exists. Finding nothing is only
// an error for an Explicit source.
func (s *Source) Find() (string, bool, error) {
	for _, p := range s.Paths {
		ok, err := s.checkExists(p)
		if err != nil {
			return "", false, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if ok {
			return p, true, nil
		}
	}
	if s.Explicit {
		return "", false, fmt.Errorf("%w: %v: %w", ErrConfig, s.Paths, os.ErrNotExist)
	}
	return "", false, nil
}

// Load parses the file at path over the defaults and applies environment
// overrides.
func (s *Source) Load(path string) (*Config, error) {
	content, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
	}
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrConfig, path, err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any JAIL_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: parse env config: %w", ErrConfig, err)
	}
	return nil
}
