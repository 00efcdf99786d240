package mdnum

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up in the working directory.
const DefaultConfigName = ".mdnum.yaml"

const (
	configInvalidCode = "CONFIG_INVALID"
	configDecodeCode  = "CONFIG_DECODE_FAILED"
)

// Config holds numbering settings loaded from YAML.
type Config struct {
	MaxLevel      int  `yaml:"max_level"`
	StripExisting bool `yaml:"strip_existing"`
	SpaceHeaders  bool `yaml:"space_headers"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		MaxLevel:      MaxHeadingLevel,
		StripExisting: true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. Unknown keys
// are rejected. A missing file yields a *FileError of kind ErrFileNotFound.
func LoadConfig(path string) (Config, error) {
	data, err := ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config bytes on top of DefaultConfig and validates
// the result. An empty document yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "decode config").
			WithTextCode(configDecodeCode)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.MaxLevel,
			validation.Required.Error(fmt.Sprintf("must be between 1 and %d", MaxHeadingLevel)),
			validation.Min(1),
			validation.Max(MaxHeadingLevel),
		),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid config").
			WithTextCode(configInvalidCode)
	}
	return nil
}

// Options converts the config into numbering options.
func (c Config) Options() []Option {
	return []Option{
		WithMaxLevel(c.MaxLevel),
		WithStripExisting(c.StripExisting),
		WithHeaderSpacing(c.SpaceHeaders),
	}
}
