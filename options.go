package imgschem

import (
	"errors"
	"fmt"
	"os"

	"github.com/bodgit/imgschem/schematic"
	"gopkg.in/yaml.v3"
)

var errMaxColors = errors.New("imgschem: max_colors must be between 0 and 256")

// Options configure a Converter.
type Options struct {
	// Namespace is the block identifier prefix used in schematics.
	Namespace string `yaml:"namespace"`
	// DataVersion is written to every schematic.
	DataVersion int32 `yaml:"data_version"`
	// MaxColors, if non-zero, reduces the image to at most this many
	// colours before blocks are picked which also bounds the palette.
	MaxColors int `yaml:"max_colors"`
	// Dither enables Floyd-Steinberg error diffusion when reducing colours.
	Dither bool `yaml:"dither"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Namespace:   schematic.Namespace,
		DataVersion: schematic.DataVersion,
	}
}

func (o Options) validate() error {
	if o.MaxColors < 0 || o.MaxColors > 256 {
		return errMaxColors
	}
	return nil
}

func (o Options) schematic() *schematic.Options {
	return &schematic.Options{
		Namespace:   o.Namespace,
		DataVersion: o.DataVersion,
	}
}

// LoadOptions reads options from a YAML file. Any field not present keeps
// its default value.
func LoadOptions(file string) (Options, error) {
	o := DefaultOptions()

	b, err := os.ReadFile(file)
	if err != nil {
		return o, err
	}

	if err := yaml.Unmarshal(b, &o); err != nil {
		return o, fmt.Errorf("%s: %w", file, err)
	}

	if err := o.validate(); err != nil {
		return o, err
	}

	return o, nil
}
