package chipscript

import (
	"errors"

	"github.com/aligator/chipscript/checkpoint"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrConfigRead occurs when a configuration file cannot be read or parsed.
var ErrConfigRead = errors.New("could not read the configuration")

// Config is the host-side configuration for mounting a volume image.
// The core itself takes explicit parameters, this only exists for the
// command line front-ends.
type Config struct {
	// Image is the path of the volume image file.
	Image string `yaml:"image"`

	Layout LayoutConfig `yaml:"layout"`
}

// LayoutConfig mirrors Layout for the configuration file.
type LayoutConfig struct {
	RootDirSector    uint32 `yaml:"root_dir_sector"`
	DataRegionSector uint32 `yaml:"data_region_sector"`
}

// DefaultConfig returns a Config using the built-in layout convention and
// no image.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			RootDirSector:    DefaultLayout.RootDirSector,
			DataRegionSector: DefaultLayout.DataRegionSector,
		},
	}
}

// LoadConfig reads a YAML configuration from path inside the given
// filesystem. Keys missing from the file keep their default values.
func LoadConfig(fsys afero.Fs, path string) (Config, error) {
	config := DefaultConfig()

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return config, checkpoint.Wrap(err, ErrConfigRead)
	}

	err = yaml.Unmarshal(content, &config)
	if err != nil {
		return config, checkpoint.Wrap(err, ErrConfigRead)
	}

	return config, nil
}

// VolumeLayout converts the configured layout to a Layout.
func (c Config) VolumeLayout() Layout {
	return Layout{
		RootDirSector:    c.Layout.RootDirSector,
		DataRegionSector: c.Layout.DataRegionSector,
	}
}
