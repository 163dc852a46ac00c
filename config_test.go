package chipscript

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
	}{
		{
			name: "full configuration",
			content: `image: sdcard.img
layout:
  root_dir_sector: 16
  data_region_sector: 48
`,
			want: Config{
				Image: "sdcard.img",
				Layout: LayoutConfig{
					RootDirSector:    16,
					DataRegionSector: 48,
				},
			},
		},
		{
			name:    "missing keys keep their defaults",
			content: "image: sdcard.img\n",
			want: Config{
				Image: "sdcard.img",
				Layout: LayoutConfig{
					RootDirSector:    DefaultLayout.RootDirSector,
					DataRegionSector: DefaultLayout.DataRegionSector,
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if err := afero.WriteFile(fsys, "config.yaml", []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := LoadConfig(fsys, "config.yaml")
			if err != nil {
				t.Fatalf("LoadConfig() error = %v, want none", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(afero.NewMemMapFs(), "nope.yaml")
		if !errors.Is(err, ErrConfigRead) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigRead", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "config.yaml", []byte("layout: [broken"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(fsys, "config.yaml")
		if !errors.Is(err, ErrConfigRead) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigRead", err)
		}
	})
}

func TestConfig_VolumeLayout(t *testing.T) {
	config := DefaultConfig()
	if got := config.VolumeLayout(); got != DefaultLayout {
		t.Errorf("VolumeLayout() = %+v, want %+v", got, DefaultLayout)
	}
}
