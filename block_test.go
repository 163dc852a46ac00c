package chipscript

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
)

// countingReader wraps a ReadSeeker and counts seeks to observe the sector
// cache.
type countingReader struct {
	io.ReadSeeker
	seeks int
}

func (c *countingReader) Seek(offset int64, whence int) (int64, error) {
	c.seeks++
	return c.ReadSeeker.Seek(offset, whence)
}

func testImage(sectors int) []byte {
	image := make([]byte, sectors*SectorSize)
	for i := range image {
		image[i] = byte(i / SectorSize)
	}
	return image
}

func TestSectorImage_ReadSector(t *testing.T) {
	store := NewSectorImage(bytes.NewReader(testImage(3)))

	sector, err := store.ReadSector(2)
	if err != nil {
		t.Fatalf("ReadSector() error = %v, want none", err)
	}
	if len(sector) != SectorSize {
		t.Fatalf("sector length = %v, want %v", len(sector), SectorSize)
	}
	for i, b := range sector {
		if b != 2 {
			t.Fatalf("sector[%d] = %v, want 2", i, b)
		}
	}
}

func TestSectorImage_cachesTheCurrentSector(t *testing.T) {
	reader := &countingReader{ReadSeeker: bytes.NewReader(testImage(3))}
	store := NewSectorImage(reader)

	if _, err := store.ReadSector(1); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ReadSector(1); err != nil {
		t.Fatal(err)
	}
	if reader.seeks != 1 {
		t.Errorf("seeks = %v, want 1 for a repeated read", reader.seeks)
	}

	if _, err := store.ReadSector(0); err != nil {
		t.Fatal(err)
	}
	if reader.seeks != 2 {
		t.Errorf("seeks = %v, want 2 after a different sector", reader.seeks)
	}
}

func TestSectorImage_readFailures(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
		index uint32
	}{
		{
			name:  "partial sector at the end of the image",
			image: testImage(1)[:100],
			index: 0,
		},
		{
			name:  "sector behind the end of the image",
			image: testImage(2),
			index: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSectorImage(bytes.NewReader(tt.image))

			_, err := store.ReadSector(tt.index)
			if !errors.Is(err, ErrSectorRead) {
				t.Errorf("ReadSector() error = %v, want ErrSectorRead", err)
			}
		})
	}
}

func TestOpenImage(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "volume.img", testImage(2), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := OpenImage(fsys, "volume.img")
	if err != nil {
		t.Fatalf("OpenImage() error = %v, want none", err)
	}
	defer store.Close()

	sector, err := store.ReadSector(1)
	if err != nil {
		t.Fatalf("ReadSector() error = %v, want none", err)
	}
	if sector[0] != 1 {
		t.Errorf("sector[0] = %v, want 1", sector[0])
	}
}

func TestOpenImage_missingFile(t *testing.T) {
	_, err := OpenImage(afero.NewMemMapFs(), "nope.img")
	if !errors.Is(err, ErrSectorRead) {
		t.Errorf("OpenImage() error = %v, want ErrSectorRead", err)
	}
}
