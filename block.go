package chipscript

import (
	"errors"
	"io"

	"github.com/aligator/chipscript/checkpoint"
	"github.com/spf13/afero"
)

// SectorSize is the fixed size of one medium sector in bytes.
const SectorSize = 512

// ErrSectorRead occurs when a sector could not be read from the medium.
var ErrSectorRead = errors.New("could not read the sector")

// BlockStore provides raw read access to the medium, one sector at a time.
// It is the only interface between the core and the physical medium; the core
// never writes.
// Generated mock using mockgen:
//  mockgen -source=block.go -destination=blockstore_mock.go -package chipscript
type BlockStore interface {
	ReadSector(index uint32) ([]byte, error)
}

// SectorImage is a BlockStore backed by a volume image, for example a file
// containing a raw dump of the medium. It caches the most recently read
// sector so that repeated reads of the same index touch the image only once.
type SectorImage struct {
	reader io.ReadSeeker
	closer io.Closer

	current uint32
	buffer  [SectorSize]byte
}

// NewSectorImage creates a SectorImage reading from the given reader.
// The reader must stay valid for the lifetime of the SectorImage.
func NewSectorImage(reader io.ReadSeeker) *SectorImage {
	return &SectorImage{
		reader: reader,
		// Set to a sector unequal to any valid one to avoid serving the empty
		// buffer before the first read.
		current: 0xFFFFFFFF,
	}
}

// OpenImage opens the volume image at path inside the given filesystem.
// The returned SectorImage owns the file; release it with Close.
func OpenImage(fsys afero.Fs, path string) (*SectorImage, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrSectorRead)
	}

	image := NewSectorImage(file)
	image.closer = file
	return image, nil
}

// ReadSector reads the sector with the given index from the image.
// The returned slice is only valid until the next call to ReadSector.
func (s *SectorImage) ReadSector(index uint32) ([]byte, error) {
	// Only load it once.
	if index == s.current {
		return s.buffer[:], nil
	}

	_, err := s.reader.Seek(int64(index)*SectorSize, io.SeekStart)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrSectorRead)
	}

	_, err = io.ReadFull(s.reader, s.buffer[:])
	if err != nil {
		// The cache may contain a partial read now.
		s.current = 0xFFFFFFFF
		if err == io.EOF {
			// A sector fully behind the end of the image is still a
			// failed read, not a clean end of file.
			err = io.ErrUnexpectedEOF
		}
		return nil, checkpoint.Wrap(err, ErrSectorRead)
	}

	s.current = index

	return s.buffer[:], nil
}

// Close releases the underlying image file if OpenImage provided one.
func (s *SectorImage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
