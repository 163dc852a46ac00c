package chipscript

import (
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"github.com/aligator/chipscript/checkpoint"
)

// These errors may occur while looking up or extracting a file.
var (
	ErrNotFound      = errors.New("no such file in the root directory")
	ErrDirectoryRead = errors.New("could not read the root directory")
	ErrFileRead      = errors.New("could not read the file content")
)

// Directory entry layout inside one 32 byte record.
const (
	dirEntrySize = 32

	entryNameLen   = 11
	entryWriteTime = 22
	entryWriteDate = 24
	entryCluster   = 26
	entryFileSize  = 28

	entryFree    = 0x00
	entryDeleted = 0xE5
)

// End-of-content markers recognized during extraction.
const (
	contentEnd       = 0x00
	contentEndLegacy = 0x1A
)

// Layout describes the fixed sector convention of the simplified volume:
// a single root directory sector and the base sector of the data region.
// Sectors per cluster is always 1, so cluster n resolves to the sector
// DataRegionSector + n - 2.
type Layout struct {
	RootDirSector    uint32
	DataRegionSector uint32
}

// DefaultLayout places the root directory right behind the boot and FAT
// sectors of a minimal volume and the data region behind a 32 sector
// root directory.
var DefaultLayout = Layout{
	RootDirSector:    2,
	DataRegionSector: 34,
}

// RootEntry is the decoded view of one live root directory entry.
type RootEntry struct {
	Name    string
	Cluster uint16
	Size    uint32
	ModTime time.Time
}

// Volume interprets a BlockStore using the fixed layout convention.
// It is read-only and holds no state besides the store and the layout.
type Volume struct {
	store  BlockStore
	layout Layout
}

// NewVolume creates a Volume on top of the given store.
func NewVolume(store BlockStore, layout Layout) *Volume {
	return &Volume{
		store:  store,
		layout: layout,
	}
}

// Locate scans the root directory sector for a file with the given 8.3 name
// (upper case, for example "PROGRAM.C") and returns its cluster number.
// The scan stops at the first free record, so records behind it are never
// examined. Deleted records are skipped without comparison.
// Returns ErrNotFound if no record matches.
func (v *Volume) Locate(filename string) (uint16, error) {
	sector, err := v.store.ReadSector(v.layout.RootDirSector)
	if err != nil {
		return 0, checkpoint.Wrap(err, ErrDirectoryRead)
	}

	for offset := 0; offset+dirEntrySize <= len(sector); offset += dirEntrySize {
		record := sector[offset : offset+dirEntrySize]

		if record[0] == entryFree {
			break
		}
		if record[0] == entryDeleted {
			continue
		}

		if shortName(record[:entryNameLen]) == filename {
			return clusterOf(record), nil
		}
	}

	return 0, checkpoint.From(ErrNotFound)
}

// Extract reads the content of the file starting at the given cluster.
// Only the first sector of the file is read, copying stops at the first
// 0x00 or 0x1A byte or after maxLen-1 bytes, whichever comes first.
// Content behind the first sector is never read, regardless of the real
// file size.
func (v *Volume) Extract(cluster uint16, maxLen int) ([]byte, error) {
	sector, err := v.store.ReadSector(v.clusterSector(cluster))
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrFileRead)
	}

	content := make([]byte, 0, maxLen)
	for _, b := range sector {
		if b == contentEnd || b == contentEndLegacy || len(content) >= maxLen-1 {
			break
		}
		content = append(content, b)
	}

	return content, nil
}

// ListRoot decodes all live entries of the root directory sector.
// Like Locate it stops at the first free record and skips deleted ones.
func (v *Volume) ListRoot() ([]RootEntry, error) {
	sector, err := v.store.ReadSector(v.layout.RootDirSector)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrDirectoryRead)
	}

	var entries []RootEntry
	for offset := 0; offset+dirEntrySize <= len(sector); offset += dirEntrySize {
		record := sector[offset : offset+dirEntrySize]

		if record[0] == entryFree {
			break
		}
		if record[0] == entryDeleted {
			continue
		}

		entries = append(entries, RootEntry{
			Name:    shortName(record[:entryNameLen]),
			Cluster: clusterOf(record),
			Size:    binary.LittleEndian.Uint32(record[entryFileSize:]),
			ModTime: modTimeOf(record),
		})
	}

	return entries, nil
}

// clusterSector resolves a cluster number to its sector index.
// Sectors per cluster is fixed at 1, cluster numbering starts at 2.
func (v *Volume) clusterSector(cluster uint16) uint32 {
	return v.layout.DataRegionSector + uint32(cluster) - 2
}

// clusterOf reads the cluster field of a record.
// Unlike the rest of the record it is stored high byte first.
func clusterOf(record []byte) uint16 {
	return binary.BigEndian.Uint16(record[entryCluster:])
}

func modTimeOf(record []byte) time.Time {
	writeDate := ParseDate(binary.LittleEndian.Uint16(record[entryWriteDate:]))
	writeTime := ParseTime(binary.LittleEndian.Uint16(record[entryWriteTime:]))

	// An invalid date stamp makes the whole timestamp unusable.
	// A zero time on the other hand is perfectly valid.
	if writeDate.IsZero() {
		return time.Time{}
	}

	return time.Date(writeDate.Year(), writeDate.Month(), writeDate.Day(),
		writeTime.Hour(), writeTime.Minute(), writeTime.Second(), 0, time.UTC)
}

// shortName builds the comparison name from an 11 byte 8.3 name field:
// the space-padded name and extension parts are stripped and joined with
// a '.' only if the extension part is not empty.
func shortName(field []byte) string {
	name := strings.TrimRight(string(field[:8]), " ")
	ext := strings.TrimRight(string(field[8:11]), " ")

	if ext != "" {
		name += "."
	}

	return name + ext
}
