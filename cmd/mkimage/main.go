package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aligator/chipscript"
)

// main builds a minimal volume image containing a single program file, laid
// out with the fixed convention the chipscript volume reader expects. It is
// mainly useful for producing test fixtures and demo images.
func main() {
	out := flag.String("out", "volume.img", "path of the image to write")
	program := flag.String("program", "", "program source file (default: the built-in program)")
	name := flag.String("name", chipscript.ProgramFileName, "8.3 file name of the program on the volume")
	flag.Parse()

	content := []byte(chipscript.DefaultProgram)
	if *program != "" {
		var err error
		content, err = os.ReadFile(*program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if len(content) > chipscript.SectorSize-1 {
		fmt.Fprintf(os.Stderr, "program is too big: %d bytes do not fit one sector\n", len(content))
		os.Exit(1)
	}

	shortName, err := encodeShortName(*name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	layout := chipscript.DefaultLayout
	image := make([]byte, (layout.DataRegionSector+1)*chipscript.SectorSize)

	// One directory entry pointing at cluster 2, the first data cluster.
	entry := image[layout.RootDirSector*chipscript.SectorSize:]
	copy(entry, shortName[:])
	now := time.Now()
	binary.LittleEndian.PutUint16(entry[22:], encodeTime(now))
	binary.LittleEndian.PutUint16(entry[24:], encodeDate(now))
	binary.BigEndian.PutUint16(entry[26:], 2)
	binary.LittleEndian.PutUint32(entry[28:], uint32(len(content)))

	copy(image[layout.DataRegionSector*chipscript.SectorSize:], content)

	err = os.WriteFile(*out, image, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// encodeShortName packs a name like "PROGRAM.C" into the space-padded
// 11 byte 8.3 field.
func encodeShortName(name string) ([11]byte, error) {
	var field [11]byte
	for i := range field {
		field[i] = ' '
	}

	base := strings.ToUpper(name)
	ext := ""
	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		base, ext = base[:dot], base[dot+1:]
	}

	if base == "" || len(base) > 8 || len(ext) > 3 {
		return field, fmt.Errorf("%q is not a valid 8.3 name", name)
	}

	copy(field[:8], base)
	copy(field[8:], ext)
	return field, nil
}

func encodeDate(t time.Time) uint16 {
	return uint16(t.Day()) | uint16(t.Month())<<5 | uint16(t.Year()-1980)<<9
}

func encodeTime(t time.Time) uint16 {
	return uint16(t.Second()/2) | uint16(t.Minute())<<5 | uint16(t.Hour())<<11
}
