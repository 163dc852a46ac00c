package chipscript

// ProgramFileName is the fixed 8.3 name of the script looked up on the volume.
const ProgramFileName = "PROGRAM.C"

// ProgramCapacity bounds the program text of one run. Extraction never copies
// more than ProgramCapacity-1 bytes, longer files are silently truncated.
const ProgramCapacity = 512

// DefaultProgram is the built-in script used whenever the medium or the
// program file is unavailable. It must stay byte-identical between runs,
// downstream behavior depends on its exact output sequence.
const DefaultProgram = `// Simple test program
x = 10;
print(x);
y = 20;
sum = x + y;
print(sum);
`

// Loader produces the program text for one run. Loading never fails: every
// storage problem, from an absent medium to a failed sector read, falls back
// to DefaultProgram. The fallback is a designed success path, not an error.
type Loader struct {
	volume  *Volume
	present func() bool
}

// NewLoader creates a Loader reading from the given volume.
// present reports whether the medium is currently available, debounced by the
// caller. A nil volume or a nil present function counts as an absent medium.
func NewLoader(volume *Volume, present func() bool) *Loader {
	return &Loader{
		volume:  volume,
		present: present,
	}
}

// Load returns the content of the program file, or DefaultProgram if the
// medium is absent, the file does not exist or any read fails.
func (l *Loader) Load() []byte {
	if l.volume == nil || l.present == nil || !l.present() {
		return []byte(DefaultProgram)
	}

	cluster, err := l.volume.Locate(ProgramFileName)
	if err != nil {
		return []byte(DefaultProgram)
	}

	content, err := l.volume.Extract(cluster, ProgramCapacity)
	if err != nil {
		return []byte(DefaultProgram)
	}

	return content
}
