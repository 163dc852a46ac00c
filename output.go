package chipscript

// MaxOutputs bounds the number of output lines of one run.
const MaxOutputs = 10

// MaxOutputLen bounds the length of one output line.
const MaxOutputLen = 31

// MaxErrorLen bounds the length of a recorded error message.
const MaxErrorLen = 63

// OutputLog is the ordered and bounded output of one run. Once full, further
// appends are silently dropped; overlong entries are silently truncated.
type OutputLog struct {
	entries []string
}

// NewOutputLog creates an empty log.
func NewOutputLog() *OutputLog {
	return &OutputLog{
		entries: make([]string, 0, MaxOutputs),
	}
}

// Append adds one entry to the log, truncated to MaxOutputLen.
// A full log drops the entry.
func (l *OutputLog) Append(entry string) {
	if len(l.entries) >= MaxOutputs {
		return
	}
	if len(entry) > MaxOutputLen {
		entry = entry[:MaxOutputLen]
	}
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of all entries in append order.
func (l *OutputLog) Entries() []string {
	entries := make([]string, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len returns the number of entries.
func (l *OutputLog) Len() int {
	return len(l.entries)
}

// Reset drops all entries.
func (l *OutputLog) Reset() {
	l.entries = l.entries[:0]
}

// ErrorRecord holds the first script error of a run. It can be set at most
// once per run, later calls to Set are ignored until the next Reset.
type ErrorRecord struct {
	set     bool
	message string
}

// Set records the message, truncated to MaxErrorLen. Only the first call
// per run takes effect.
func (r *ErrorRecord) Set(message string) {
	if r.set {
		return
	}
	if len(message) > MaxErrorLen {
		message = message[:MaxErrorLen]
	}
	r.set = true
	r.message = message
}

// IsSet reports whether an error has been recorded.
func (r *ErrorRecord) IsSet() bool {
	return r.set
}

// Message returns the recorded message, or "" if none is set.
func (r *ErrorRecord) Message() string {
	return r.message
}

// Reset clears the record.
func (r *ErrorRecord) Reset() {
	r.set = false
	r.message = ""
}
