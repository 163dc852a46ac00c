package chipscript

import (
	"bytes"
	"fmt"
)

var printPrefix = []byte("print(")

// Interpreter consumes program text statement by statement, feeding the
// OutputLog and the VariableTable until the buffer ends or the first error
// is recorded. The containers are owned by the caller and shared with the
// controller's snapshot.
type Interpreter struct {
	vars *VariableTable
	log  *OutputLog
	rec  *ErrorRecord

	lastOutput int16
}

// NewInterpreter creates an Interpreter writing into the given containers.
func NewInterpreter(vars *VariableTable, log *OutputLog, rec *ErrorRecord) *Interpreter {
	return &Interpreter{
		vars: vars,
		log:  log,
		rec:  rec,
	}
}

// Run executes src to completion or to the first recorded error.
// The statement forms are:
//
//	// comment to end of line
//	print( expression ) ;
//	identifier = expression ;
//	;
//
// Anything else records UnexpectedToken. Once the ErrorRecord is set no
// further statement is consumed.
func (in *Interpreter) Run(src []byte) {
	ev := &evaluator{src: src, vars: in.vars}

	pos := 0
	for pos < len(src) && !in.rec.IsSet() {
		pos = in.statement(ev, src, pos)
	}
}

// LastOutput returns the value of the last executed print statement.
func (in *Interpreter) LastOutput() int16 {
	return in.lastOutput
}

func (in *Interpreter) statement(ev *evaluator, src []byte, pos int) int {
	pos = skipSpace(src, pos)
	if pos >= len(src) {
		return pos
	}

	c := src[pos]
	switch {
	case c == '/' && pos+1 < len(src) && src[pos+1] == '/':
		return skipComment(src, pos)

	case c == ';':
		// Empty statement.
		return pos + 1

	case bytes.HasPrefix(src[pos:], printPrefix):
		return in.printStatement(ev, src, pos+len(printPrefix))

	case isIdentStart(c):
		return in.assignStatement(ev, src, pos)
	}

	in.fail(errUnexpectedToken(c))
	return pos
}

// printStatement handles the rest of "print( expression ) ;" with pos behind
// the opening parenthesis. The output line is recorded before the closing
// parenthesis and the semicolon are checked, so a parse error there still
// leaves the output in place.
func (in *Interpreter) printStatement(ev *evaluator, src []byte, pos int) int {
	value, pos, serr := ev.expression(pos)
	if serr != nil {
		in.fail(serr)
		return pos
	}

	in.lastOutput = value
	in.log.Append(fmt.Sprintf("OUT: %d", value))

	pos, ok := in.expect(src, pos, ')', errExpectedCloseParen)
	if !ok {
		return pos
	}

	pos, _ = in.expect(src, pos, ';', errExpectedSemicolon)
	return pos
}

// assignStatement handles "identifier = expression ;" with pos at the first
// identifier byte.
func (in *Interpreter) assignStatement(ev *evaluator, src []byte, pos int) int {
	name, pos := scanIdentifier(src, pos)
	name = truncateName(name)

	pos, ok := in.expect(src, pos, '=', errExpectedEquals)
	if !ok {
		return pos
	}

	value, pos, serr := ev.expression(pos)
	if serr != nil {
		in.fail(serr)
		return pos
	}

	in.vars.Set(name, value)
	in.log.Append(fmt.Sprintf("%s = %d", name, value))

	pos, _ = in.expect(src, pos, ';', errExpectedSemicolon)
	return pos
}

// expect consumes the given byte after optional whitespace. It records
// UnexpectedEnd when the buffer ends mid-statement and the caller's error
// when another byte is found.
func (in *Interpreter) expect(src []byte, pos int, want byte, missing func() *ScriptError) (int, bool) {
	pos = skipSpace(src, pos)
	if pos >= len(src) {
		in.fail(errUnexpectedEnd())
		return pos, false
	}
	if src[pos] != want {
		in.fail(missing())
		return pos, false
	}
	return pos + 1, true
}

func (in *Interpreter) fail(serr *ScriptError) {
	in.rec.Set(serr.Message)
}

// skipComment advances behind the end of a "//" line comment, consuming the
// trailing newline if present.
func skipComment(src []byte, pos int) int {
	for pos < len(src) && src[pos] != '\n' {
		pos++
	}
	if pos < len(src) {
		pos++
	}
	return pos
}
