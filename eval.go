package chipscript

// evaluator is a recursive scanner turning a cursor position in program text
// into a 16 bit value. It keeps no state of its own between calls, variables
// live in the VariableTable.
//
// The grammar is strictly left-associative with no operator precedence:
//
//	expression := term (op term)*
//	op         := '+' | '-' | '*' | '/'
//	term       := integer-literal | identifier | '(' expression ')'
//
// Each operator applies to the running accumulator and the next term as it
// is scanned, so "2+3*4" is (2+3)*4 = 20. This order is intentional and must
// not be "fixed".
type evaluator struct {
	src  []byte
	vars *VariableTable
}

// expression scans one expression starting at pos. It returns the value, the
// position behind the last consumed byte and the first error, if any.
// On error the value is always 0.
func (ev *evaluator) expression(pos int) (int16, int, *ScriptError) {
	acc, pos, serr := ev.term(pos, errInvalidExpressionStart)
	if serr != nil {
		return 0, pos, serr
	}

	for {
		pos = skipSpace(ev.src, pos)
		if pos >= len(ev.src) || !isOperator(ev.src[pos]) {
			return acc, pos, nil
		}
		op := ev.src[pos]
		pos++

		var rhs int16
		rhs, pos, serr = ev.term(pos, errExpectedValueAfterOperator)
		if serr != nil {
			return 0, pos, serr
		}

		// All arithmetic wraps to 16 bits. Going through int32 keeps the
		// wraparound explicit and avoids the -32768/-1 overflow trap of a
		// native 16 bit division.
		switch op {
		case '+':
			acc = int16(int32(acc) + int32(rhs))
		case '-':
			acc = int16(int32(acc) - int32(rhs))
		case '*':
			acc = int16(int32(acc) * int32(rhs))
		case '/':
			if rhs == 0 {
				return 0, pos, errDivisionByZero()
			}
			acc = int16(int32(acc) / int32(rhs))
		}
	}
}

// term scans one term. missing builds the error used when no term can start
// at pos: the caller decides whether that means an invalid expression start
// or a missing value behind an operator.
func (ev *evaluator) term(pos int, missing func() *ScriptError) (int16, int, *ScriptError) {
	pos = skipSpace(ev.src, pos)
	if pos >= len(ev.src) {
		return 0, pos, missing()
	}

	c := ev.src[pos]
	switch {
	case c == '(':
		value, next, serr := ev.expression(pos + 1)
		if serr != nil {
			return 0, next, serr
		}
		next = skipSpace(ev.src, next)
		if next >= len(ev.src) || ev.src[next] != ')' {
			return 0, next, errExpectedCloseParen()
		}
		return value, next + 1, nil

	case isDigit(c):
		return ev.literal(pos)

	case isIdentStart(c):
		name, next := scanIdentifier(ev.src, pos)
		// Reading an unknown name creates it with value 0.
		return ev.vars.Get(name), next, nil
	}

	return 0, pos, missing()
}

// literal scans an unsigned decimal digit run. There is no sign token,
// negative values only exist through subtraction.
func (ev *evaluator) literal(pos int) (int16, int, *ScriptError) {
	var value int16
	for pos < len(ev.src) && isDigit(ev.src[pos]) {
		value = int16(int32(value)*10 + int32(ev.src[pos]-'0'))
		pos++
	}
	return value, pos, nil
}

// scanIdentifier consumes an identifier and returns it untruncated together
// with the position behind it. Length bounding happens at the table.
func scanIdentifier(src []byte, pos int) (string, int) {
	start := pos
	for pos < len(src) && isIdentPart(src[pos]) {
		pos++
	}
	return string(src[start:pos]), pos
}

// skipSpace advances pos over space, tab, CR and LF.
func skipSpace(src []byte, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
