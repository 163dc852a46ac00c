package chipscript

import "fmt"

// ErrorKind classifies the recoverable script errors that can end a run.
type ErrorKind int

const (
	DivisionByZero ErrorKind = iota
	InvalidExpressionStart
	ExpectedValueAfterOperator
	ExpectedCloseParen
	ExpectedEquals
	ExpectedSemicolon
	UnexpectedToken
	UnexpectedEnd
)

// ScriptError is a recoverable error raised while evaluating or interpreting
// program text. It ends the current run via the ErrorRecord but is never
// fatal to the host, the next trigger starts from a clean state.
type ScriptError struct {
	Kind    ErrorKind
	Message string
}

func (e *ScriptError) Error() string {
	return e.Message
}

func scriptError(kind ErrorKind, message string) *ScriptError {
	return &ScriptError{Kind: kind, Message: message}
}

func errDivisionByZero() *ScriptError {
	return scriptError(DivisionByZero, "Division by zero")
}

func errInvalidExpressionStart() *ScriptError {
	return scriptError(InvalidExpressionStart, "Invalid expression")
}

func errExpectedValueAfterOperator() *ScriptError {
	return scriptError(ExpectedValueAfterOperator, "Expected value after operator")
}

func errExpectedCloseParen() *ScriptError {
	return scriptError(ExpectedCloseParen, "Expected ')'")
}

func errExpectedEquals() *ScriptError {
	return scriptError(ExpectedEquals, "Expected '='")
}

func errExpectedSemicolon() *ScriptError {
	return scriptError(ExpectedSemicolon, "Expected ';'")
}

func errUnexpectedToken(c byte) *ScriptError {
	return scriptError(UnexpectedToken, fmt.Sprintf("Unexpected token '%c'", c))
}

func errUnexpectedEnd() *ScriptError {
	return scriptError(UnexpectedEnd, "Unexpected end of program")
}
