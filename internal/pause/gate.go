package pause

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/gitpurge/internal/utils"
)

const (
	shortFlagTokenConstant = "-p"
	longFlagTokenConstant  = "--pause"
	promptMessageConstant  = "paused -- press enter to exit"
)

// Requested reports whether the raw invocation arguments contain the pause flag.
// Only exact tokens match; parsed flags are never consulted, so a pause still
// happens when the remaining arguments fail to parse.
func Requested(arguments []string) bool {
	for _, argument := range arguments {
		if argument == shortFlagTokenConstant || argument == longFlagTokenConstant {
			return true
		}
	}
	return false
}

// Gate prompts on output and blocks until a line arrives on input.
type Gate struct {
	input  io.Reader
	output io.Writer
}

// NewGate constructs a Gate. A nil input releases immediately.
func NewGate(input io.Reader, output io.Writer) *Gate {
	return &Gate{input: input, output: utils.NewFlushingWriter(output)}
}

// Wait prints the prompt and reads a single line. End of input also releases the gate.
func (gate *Gate) Wait() error {
	if _, writeError := fmt.Fprintln(gate.output, promptMessageConstant); writeError != nil {
		return writeError
	}
	if gate.input == nil {
		return nil
	}

	_, readError := bufio.NewReader(gate.input).ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return readError
	}
	return nil
}
