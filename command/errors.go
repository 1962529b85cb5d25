package command

import (
	"errors"
	"fmt"
)

// Client error kinds. Their textual descriptions are part of the wire
// contract and serialize verbatim into error replies. The numeric kinds
// (integer, overflow) live in the store package next to the arithmetic
// that produces them.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongArgs      = errors.New("wrong number of arguments")
	ErrSyntax         = errors.New("syntax error")
)

func unknownCommand(name string) error {
	return fmt.Errorf("%w '%s'", ErrUnknownCommand, name)
}

func wrongArgs(name string) error {
	return fmt.Errorf("%w for '%s' command", ErrWrongArgs, name)
}
