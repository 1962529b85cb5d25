package core

import "errors"

var (
	ErrClosed = errors.New("server closed")
	ErrSignal = errors.New("caught signal")
)
