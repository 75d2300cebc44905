package bridge

import (
	"errors"
)

var (
	// ErrBufferFull indicates the buffer rejected a byte.
	ErrBufferFull = errors.New("buffer full")
	// ErrBufferEmpty indicates the buffer has no byte to read.
	ErrBufferEmpty = errors.New("buffer empty")
	// ErrInvalidCapacity indicates a non-positive buffer capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
)
