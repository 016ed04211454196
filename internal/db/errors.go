package db

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("key not found")

// Op names a store operation for error context.
type Op string

// Store operations.
const (
	OpGet       Op = "get"
	OpSet       Op = "set"
	OpDel       Op = "del"
	OpMGet      Op = "mget"
	OpZAdd      Op = "zadd"
	OpZRem      Op = "zrem"
	OpZRevRange Op = "zrevrange"
	OpZCard     Op = "zcard"
)

// Error wraps a backend failure with the operation that produced it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("db %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
