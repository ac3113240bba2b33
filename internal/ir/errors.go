package ir

import "github.com/pkg/errors"

// Failure classes raised while building the graph. OutOfRange and
// InvalidNodeKind are construction-protocol violations that abort the build.
var (
	ErrOutOfRange       = errors.New("out of range")
	ErrInvalidNodeKind  = errors.New("invalid node kind")
	ErrUndefinedLocally = errors.New("variable not defined in block")
)
