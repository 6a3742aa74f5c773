package gdml

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyScene is returned by WriteExtro when no solid was added, so
	// the world volume has no extent.
	ErrEmptyScene = errors.New("gdml: scene is empty, world volume is undefined")

	// ErrInvalidName is returned for names that are empty after sanitizing.
	ErrInvalidName = errors.New("gdml: invalid solid name")

	// ErrReservedName is returned for names that equal a reserved
	// identifier or start with a reserved tag.
	ErrReservedName = errors.New("gdml: solid name is reserved")

	// ErrDuplicateName is returned when two solids sanitize to one name.
	ErrDuplicateName = errors.New("gdml: duplicate solid name")

	// ErrNilMesh is returned when AddSolid is given no mesh.
	ErrNilMesh = errors.New("gdml: nil mesh")
)

// WriteError wraps an I/O failure of the output stream. Once a session has
// seen one, every later operation returns it.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("gdml: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// StateError is the panic value raised when a session operation is called
// out of order.
type StateError struct {
	Op    string
	State State
}

func (e StateError) Error() string {
	return fmt.Sprintf("gdml: %s called in state %s", e.Op, e.State)
}
