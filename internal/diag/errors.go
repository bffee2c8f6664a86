package diag

import "errors"

var (
	// ErrDuplicateDescriptor indicates two rules declared the same descriptor id.
	ErrDuplicateDescriptor = errors.New("diag: duplicate descriptor id")
	// ErrMalformedTemplate indicates a message template with broken placeholders.
	ErrMalformedTemplate = errors.New("diag: malformed message template")
	// ErrArgumentCount indicates Format was called with the wrong number of args.
	ErrArgumentCount = errors.New("diag: argument count mismatch")
	// ErrEmptyDescriptorID indicates a descriptor without an id.
	ErrEmptyDescriptorID = errors.New("diag: empty descriptor id")
	// ErrUnknownSeverity indicates an unrecognized severity name.
	ErrUnknownSeverity = errors.New("diag: unknown severity")
)
