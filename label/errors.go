package label

import "errors"

var (
	// ErrMissingLabel is returned for a marked type whose label is empty.
	ErrMissingLabel = errors.New("kafka type must have a label")
	// ErrInvalidLabel is returned for a label that cannot be written to the
	// flattened mapping unescaped.
	ErrInvalidLabel = errors.New("invalid kafka type label")
	// ErrLabelCollision is returned when distinct types share one label.
	ErrLabelCollision = errors.New("kafka type label must be unique")
	// ErrUnresolvedType is returned when a candidate name cannot be resolved
	// back to a type.
	ErrUnresolvedType = errors.New("kafka type cannot be resolved")
)
