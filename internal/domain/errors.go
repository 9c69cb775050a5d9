package domain

import "errors"

// Sentinel error kinds for pipeline operations. Callers classify
// failures with errors.Is across wrapping chains.
var (
	// ErrNotFound marks a missing or unreadable source image.
	ErrNotFound = errors.New("image not found")
	// ErrInference marks a failed call to the inference service.
	ErrInference = errors.New("inference call failed")
	// ErrParse marks a model response that cannot be mapped to the
	// expected schema.
	ErrParse = errors.New("response does not match schema")
	// ErrPersistence marks a failure writing the run record or image copy.
	ErrPersistence = errors.New("run persistence failed")
)
