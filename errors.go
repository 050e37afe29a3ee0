package htm

import "errors"

var (
	// ErrInvalidDimensions is returned for a region with a non-positive width or height.
	ErrInvalidDimensions = errors.New("htm: invalid region dimensions")
	// ErrInvalidParams is returned for out-of-range tuning parameters.
	ErrInvalidParams = errors.New("htm: invalid region parameters")
	// ErrInvalidInputSize is returned when a region is initialized with inputSize <= 0.
	ErrInvalidInputSize = errors.New("htm: input size must be positive")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("htm: region already initialized")
	// ErrNotInitialized is returned by Compute before Initialize.
	ErrNotInitialized = errors.New("htm: region not initialized")
	// ErrInputLength is returned when an input pattern does not match the input size.
	ErrInputLength = errors.New("htm: input length mismatch")
)
