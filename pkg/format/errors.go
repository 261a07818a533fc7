package format

import "github.com/pkg/errors"

var (
	// ErrUnsupportedConstruct is returned for statements and syntax outside the
	// supported query grammar. The wrapping error names the construct.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrEncoding is returned when input or rendered output is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8")

	// ErrWouldFormat reports that formatting would change the input.
	ErrWouldFormat = errors.New("input would be reformatted")

	// ErrInvalidWidth is returned for a maximum width smaller than 1.
	ErrInvalidWidth = errors.New("max width must be greater than zero")
)
