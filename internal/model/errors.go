package model

import "errors"

var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrDataUnavailable  = errors.New("data unavailable")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
)

// Kind tags a failed analysis for the presentation layer.
type Kind string

const (
	KindNone             Kind = ""
	KindInvalidSymbol    Kind = "invalid_symbol"
	KindDataUnavailable  Kind = "data_unavailable"
	KindInvalidInput     Kind = "invalid_input"
	KindInsufficientData Kind = "insufficient_data"
	KindInternal         Kind = "internal"
)

// KindOf maps err to its taxonomy tag. Unknown errors report KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidSymbol):
		return KindInvalidSymbol
	case errors.Is(err, ErrDataUnavailable):
		return KindDataUnavailable
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	}
	return KindInternal
}
