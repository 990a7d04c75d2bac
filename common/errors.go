package common

import "errors"

var (
	ErrorInvalidValue    = errors.New("invalid value")
	ErrorInvalidLambda   = errors.New("smoothing parameter must be greater than zero")
	ErrorLengthMismatch  = errors.New("depth and value slices have different lengths")
	ErrorTooFewHorizons  = errors.New("need at least two horizons")
	ErrorInvalidSequence = errors.New("invalid horizon sequence")
)
