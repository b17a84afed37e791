package solver

import "errors"

// Build-time validation errors. All malformed input is reported from
// ModelBuilder.Build as a wrapped sentinel; the solve loop never sees
// malformed models.
var (
	// ErrAmbiguousPrecedence marks a stop that declares more than one
	// precedence target.
	ErrAmbiguousPrecedence = errors.New("stop precedes more than one stop")
	// ErrUnknownStop marks a precedence target or initial stop whose id does
	// not resolve to a registered stop.
	ErrUnknownStop = errors.New("unknown stop id")
	// ErrDuplicateStop marks two stops or two vehicles sharing an id.
	ErrDuplicateStop = errors.New("duplicate id")
	// ErrBadDistanceMatrix marks a matrix whose dimensions do not cover the
	// registered stops.
	ErrBadDistanceMatrix = errors.New("distance matrix dimensions do not match stops")
	// ErrNoModel is returned by SolverBuilder.Build when no model was attached.
	ErrNoModel = errors.New("solver requires a model")
)
