package rating

import "errors"

var (
	ErrInvalidResult = errors.New("invalid match result")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrUnknownMatch  = errors.New("unknown match")

	// Should never be returned. It means the clamp in ComputeRatingDelta is broken.
	ErrRoundingInvariant = errors.New("rating delta has the wrong sign for the outcome")
)
