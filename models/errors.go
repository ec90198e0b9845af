package models

import "fmt"

// UnknownCropError means the crop is not part of the model vocabulary
// or reference catalogue.
type UnknownCropError struct {
	Crop string
}

func (e *UnknownCropError) Error() string {
	return fmt.Sprintf("unknown crop %q", e.Crop)
}

// InvalidRangeError means a numeric input fell outside its allowed bounds.
// Out-of-range values are rejected, never clamped.
type InvalidRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// ModelUnavailableError means a trained model artifact is missing or corrupt.
type ModelUnavailableError struct {
	Artifact string
	Err      error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model artifact %s unavailable: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("model artifact %s unavailable", e.Artifact)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// RegionNotFoundError means the requested state has no cultivation profile.
// Callers degrade to the general profile instead of failing the request.
type RegionNotFoundError struct {
	Region string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region %q not found in cultivation profiles", e.Region)
}
