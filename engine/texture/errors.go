package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedSlice is wrapped by SliceSizeError when a raw file is shorter than one layer.
	ErrTruncatedSlice = errors.New("truncated raw slice file")
	// ErrSliceSizeMismatch is wrapped by SliceSizeError when a raw file is longer than one layer.
	ErrSliceSizeMismatch = errors.New("raw slice file size does not match triplane_resolution")
	// ErrInvalidResolution is returned for a layer side that is not in [1, MaxResolution].
	ErrInvalidResolution = errors.New("invalid triplane resolution")
)

// MissingSliceError reports the first plane feature file that could not be found.
type MissingSliceError struct {
	// File is the base name of the missing file.
	File string
	// Dir is the scene folder that was searched.
	Dir string
}

func (e *MissingSliceError) Error() string {
	return fmt.Sprintf("Can't find file %s in path %s! Make sure that all plane feature .raw files are in the path you selected.", e.File, e.Dir)
}

// SliceSizeError reports a raw file whose length does not equal 4*resolution^2 bytes.
type SliceSizeError struct {
	File     string
	Expected int64
	Actual   int64
}

func (e *SliceSizeError) Error() string {
	if e.Actual < e.Expected {
		return fmt.Sprintf("%s: %s (expected %d bytes, found %d)", ErrTruncatedSlice, e.File, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: %s (expected %d bytes, found %d)", ErrSliceSizeMismatch, e.File, e.Expected, e.Actual)
}

func (e *SliceSizeError) Unwrap() error {
	if e.Actual < e.Expected {
		return ErrTruncatedSlice
	}
	return ErrSliceSizeMismatch
}
