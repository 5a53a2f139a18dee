package zoom

import "errors"

// ErrInvalidLevel indicates an attempt to store a non-positive zoom level.
var ErrInvalidLevel = errors.New("invalid zoom level")

// ErrTableCreation indicates the zoom_preferences table could not be created.
var ErrTableCreation = errors.New("creating zoom_preferences table")

// ErrStateFile indicates the YAML state file could not be read or written.
var ErrStateFile = errors.New("zoom state file")
