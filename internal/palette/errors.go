package palette

import "errors"

// ErrUnknownSeverity indicates a label that does not name a severity level.
var ErrUnknownSeverity = errors.New("unknown severity")

// ErrNoSeverities indicates BuildTable was given an empty level list.
var ErrNoSeverities = errors.New("no severities to build a table from")

// ErrDuplicateSeverity indicates a blank or repeated level name.
var ErrDuplicateSeverity = errors.New("blank or duplicate severity name")

// ErrUnknownFormat indicates an unsupported render format.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrNameCollision indicates two severity names render to the same CSS
// custom property.
var ErrNameCollision = errors.New("severity names collide")
