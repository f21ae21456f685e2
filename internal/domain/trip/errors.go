package trip

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that no document exists for the requested slug.
var ErrNotFound = errors.New("trip document not found")

// ShapeError reports the first minimal-shape check a raw document failed.
// Check is "document" for unparseable input, otherwise one of "trip",
// "days" or "pins".
type ShapeError struct {
	Check  string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("trip document shape: %s: %s", e.Check, e.Detail)
}

// IsShapeError reports whether err wraps a ShapeError.
func IsShapeError(err error) bool {
	var shapeErr *ShapeError
	return errors.As(err, &shapeErr)
}
