package tree

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is matched (via errors.Is) by every *InvalidPathError.
var ErrInvalidPath = errors.New("invalid path")

// InvalidPathError is returned when a path references a non-existent child.
// It is a programmer error: paths should be validated, or come from the tree
// itself (e.g. from FindPaths).
type InvalidPathError struct {
	Path       Path // the complete path
	Depth      int  // position within Path of the offending index
	Index      int  // the offending child index
	ChildCount int  // number of children available at Depth
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("finding node failed: invalid path %s: index %d at depth %d not in [0…%d)",
		e.Path, e.Index, e.Depth, e.ChildCount)
}

// Is lets errors.Is match ErrInvalidPath.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}
