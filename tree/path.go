package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node by the child indices leading to it from the root.
// The empty (or nil) path denotes the root.
type Path []int

func (path Path) String() string {
	if len(path) == 0 {
		return "/"
	}
	var sb = strings.Builder{}
	for _, inx := range path {
		sb.WriteRune('/')
		sb.WriteString(strconv.Itoa(inx))
	}
	return sb.String()
}

// Clone returns a copy of path which does not share storage with path.
func (path Path) Clone() Path {
	if path == nil {
		return nil
	}
	c := make(Path, len(path))
	copy(c, path)
	return c
}

// IsRoot is true for the empty path.
func (path Path) IsRoot() bool {
	return len(path) == 0
}

// Child returns a new path extending path by child index i.
func (path Path) Child(i int) Path {
	c := make(Path, len(path), len(path)+1)
	copy(c, path)
	return append(c, i)
}

// Split separates path into the path of the parent and the last index.
// For the root path, Split returns (nil, -1).
func (path Path) Split() (parent Path, last int) {
	if len(path) == 0 {
		return nil, -1
	}
	return path[:len(path)-1].Clone(), path[len(path)-1]
}

// Equal compares two paths element-wise. nil and empty paths are equal.
func (path Path) Equal(other Path) bool {
	if len(path) != len(other) {
		return false
	}
	for i := range path {
		if path[i] != other[i] {
			return false
		}
	}
	return true
}

// ParsePath reads a path in the notation produced by Path.String,
// e.g. "/0/2". Both "/" and "" denote the root.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	path := make(Path, len(parts))
	for i, part := range parts {
		inx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed path %q: %w", s, err)
		}
		path[i] = inx
	}
	return path, nil
}
