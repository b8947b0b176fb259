package tree

import (
	"strconv"

	"github.com/google/uuid"
)

// ID identifies a node. Identifiers are assigned at materialization time and
// stay with a node for its whole life.
type ID string

// NoParent is the parent ID of a root node. Generators must not produce it.
const NoParent ID = ""

// IDGenerator produces node identifiers. Uniqueness is up to the generator;
// the tree tolerates duplicates (see FindPaths).
type IDGenerator func() ID

// UUIDGenerator returns a generator for random (version 4) UUIDs.
// It is the default generator for trees without an explicit one.
func UUIDGenerator() IDGenerator {
	return func() ID {
		return ID(uuid.NewString())
	}
}

// SequenceGenerator returns a generator producing the decimal numbers
// start, start+1, start+2, …
// Sequential identifiers are handy for tests and for debugging output.
func SequenceGenerator(start int) IDGenerator {
	next := start
	return func() ID {
		id := ID(strconv.Itoa(next))
		next++
		return id
	}
}
