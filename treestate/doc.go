/*
Package treestate manages a materialized tree as mutable application state.

A Store owns one tree (see package tree), a cursor tracking a "current
node", and a record of the last operation performed on it. Clients change
the tree only through the Store:

	store := treestate.New(spec, treestate.WithOnChange(func(s treestate.State, e treestate.Event) {
	    redraw(s.Root)
	}))
	res, err := store.AddNode(tree.Path{0}, tree.Props{"name": "new"})

Every mutator is offered twice: addressed by path (AddNode) and addressed
by node identifier (AddNodeByID). Identifiers which cannot be found lead to
a no-op, invalid paths to an error matching tree.ErrInvalidPath.

Reducers

Mutators are held in a registry of named tree.MutatorFn. Clients may
register operations of their own (WithCustomReducers, Register); these are
dispatched exactly like the built-ins, with the same event recording and
cursor tracking.

Cursor

The cursor follows its node by identifier. After every change of the tree
it is re-resolved, so it stays with the same logical node when siblings are
inserted before it or ancestors are restructured. If its node disappears,
the cursor becomes absent.

A Store must be confined to a single goroutine or otherwise serialized by
the client.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treestate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treestate.store'.
func tracer() tracing.Trace {
	return tracing.Select("treestate.store")
}
