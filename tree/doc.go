/*
Package tree implements a mutable tree of property bags, addressed by
structural paths and by stable node identifiers.

Clients describe the shape of a tree with a plain nested literal, a "spec
tree": a Props map with an optional "children" entry holding further spec
trees. Materialize turns a spec tree into a tree of linked Nodes, assigning
every node an identifier and a back-reference to its parent's identifier.

	root := tree.Materialize(tree.Props{
	    "name": "root",
	    "children": []tree.Props{{"name": "a"}, {"name": "b"}},
	}, tree.SequenceGenerator(0))

Nodes are located either by a Path (a list of child indices, starting at
the root) or by identifier:

	node, err := tree.Resolve(root, tree.Path{1})     // node "b"
	path, ok := tree.FindFirstPath(root, node.ID)     // [1]

A path with an index out of range is a programmer error and is reported as
an *InvalidPathError, which matches ErrInvalidPath with errors.Is.
An identifier which cannot be found is a normal, transient condition and is
reported as soft absence (ok == false or a nil result).

Mutators

Type Tree bundles a root node with an identifier generator and offers
the path-addressed mutators AddNode, ReplaceChildNodes, DeleteNode,
UpdateNodeProps and ReadNodeProps. Mutators edit nodes in place and return
a Result holding a shallow clone of the root. The new root identity signals
"something changed" to clients tracking reference equality; untouched
subtrees are shared with the previous root.

Every node keeps its Props and the Props of its children aligned: for a
node n, n.Props["children"] is a []Props whose i-th entry is the very map
held by the i-th child's Props.

This package is not safe for concurrent use. A tree must be confined to a
single owner; see package treestate for a facade managing such an owner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treestate.tree'.
func tracer() tracing.Trace {
	return tracing.Select("treestate.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("treestate.tree: "+msg, msgargs...)
		panic(msg)
	}
}
