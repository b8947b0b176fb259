package tree

// Materialize builds a tree of nodes from a spec tree. Every node gets a
// fresh identifier from gen and a back-reference to its parent. Entries of
// spec[ChildrenKey] are materialized recursively; any spec without a
// sequence of children is a leaf.
//
// spec is not modified. Properties other than ChildrenKey are deep-copied,
// so later mutations of the tree do not leak into the caller's literal.
// A nil gen defaults to UUIDGenerator.
//
// Cycles in spec are not detected and lead to non-termination.
func Materialize(spec Props, gen IDGenerator) *Node {
	if gen == nil {
		gen = UUIDGenerator()
	}
	return materialize(spec, gen)
}

func materialize(spec Props, gen IDGenerator) *Node {
	node := NewNode(gen(), spec.withoutChildren().Clone())
	specChildren, ok := spec.ChildProps()
	if !ok {
		if v, found := spec[ChildrenKey]; found {
			node.Props[ChildrenKey] = v // not a sequence: keep, treat as leaf
		}
		return node
	}
	node.Props[ChildrenKey] = make([]Props, 0, len(specChildren))
	for _, chspec := range specChildren {
		node.AppendChild(materialize(chspec, gen))
	}
	tracer().Debugf("materialized node %s with %d children", node.ID, node.ChildCount())
	return node
}
