package tree

// Tree bundles the root of a materialized tree with the generator used for
// identifiers of nodes added later on. The zero value is an empty tree,
// for which every mutator is a no-op.
type Tree struct {
	Root  *Node
	NewID IDGenerator // nil defaults to UUIDGenerator
}

// New materializes spec and returns it as a Tree.
func New(spec Props, gen IDGenerator) Tree {
	if gen == nil {
		gen = UUIDGenerator()
	}
	return Tree{Root: Materialize(spec, gen), NewID: gen}
}

func (t Tree) ids() IDGenerator {
	if t.NewID == nil {
		return UUIDGenerator()
	}
	return t.NewID
}

// Result describes the effect of a mutator.
//
// Root is the root after the operation. If the tree structure or a node's
// props changed, Root is a new identity (a shallow clone); otherwise it is
// the unchanged input root.
// Which of the other fields are set depends on the operation.
type Result struct {
	Root  *Node   // root identity after the operation
	Node  *Node   // the node operated on: added, deleted, updated or read
	Nodes []*Node // nodes created by a bulk operation
	Props Props   // props passed in, written or read
}

// MutatorFn is the signature shared by all path-addressed operations on a
// tree, built-in or client-defined. A nil Result with a nil error signals
// a no-op. Mutators should fail with an *InvalidPathError for invalid paths.
//
// path is owned by the mutator, callers pass a copy.
type MutatorFn func(t Tree, path Path, args ...any) (*Result, error)

// AddNode materializes spec and appends it as the last child of the node at
// path. Result.Node is the new node, Result.Props is spec.
func (t Tree) AddNode(path Path, spec Props) (*Result, error) {
	if t.Root == nil {
		return nil, nil
	}
	target, err := Resolve(t.Root, path)
	if err != nil {
		return nil, err
	}
	node := Materialize(spec, t.ids())
	target.AppendChild(node)
	tracer().Debugf("added node %s to %s at %s", node.ID, target.ID, path)
	return &Result{
		Root:  t.Root.ShallowClone(),
		Node:  node,
		Props: spec,
	}, nil
}

// ReplaceChildNodes discards all children of the node at path and
// materializes specs as its new children, in order. Result.Nodes holds the
// new children. An empty specs leaves the node childless.
func (t Tree) ReplaceChildNodes(path Path, specs []Props) (*Result, error) {
	if t.Root == nil {
		return nil, nil
	}
	target, err := Resolve(t.Root, path)
	if err != nil {
		return nil, err
	}
	target.ClearChildren()
	nodes := make([]*Node, 0, len(specs))
	for _, spec := range specs {
		node := Materialize(spec, t.ids())
		target.AppendChild(node)
		nodes = append(nodes, node)
	}
	tracer().Debugf("replaced children of %s at %s by %d new nodes", target.ID, path, len(nodes))
	return &Result{
		Root:  t.Root.ShallowClone(),
		Node:  target,
		Nodes: nodes,
	}, nil
}

// DeleteNode removes the node at path from its parent. Result.Node is the
// removed node, Result.Props its props.
//
// The root cannot be deleted: for an empty path the tree is returned
// unchanged (same root identity, no node). path is not modified.
func (t Tree) DeleteNode(path Path) (*Result, error) {
	if t.Root == nil {
		return nil, nil
	}
	if path.IsRoot() {
		return &Result{Root: t.Root}, nil
	}
	if _, err := Resolve(t.Root, path); err != nil {
		return nil, err
	}
	parentPath, inx := path.Split()
	parent, err := Resolve(t.Root, parentPath)
	assertThat(err == nil, "parent of valid path %s does not resolve", path)
	removed, ok := parent.RemoveChildAt(inx)
	assertThat(ok, "child %d of %s vanished", inx, parent.ID)
	tracer().Debugf("deleted node %s at %s", removed.ID, path)
	return &Result{
		Root:  t.Root.ShallowClone(),
		Node:  removed,
		Props: removed.Props,
	}, nil
}

// UpdateNodeProps replaces the props of the node at path by a shallow copy
// of updater(currentProps). Result.Props is the updater's return value.
//
// The updater is responsible for children props: if it drops or rewrites
// Props[ChildrenKey], the node's structural children are not adjusted and
// the tree becomes inconsistent until the caller reconciles it.
// The parent's child props are updated to refer to the new props. The
// root's props map is shared by all clones of the root and is rewritten in
// place instead.
// A nil updater is a no-op.
func (t Tree) UpdateNodeProps(path Path, updater PropsUpdater) (*Result, error) {
	if t.Root == nil || updater == nil {
		return nil, nil
	}
	target, err := Resolve(t.Root, path)
	if err != nil {
		return nil, err
	}
	updated := updater(target.Props)
	props := make(Props, len(updated))
	for k, v := range updated {
		props[k] = v
	}
	if parentPath, inx := path.Split(); inx >= 0 {
		target.Props = props
		parent, err := Resolve(t.Root, parentPath)
		assertThat(err == nil, "parent of valid path %s does not resolve", path)
		parent.setChildProps(inx, props)
	} else {
		// earlier root clones share the root's props map: rewrite it in place
		clear(target.Props)
		for k, v := range props {
			target.Props[k] = v
		}
	}
	tracer().Debugf("updated props of node %s at %s", target.ID, path)
	return &Result{
		Root:  t.Root.ShallowClone(),
		Node:  target,
		Props: updated,
	}, nil
}

// ReadNodeProps returns the props of the node at path in Result.Props.
// The root identity is left unchanged.
func (t Tree) ReadNodeProps(path Path) (*Result, error) {
	if t.Root == nil {
		return nil, nil
	}
	target, err := Resolve(t.Root, path)
	if err != nil {
		return nil, err
	}
	return &Result{
		Root:  t.Root,
		Node:  target,
		Props: target.Props,
	}, nil
}
