package tree

// Resolve walks path from root and returns the node it denotes.
// An empty path resolves to root. The first index which is negative or not
// less than the current node's child count yields an *InvalidPathError.
func Resolve(root *Node, path Path) (*Node, error) {
	node := root
	for depth, inx := range path {
		ch, ok := node.Child(inx)
		if !ok {
			return nil, invalidPath(path, depth, inx, node.ChildCount())
		}
		node = ch
	}
	return node, nil
}

// AncestorChain returns the nodes from root down to the node at path,
// both inclusive. It fails like Resolve for invalid paths.
func AncestorChain(root *Node, path Path) ([]*Node, error) {
	chain := make([]*Node, 0, len(path)+1)
	chain = append(chain, root)
	node := root
	for depth, inx := range path {
		ch, ok := node.Child(inx)
		if !ok {
			return nil, invalidPath(path, depth, inx, node.ChildCount())
		}
		chain = append(chain, ch)
		node = ch
	}
	return chain, nil
}

// HasChildren reports whether the node at path has children.
func HasChildren(root *Node, path Path) (bool, error) {
	node, err := Resolve(root, path)
	if err != nil {
		return false, err
	}
	return node.HasChildren(), nil
}

// FindPaths collects the paths of all nodes carrying identifier id, in
// depth-first pre-order. Identifiers are not required to be unique, thus
// more than one path may be returned. The result is empty if id is absent.
func FindPaths(root *Node, id ID) []Path {
	var paths []Path
	var traverse func(*Node, Path)
	traverse = func(node *Node, current Path) {
		if node == nil {
			return
		}
		if node.ID == id {
			paths = append(paths, current.Clone())
		}
		for i, ch := range node.childNodes() {
			traverse(ch, current.Child(i))
		}
	}
	traverse(root, Path{})
	return paths
}

// FindFirstPath returns the first path of FindPaths(root, id).
// ok is false if no node carries id.
func FindFirstPath(root *Node, id ID) (path Path, ok bool) {
	WalkWith(root, func(node *Node, p Path) WalkAction {
		if node.ID == id {
			path, ok = p.Clone(), true
			return Stop
		}
		return Continue
	})
	return
}

// FindNode resolves id to the first node carrying it.
func FindNode(root *Node, id ID) (*Node, bool) {
	path, ok := FindFirstPath(root, id)
	if !ok {
		return nil, false
	}
	node, err := Resolve(root, path)
	assertThat(err == nil, "path %s found for %s does not resolve", path, id)
	return node, true
}

func invalidPath(path Path, depth, inx, count int) error {
	err := &InvalidPathError{
		Path:       path.Clone(),
		Depth:      depth,
		Index:      inx,
		ChildCount: count,
	}
	tracer().Errorf("%s", err.Error())
	return err
}
