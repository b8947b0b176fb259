package treestate

import "github.com/npillmayer/treestate/tree"

// Selectors are pure reads. They neither change the tree nor record events.

// HasChildren reports whether the node at path has children.
func (s *Store) HasChildren(path tree.Path) (bool, error) {
	return tree.HasChildren(s.root, path)
}

// HasChildrenByID reports whether the first node carrying id has children.
// found is false if there is no such node.
func (s *Store) HasChildrenByID(id tree.ID) (has bool, found bool) {
	node, found := tree.FindNode(s.root, id)
	return found && node.HasChildren(), found
}

// PathNodes returns the chain of nodes from the root to the node at path.
func (s *Store) PathNodes(path tree.Path) ([]*tree.Node, error) {
	return tree.AncestorChain(s.root, path)
}

// PathNodesByID returns the chain of nodes from the root to the first node
// carrying id.
func (s *Store) PathNodesByID(id tree.ID) ([]*tree.Node, bool) {
	path, ok := tree.FindFirstPath(s.root, id)
	if !ok {
		return nil, false
	}
	chain, err := tree.AncestorChain(s.root, path)
	return chain, err == nil
}

// NodeProps returns the props of the node at path.
func (s *Store) NodeProps(path tree.Path) (tree.Props, error) {
	node, err := tree.Resolve(s.root, path)
	if err != nil || node == nil {
		return nil, err
	}
	return node.Props, nil
}

// NodePropsByID returns the props of the first node carrying id.
func (s *Store) NodePropsByID(id tree.ID) (tree.Props, bool) {
	node, ok := tree.FindNode(s.root, id)
	if !ok {
		return nil, false
	}
	return node.Props, true
}

// Node returns the node at path.
func (s *Store) Node(path tree.Path) (*tree.Node, error) {
	return tree.Resolve(s.root, path)
}

// NodeByID returns the first node carrying id.
func (s *Store) NodeByID(id tree.ID) (*tree.Node, bool) {
	return tree.FindNode(s.root, id)
}

// Paths returns the paths of all nodes carrying id, in document order.
func (s *Store) Paths(id tree.ID) []tree.Path {
	return tree.FindPaths(s.root, id)
}

// Walk traverses the subtree at path in pre-order; see tree.Walk for the
// semantics of fn's return value.
func (s *Store) Walk(path tree.Path, fn func(*tree.Node) bool) (bool, error) {
	node, err := tree.Resolve(s.root, path)
	if err != nil {
		return false, err
	}
	return tree.Walk(node, fn), nil
}

// WalkByID traverses the subtree of the first node carrying id.
// found is false if there is no such node.
func (s *Store) WalkByID(id tree.ID, fn func(*tree.Node) bool) (result bool, found bool) {
	node, found := tree.FindNode(s.root, id)
	if !found {
		return false, false
	}
	return tree.Walk(node, fn), true
}
