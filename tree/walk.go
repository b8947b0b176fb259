package tree

// Walk traverses the tree below (and including) root in pre-order, calling
// fn for every node. Callbacks must not modify the tree.
//
// If fn returns false for a node, the children of that node are not visited.
// Walking continues with the node's remaining siblings, i.e. returning false
// prunes a subtree, it does not abort the traversal. Walk returns false if
// any callback returned false, true otherwise. Use WalkWith to abort a
// traversal as a whole.
func Walk(root *Node, fn func(*Node) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	result := true
	for _, ch := range root.childNodes() {
		if !Walk(ch, fn) {
			result = false
		}
	}
	return result
}

// WalkAction tells WalkWith how to proceed after visiting a node.
type WalkAction int

// Actions for WalkWith callbacks.
const (
	Continue     WalkAction = iota // descend into children, then continue with siblings
	SkipChildren                   // do not descend, continue with siblings
	Stop                           // abort the whole traversal
)

// WalkWith traverses the tree below (and including) root in pre-order,
// calling fn with every node and its path relative to root.
// It returns false if the traversal was aborted by Stop.
func WalkWith(root *Node, fn func(*Node, Path) WalkAction) bool {
	if root == nil {
		return true
	}
	return walkWith(root, Path{}, fn)
}

func walkWith(node *Node, path Path, fn func(*Node, Path) WalkAction) bool {
	switch fn(node, path) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}
	for i, ch := range node.childNodes() {
		if !walkWith(ch, path.Child(i), fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree below (and including) root.
func Count(root *Node) int {
	n := 0
	Walk(root, func(*Node) bool {
		n++
		return true
	})
	return n
}
