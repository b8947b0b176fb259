package treestate

import "github.com/npillmayer/treestate/tree"

// Cursor references a node of a Store's tree together with its identifier.
type Cursor struct {
	ID   tree.ID
	Node *tree.Node
}

// SetCursor moves the cursor to the node at path and records a setCursor
// event with the node as parameter.
func (s *Store) SetCursor(path tree.Path) error {
	p := path.Clone()
	node, err := tree.Resolve(s.root, p)
	if err != nil {
		return err
	}
	s.cursor = cursorAt(node)
	s.record(RecordEvent(EventSetCursor, p, node))
	return nil
}

// SetCursorToParent moves the cursor to the parent of the node at path and
// records a setCursorToParent event with the parent as parameter.
//
// For the root, the "parent" is the root itself. This mirrors the data model,
// where the root's parent reference falls back to the root's own identifier.
// Use CursorParent to distinguish the root case.
func (s *Store) SetCursorToParent(path tree.Path) error {
	p := path.Clone()
	node, err := tree.Resolve(s.root, p)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}
	parentID := node.ParentID
	if node.IsRoot() {
		parentID = node.ID
	}
	parent, _ := tree.FindNode(s.root, parentID)
	s.cursor = cursorAt(parent)
	s.record(RecordEvent(EventSetCursorToParent, p, parent))
	return nil
}

// SetCursorByID moves the cursor to the first node carrying id.
// If id cannot be found, nothing happens.
func (s *Store) SetCursorByID(id tree.ID) error {
	path, ok := tree.FindFirstPath(s.root, id)
	if !ok {
		return nil
	}
	return s.SetCursor(path)
}

// SetCursorToParentByID moves the cursor to the parent of the first node
// carrying id. If id cannot be found, nothing happens.
func (s *Store) SetCursorToParentByID(id tree.ID) error {
	path, ok := tree.FindFirstPath(s.root, id)
	if !ok {
		return nil
	}
	return s.SetCursorToParent(path)
}

// Cursor returns the current cursor, or nil if the cursor is absent.
func (s *Store) Cursor() *Cursor {
	return s.cursor
}

// CursorPath returns the path of the cursor's node.
func (s *Store) CursorPath() (tree.Path, bool) {
	if s.cursor == nil {
		return nil, false
	}
	return tree.FindFirstPath(s.root, s.cursor.ID)
}

// CursorParent returns the parent of the cursor's node. ok is false if the
// cursor is absent or sits on the root.
func (s *Store) CursorParent() (parent *tree.Node, ok bool) {
	if s.cursor == nil || s.cursor.Node == nil || s.cursor.Node.IsRoot() {
		return nil, false
	}
	return tree.FindNode(s.root, s.cursor.Node.ParentID)
}

// syncCursor re-resolves the cursor by identifier after the tree changed.
func (s *Store) syncCursor() {
	if s.cursor == nil {
		return
	}
	node, ok := tree.FindNode(s.root, s.cursor.ID)
	if !ok {
		tracer().Debugf("cursor node %s vanished, cursor is absent", s.cursor.ID)
		s.cursor = nil
		return
	}
	s.cursor = cursorAt(node)
}

func cursorAt(node *tree.Node) *Cursor {
	if node == nil {
		return nil
	}
	return &Cursor{ID: node.ID, Node: node}
}
