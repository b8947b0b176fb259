package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

/*
We manage a tree of mutable nodes. Each node carries a property bag and
knows its parent by identifier only. Nodes maintain a slice of children,
mirrored by a slice of the children's props in Props[ChildrenKey].

Children are held in a container referenced by pointer. Shallow clones of
a node share both the container and the props map, so every clone sees
the same, aligned children.
*/

// Node is the base type our tree is built of.
type Node struct {
	ID       ID             // identifier, stable across mutations
	ParentID ID             // identifier of the structural parent, NoParent for the root
	Props    Props          // payload, including the children's props
	children *childrenSlice // children nodes, aligned with Props[ChildrenKey]
}

// NewNode creates a new, unlinked tree node with a given identifier and payload.
// Clients will rarely need this, as Materialize creates complete trees.
func NewNode(id ID, props Props) *Node {
	if props == nil {
		props = Props{}
	}
	return &Node{ID: id, ParentID: NoParent, Props: props, children: &childrenSlice{}}
}

func (node *Node) String() string {
	if node == nil {
		return "(Node nil)"
	}
	return fmt.Sprintf("(Node %s #ch=%d %v)", node.ID, node.ChildCount(), node.Props.withoutChildren())
}

// IsRoot is true for nodes without a parent.
func (node *Node) IsRoot() bool {
	return node.ParentID == NoParent
}

// ShallowClone returns a new node identity sharing identifier, props and
// children with node. Later edits of the children through either node are
// visible through both.
func (node *Node) ShallowClone() *Node {
	if node == nil {
		return nil
	}
	return &Node{
		ID:       node.ID,
		ParentID: node.ParentID,
		Props:    node.Props,
		children: node.children,
	}
}

// AppendChild links ch as the last child of node, appending ch's props to
// node's child props. If node's props do not hold a sequence of children,
// it is initialized first.
// It returns the parent node to allow for chaining.
func (node *Node) AppendChild(ch *Node) *Node {
	if ch != nil {
		return node.InsertChildAt(node.ChildCount(), ch)
	}
	return node
}

// InsertChildAt links ch as a child of node at position i, shifting children
// at later positions. Positions beyond the end are clamped to an append.
// It returns the parent node to allow for chaining.
func (node *Node) InsertChildAt(i int, ch *Node) *Node {
	if ch == nil {
		return node
	}
	if i < 0 {
		i = 0
	}
	if ch.Props == nil {
		ch.Props = Props{}
	}
	i = node.ensureChildren().insertChildAt(i, ch)
	chprops := node.ensureChildProps()
	node.Props[ChildrenKey] = insertProps(chprops, i, ch.Props)
	ch.ParentID = node.ID
	return node
}

func insertProps(chprops []Props, i int, props Props) []Props {
	if i >= len(chprops) {
		return append(chprops, props)
	}
	chprops = append(chprops, nil)
	copy(chprops[i+1:], chprops[i:])
	chprops[i] = props
	return chprops
}

// RemoveChildAt unlinks the child at position i and returns it.
// If there is no child at i, ok is false.
func (node *Node) RemoveChildAt(i int) (ch *Node, ok bool) {
	if ch, ok = node.Child(i); !ok {
		return nil, false
	}
	node.children.removeAt(i)
	if chprops, isSeq := node.Props[ChildrenKey].([]Props); isSeq && i < len(chprops) {
		node.Props[ChildrenKey] = append(chprops[:i], chprops[i+1:]...)
	}
	return ch, true
}

// ClearChildren drops all children of node, leaving an empty sequence of
// child props.
func (node *Node) ClearChildren() {
	node.ensureChildren().slice = nil
	if node.Props == nil {
		node.Props = Props{}
	}
	node.Props[ChildrenKey] = []Props{}
}

// ensureChildProps makes sure node.Props[ChildrenKey] is a []Props and returns it.
func (node *Node) ensureChildProps() []Props {
	if node.Props == nil {
		node.Props = Props{}
	}
	chprops, ok := node.Props.ChildProps()
	if !ok {
		chprops = make([]Props, 0, node.ChildCount())
	}
	node.Props[ChildrenKey] = chprops
	return chprops
}

// setChildProps replaces the props slot of the child at position i, if the
// slot exists.
func (node *Node) setChildProps(i int, props Props) {
	if chprops, ok := node.Props[ChildrenKey].([]Props); ok && i >= 0 && i < len(chprops) {
		chprops[i] = props
	}
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node) ChildCount() int {
	return len(node.childNodes())
}

// HasChildren is true if node has at least one child.
func (node *Node) HasChildren() bool {
	return node.ChildCount() > 0
}

// Child returns the children-node at position n.
func (node *Node) Child(n int) (*Node, bool) {
	if n < 0 || node.ChildCount() <= n {
		return nil, false
	}
	ch := node.children.slice[n]
	return ch, ch != nil
}

// Children returns a slice with all children of a node. The slice is a
// copy; modifying it does not change the tree.
func (node *Node) Children() []*Node {
	children := make([]*Node, node.ChildCount())
	copy(children, node.childNodes())
	return children
}

// IndexOfChild returns the index of a child within the list of children
// of its parent. ch may not be nil.
func (node *Node) IndexOfChild(ch *Node) int {
	for i, child := range node.childNodes() {
		if ch == child {
			return i
		}
	}
	return -1
}

// childNodes returns the children slice itself, nil for a nil node.
func (node *Node) childNodes() []*Node {
	if node == nil || node.children == nil {
		return nil
	}
	return node.children.slice
}

func (node *Node) ensureChildren() *childrenSlice {
	if node.children == nil {
		node.children = &childrenSlice{}
	}
	return node.children
}

// --- Children container ----------------------------------------------------

// childrenSlice is the list of children of a node, shared by all shallow
// clones of that node.
type childrenSlice struct {
	slice []*Node
}

// insertChildAt inserts child at position i, clamped to [0…len], and
// returns the position used.
func (chs *childrenSlice) insertChildAt(i int, child *Node) int {
	if i >= len(chs.slice) {
		chs.slice = append(chs.slice, child)
		return len(chs.slice) - 1
	}
	chs.slice = append(chs.slice, nil)   // make room for one child
	copy(chs.slice[i+1:], chs.slice[i:]) // shift i+1..n
	chs.slice[i] = child
	return i
}

func (chs *childrenSlice) removeAt(i int) {
	chs.slice = append(chs.slice[:i], chs.slice[i+1:]...)
}
