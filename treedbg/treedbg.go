/*
Package treedbg implements helpers to debug a materialized tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treedbg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/treestate/tree"
	tp "github.com/xlab/treeprint"
)

// NameKey is the property used to label nodes, if present.
const NameKey = "name"

// DefaultDirectory is the name FormatNodePath drops from a chain of nodes.
const DefaultDirectory = "directory"

// Sprint renders the tree below root as an indented ASCII tree, one node
// per line. Nodes are labeled with their name property and identifier.
// The cursor node, if non-nil, is marked with an asterisk.
func Sprint(root *tree.Node, cursor *tree.Node) string {
	if root == nil {
		return "(empty tree)\n"
	}
	p := tp.New()
	p.SetValue(label(root, cursor))
	for _, ch := range root.Children() {
		ppt(p, ch, cursor)
	}
	return p.String()
}

func ppt(p tp.Tree, node *tree.Node, cursor *tree.Node) {
	if !node.HasChildren() {
		p.AddNode(label(node, cursor))
		return
	}
	branch := p.AddBranch(label(node, cursor))
	for _, ch := range node.Children() {
		ppt(branch, ch, cursor)
	}
}

func label(node *tree.Node, cursor *tree.Node) string {
	var l string
	if name, ok := node.Props[NameKey]; ok {
		l = fmt.Sprintf("%v ⟨%s⟩", name, node.ID)
	} else {
		l = fmt.Sprintf("⟨%s⟩", node.ID)
	}
	if cursor != nil && cursor.ID == node.ID {
		l = "* " + l
	}
	return l
}

// FormatNodePath joins the name properties of a chain of nodes (e.g. the
// result of tree.AncestorChain) with slashes. Nodes named DefaultDirectory
// are left out, as are nodes without a name.
func FormatNodePath(nodes []*tree.Node) string {
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		name, ok := node.Props[NameKey]
		if !ok || name == DefaultDirectory {
			continue
		}
		names = append(names, fmt.Sprint(name))
	}
	return strings.Join(names, "/")
}
