package tree

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tp "github.com/xlab/treeprint"
)

func abSpec() Props {
	return Props{
		"name": "root",
		"children": []Props{
			{"name": "a"},
			{"name": "b", "children": []Props{
				{"name": "b1"},
				{"name": "b2"},
			}},
		},
	}
}

func createTreeForTest() Tree {
	return New(abSpec(), SequenceGenerator(0))
}

func names(nodes []*Node) []string {
	var s []string
	for _, n := range nodes {
		s = append(s, n.Props["name"].(string))
	}
	return s
}

func printTree(root *Node) string {
	var ppt func(tp.Tree, *Node)
	ppt = func(p tp.Tree, node *Node) {
		for _, ch := range node.Children() {
			if ch.HasChildren() {
				ppt(p.AddBranch(fmt.Sprintf("%v", ch.Props["name"])), ch)
			} else {
				p.AddNode(fmt.Sprintf("%v", ch.Props["name"]))
			}
		}
	}
	p := tp.New()
	p.SetValue(fmt.Sprintf("%v", root.Props["name"]))
	ppt(p, root)
	return p.String()
}

// checkAligned reports nodes whose children and child props disagree.
func checkAligned(t *testing.T, root *Node) {
	t.Helper()
	Walk(root, func(n *Node) bool {
		if !n.HasChildren() {
			return true
		}
		chprops, ok := n.Props.ChildProps()
		if !ok || len(chprops) != n.ChildCount() {
			t.Errorf("expected node %s to have %d child props, has %d", n.ID, n.ChildCount(), len(chprops))
			return true
		}
		for i, ch := range n.Children() {
			if reflect.ValueOf(ch.Props).Pointer() != reflect.ValueOf(chprops[i]).Pointer() {
				t.Errorf("expected child props %d of node %s to be the child's props, aren't", i, n.ID)
			}
		}
		return true
	})
}

// --- Materializer ----------------------------------------------------------

func TestMaterializeAssignsIDsInPreOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	defer teardown()
	//
	tree := createTreeForTest()
	t.Logf("tree for tests =\n%s", printTree(tree.Root))
	var ids []ID
	Walk(tree.Root, func(n *Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	if !reflect.DeepEqual(ids, []ID{"0", "1", "2", "3", "4"}) {
		t.Errorf("expected ids to be assigned in pre-order, are %v", ids)
	}
	if !tree.Root.IsRoot() {
		t.Error("expected root to be root, isn't")
	}
	b, err := Resolve(tree.Root, Path{1})
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range b.Children() {
		if ch.ParentID != b.ID {
			t.Errorf("expected parent of %s to be %s, is %s", ch.ID, b.ID, ch.ParentID)
		}
	}
}

func TestMaterializeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	defer teardown()
	//
	spec := abSpec()
	root := Materialize(spec, nil)
	if !reflect.DeepEqual(root.Props, spec) {
		t.Errorf("expected root props to equal spec, are %v", root.Props)
	}
	if root.ChildCount() != 2 {
		t.Errorf("expected root to have 2 children, has %d", root.ChildCount())
	}
}

func TestMaterializePropsAlignment(t *testing.T) {
	tree := createTreeForTest()
	checkAligned(t, tree.Root)
	b, _ := tree.Root.Child(1)
	chprops, _ := b.Props.ChildProps()
	chprops[0]["touched"] = true
	if b1, _ := b.Child(0); b1.Props["touched"] != true {
		t.Error("expected child props to be the child's map, aren't")
	}
}

func TestMaterializeDoesNotTouchSpec(t *testing.T) {
	spec := abSpec()
	tree := New(spec, SequenceGenerator(0))
	if _, err := tree.AddNode(Path{0}, Props{"name": "a1"}); err != nil {
		t.Fatal(err)
	}
	tree.Root.Props["name"] = "changed"
	if !reflect.DeepEqual(spec, abSpec()) {
		t.Errorf("expected spec to be unchanged, is %v", spec)
	}
}

func TestMaterializeDecodedChildren(t *testing.T) {
	// as produced by YAML or JSON decoders
	spec := Props{
		"name": "root",
		"children": []any{
			map[string]any{"name": "x"},
			"plain",
		},
	}
	root := Materialize(spec, SequenceGenerator(10))
	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 children, have %d", root.ChildCount())
	}
	if x, _ := root.Child(0); x.Props["name"] != "x" {
		t.Errorf("expected first child to be x, is %v", x.Props["name"])
	}
	if plain, _ := root.Child(1); plain.Props[ValueKey] != "plain" {
		t.Errorf("expected scalar child to be wrapped, is %v", plain.Props)
	}
	if _, ok := root.Props[ChildrenKey].([]Props); !ok {
		t.Errorf("expected child props to be normalized to []Props, are %T", root.Props[ChildrenKey])
	}
}

func TestMaterializeLeafWithoutChildren(t *testing.T) {
	root := Materialize(Props{"name": "leaf", "children": 42}, nil)
	if root.HasChildren() {
		t.Error("expected leaf to have no children, has")
	}
	if root.Props[ChildrenKey] != 42 {
		t.Errorf("expected non-sequence children to be kept, are %v", root.Props[ChildrenKey])
	}
}

// --- Path Resolver ---------------------------------------------------------

func TestResolveValidPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	defer teardown()
	//
	tree := createTreeForTest()
	WalkWith(tree.Root, func(n *Node, p Path) WalkAction {
		node, err := Resolve(tree.Root, p)
		if err != nil {
			t.Errorf("expected path %s to resolve, error is %v", p, err)
		} else if node != n {
			t.Errorf("expected path %s to resolve to %v, is %v", p, n, node)
		}
		return Continue
	})
	if node, err := Resolve(tree.Root, nil); err != nil || node != tree.Root {
		t.Errorf("expected nil path to resolve to root, is %v (%v)", node, err)
	}
}

func TestResolveInvalidPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	tree := createTreeForTest()
	for _, p := range []Path{{2}, {-1}, {1, 2}, {0, 0}, {1, 0, 0}} {
		_, err := Resolve(tree.Root, p)
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("expected path %s to be invalid, error is %v", p, err)
			continue
		}
		var perr *InvalidPathError
		if !errors.As(err, &perr) || !perr.Path.Equal(p) {
			t.Errorf("expected error to carry path %s, is %v", p, err)
		}
	}
	_, err := Resolve(tree.Root, Path{1, 5})
	var perr *InvalidPathError
	if !errors.As(err, &perr) {
		t.Fatalf("expected an *InvalidPathError, is %v", err)
	}
	if perr.Depth != 1 || perr.Index != 5 || perr.ChildCount != 2 {
		t.Errorf("expected error at depth 1, index 5 of 2, is %v", perr)
	}
}

func TestAncestorChain(t *testing.T) {
	tree := createTreeForTest()
	chain, err := AncestorChain(tree.Root, Path{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if n := names(chain); !reflect.DeepEqual(n, []string{"root", "b", "b2"}) {
		t.Errorf("expected chain root/b/b2, is %v", n)
	}
	chain, err = AncestorChain(tree.Root, Path{})
	if err != nil || len(chain) != 1 || chain[0] != tree.Root {
		t.Errorf("expected chain of root to be [root], is %v (%v)", chain, err)
	}
	if _, err = AncestorChain(tree.Root, Path{1, 7}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected invalid path error, is %v", err)
	}
}

func TestFindPathsWithDuplicateIDs(t *testing.T) {
	gen := func() IDGenerator {
		ids := []ID{"r", "dup", "x", "dup"}
		i := 0
		return func() ID {
			id := ids[i]
			i++
			return id
		}
	}()
	root := Materialize(Props{"children": []Props{
		{"children": []Props{{}}},
		{},
	}}, gen)
	if paths := FindPaths(root, "dup"); !reflect.DeepEqual(paths, []Path{{0}, {1}}) {
		t.Errorf("expected paths of dup to be [/0 /1], are %v", paths)
	}
	if first, ok := FindFirstPath(root, "dup"); !ok || !first.Equal(Path{0}) {
		t.Errorf("expected first path of dup to be /0, is %v", first)
	}
	if p, ok := FindFirstPath(root, "x"); !ok || !p.Equal(Path{0, 0}) {
		t.Errorf("expected path of x to be /0/0, is %v", p)
	}
	if _, ok := FindFirstPath(root, "nope"); ok {
		t.Error("did not expect to find 'nope'")
	}
	if paths := FindPaths(root, "nope"); len(paths) != 0 {
		t.Errorf("expected no paths for 'nope', have %v", paths)
	}
	if rp, ok := FindFirstPath(root, "r"); !ok || !rp.IsRoot() {
		t.Errorf("expected path of r to be the root path, is %v", rp)
	}
}

// --- Nodes -----------------------------------------------------------------

func TestNodeIndexOfChild(t *testing.T) {
	tree := createTreeForTest()
	b, _ := tree.Root.Child(1)
	for i, ch := range b.Children() {
		if inx := b.IndexOfChild(ch); inx != i {
			t.Errorf("expected index of %s to be %d, is %d", ch.ID, i, inx)
		}
	}
	if inx := b.IndexOfChild(tree.Root); inx != -1 {
		t.Errorf("expected index of a non-child to be -1, is %d", inx)
	}
}

func TestNodeInsertChildAt(t *testing.T) {
	tree := createTreeForTest()
	b, _ := tree.Root.Child(1)
	first, last := NewNode("f", Props{"name": "f"}), NewNode("l", Props{"name": "l"})
	b.InsertChildAt(0, first).InsertChildAt(99, last)
	if n := names(b.Children()); !reflect.DeepEqual(n, []string{"f", "b1", "b2", "l"}) {
		t.Errorf("expected children f b1 b2 l, are %v", n)
	}
	if b.IndexOfChild(last) != 3 || last.ParentID != b.ID {
		t.Errorf("expected l to be linked as child 3 of b, is %v", last)
	}
	checkAligned(t, tree.Root)
}

func TestShallowCloneSharesChildren(t *testing.T) {
	tree := createTreeForTest()
	clone := tree.Root.ShallowClone()
	if clone == tree.Root {
		t.Fatal("expected clone to be a new node identity, isn't")
	}
	clone.AppendChild(NewNode("c", Props{"name": "c"}))
	if tree.Root.ChildCount() != 3 {
		t.Errorf("expected original to see the appended child, has %d children", tree.Root.ChildCount())
	}
	checkAligned(t, tree.Root)
}

// --- Mutators --------------------------------------------------------------

func TestAddNodeAppendsLast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	defer teardown()
	//
	tree := New(Props{"name": "root", "children": []Props{{"name": "a"}, {"name": "b"}}}, SequenceGenerator(0))
	old := tree.Root
	r, err := tree.AddNode(Path{}, Props{"name": "c"})
	if err != nil || r == nil {
		t.Fatalf("expected add to succeed, is %v (%v)", r, err)
	}
	if r.Root == old || r.Root.ID != old.ID {
		t.Errorf("expected a new root identity with the same id, is %v", r.Root)
	}
	if n := names(r.Root.Children()); !reflect.DeepEqual(n, []string{"a", "b", "c"}) {
		t.Errorf("expected children a b c, are %v", n)
	}
	if r.Node.ParentID != r.Root.ID {
		t.Errorf("expected new node's parent to be %s, is %s", r.Root.ID, r.Node.ParentID)
	}
	if inx := r.Root.IndexOfChild(r.Node); inx != 2 {
		t.Errorf("expected new node at index 2, is at %d", inx)
	}
	if !reflect.DeepEqual(r.Props, Props{"name": "c"}) {
		t.Errorf("expected result props to be the spec, are %v", r.Props)
	}
	checkAligned(t, r.Root)
}

func TestAddNodeInitializesChildProps(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.AddNode(Path{0}, Props{"name": "a1"})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := r.Root.Child(0)
	if chprops, ok := a.Props.ChildProps(); !ok || len(chprops) != 1 {
		t.Errorf("expected a to have 1 child props entry, has %v", a.Props[ChildrenKey])
	}
	if ch, _ := a.Child(0); ch != r.Node {
		t.Errorf("expected result node to be first child of a, is %v", ch)
	}
}

func TestAddNodeInvalidPath(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.AddNode(Path{3}, Props{})
	if r != nil || !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected invalid path error, is %v (%v)", r, err)
	}
}

func TestDeleteNode(t *testing.T) {
	tree := New(Props{"name": "root", "children": []Props{{"name": "a"}, {"name": "b"}}}, SequenceGenerator(0))
	path := Path{1}
	r, err := tree.DeleteNode(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := names(r.Root.Children()); !reflect.DeepEqual(n, []string{"a"}) {
		t.Errorf("expected children [a], are %v", n)
	}
	if r.Node.Props["name"] != "b" {
		t.Errorf("expected deleted node to be b, is %v", r.Node)
	}
	checkAligned(t, r.Root)
	if !path.Equal(Path{1}) {
		t.Errorf("expected caller's path to be unchanged, is %s", path)
	}
}

func TestDeleteRootIsNoOp(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.DeleteNode(Path{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Root != tree.Root || r.Node != nil {
		t.Errorf("expected unchanged root and no node, is %v", r)
	}
	if n := Count(tree.Root); n != 5 {
		t.Errorf("expected 5 nodes, have %d", n)
	}
}

func TestDeleteNodeInvalidPath(t *testing.T) {
	tree := createTreeForTest()
	for _, p := range []Path{{0, 0}, {2}} {
		if _, err := tree.DeleteNode(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("expected delete at %s to fail with invalid path, is %v", p, err)
		}
	}
}

func TestAddDeleteInverse(t *testing.T) {
	tree := createTreeForTest()
	before := Count(tree.Root)
	r, err := tree.AddNode(Path{1}, Props{"name": "b3", "children": []Props{{"name": "b31"}}})
	if err != nil {
		t.Fatal(err)
	}
	tree.Root = r.Root
	t.Logf("tree after add =\n%s", printTree(tree.Root))
	if n := Count(tree.Root); n != before+2 {
		t.Errorf("expected %d nodes after add, have %d", before+2, n)
	}
	b, _ := Resolve(tree.Root, Path{1})
	r, err = tree.DeleteNode(Path{1}.Child(b.ChildCount() - 1))
	if err != nil {
		t.Fatal(err)
	}
	if n := Count(r.Root); n != before {
		t.Errorf("expected %d nodes after delete, have %d", before, n)
	}
	if !reflect.DeepEqual(r.Root.Props, abSpec()) {
		t.Errorf("expected props to equal the spec again, are %v", r.Root.Props)
	}
}

func TestEarlierRootsStayAligned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treestate.tree")
	defer teardown()
	//
	tree := createTreeForTest()
	roots := []*Node{tree.Root}
	steps := []func() (*Result, error){
		func() (*Result, error) { return tree.AddNode(Path{}, Props{"name": "c"}) },
		func() (*Result, error) { return tree.AddNode(Path{}, Props{"name": "d"}) },
		func() (*Result, error) { return tree.DeleteNode(Path{0}) },
		func() (*Result, error) {
			return tree.UpdateNodeProps(Path{}, func(p Props) Props {
				return Props{"name": "R", ChildrenKey: p[ChildrenKey]}
			})
		},
		func() (*Result, error) { return tree.AddNode(Path{}, Props{"name": "e"}) },
	}
	for i, step := range steps {
		r, err := step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		tree.Root = r.Root
		roots = append(roots, r.Root)
	}
	t.Logf("tree after edits =\n%s", printTree(tree.Root))
	want := []string{"b", "c", "d", "e"}
	for i, root := range roots {
		if n := names(root.Children()); !reflect.DeepEqual(n, want) {
			t.Errorf("expected root #%d to have children %v, has %v", i, want, n)
		}
		if root.Props["name"] != "R" {
			t.Errorf("expected root #%d to be named R, is %v", i, root.Props["name"])
		}
		checkAligned(t, root)
	}
}

func TestReplaceChildNodes(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.ReplaceChildNodes(Path{1}, []Props{{"name": "x"}, {"name": "y"}, {"name": "z"}})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Resolve(r.Root, Path{1})
	if n := names(b.Children()); !reflect.DeepEqual(n, []string{"x", "y", "z"}) {
		t.Errorf("expected children x y z, are %v", n)
	}
	if len(r.Nodes) != 3 {
		t.Errorf("expected 3 new nodes in result, have %d", len(r.Nodes))
	}
	for _, n := range r.Nodes {
		if n.ParentID != b.ID {
			t.Errorf("expected parent of %s to be %s, is %s", n.ID, b.ID, n.ParentID)
		}
	}
	checkAligned(t, r.Root)
	//
	r, err = tree.ReplaceChildNodes(Path{1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _ = Resolve(r.Root, Path{1})
	if b.HasChildren() {
		t.Errorf("expected b to be childless, has %d children", b.ChildCount())
	}
	if chprops, ok := b.Props.ChildProps(); !ok || len(chprops) != 0 {
		t.Errorf("expected empty child props, are %v", b.Props[ChildrenKey])
	}
}

func TestUpdateNodeProps(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.UpdateNodeProps(Path{1}, func(p Props) Props {
		p["name"] = "B"
		p["size"] = 3
		return p
	})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Resolve(r.Root, Path{1})
	if b.Props["name"] != "B" || b.ChildCount() != 2 {
		t.Errorf("expected B with 2 children, is %v", b)
	}
	checkAligned(t, r.Root)
	chprops, _ := r.Root.Props.ChildProps()
	b.Props["flag"] = true
	if chprops[1]["flag"] != true {
		t.Error("expected parent to refer to the new props, doesn't")
	}
}

func TestUpdateRootPropsInPlace(t *testing.T) {
	tree := createTreeForTest()
	old := tree.Root
	r, err := tree.UpdateNodeProps(Path{}, func(p Props) Props {
		return Props{"name": "R", ChildrenKey: p[ChildrenKey]}
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Root == old {
		t.Error("expected a new root identity, got the old one")
	}
	if old.Props["name"] != "R" || r.Root.Props["name"] != "R" {
		t.Errorf("expected all root clones to see the new name, are %v and %v",
			old.Props["name"], r.Root.Props["name"])
	}
}

func TestUpdateNodePropsDroppingChildren(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.UpdateNodeProps(Path{1}, func(Props) Props {
		return Props{"name": "bare"}
	})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Resolve(r.Root, Path{1})
	if b.ChildCount() != 2 {
		t.Errorf("expected structure to be left to the caller, b has %d children", b.ChildCount())
	}
	if _, ok := b.Props.ChildProps(); ok {
		t.Error("expected b to have no child props, has")
	}
}

func TestReadNodeProps(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.ReadNodeProps(Path{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if r.Root != tree.Root {
		t.Error("expected read to leave the root identity unchanged, didn't")
	}
	if r.Props["name"] != "b1" {
		t.Errorf("expected props of b1, are %v", r.Props)
	}
}

func TestMutatorsOnEmptyTree(t *testing.T) {
	var tree Tree
	if r, err := tree.AddNode(nil, Props{}); r != nil || err != nil {
		t.Errorf("expected add on empty tree to be a no-op, is %v (%v)", r, err)
	}
	if r, err := tree.DeleteNode(Path{0}); r != nil || err != nil {
		t.Errorf("expected delete on empty tree to be a no-op, is %v (%v)", r, err)
	}
}

// --- Walk ------------------------------------------------------------------

func TestWalkPrunesSubtreeOnly(t *testing.T) {
	tree := createTreeForTest()
	r, err := tree.AddNode(Path{}, Props{"name": "c"})
	if err != nil {
		t.Fatal(err)
	}
	var visited []string
	result := Walk(r.Root, func(n *Node) bool {
		visited = append(visited, n.Props["name"].(string))
		return n.Props["name"] != "b"
	})
	if result {
		t.Error("expected walk to report a pruned subtree, didn't")
	}
	if !reflect.DeepEqual(visited, []string{"root", "a", "b", "c"}) {
		t.Errorf("expected to visit root a b c, visited %v", visited)
	}
	if !Walk(r.Root, func(*Node) bool { return true }) {
		t.Error("expected complete walk to return true, didn't")
	}
}

func TestWalkWithStop(t *testing.T) {
	tree := createTreeForTest()
	var visited []string
	result := WalkWith(tree.Root, func(n *Node, p Path) WalkAction {
		visited = append(visited, n.Props["name"].(string))
		if n.Props["name"] == "b1" {
			return Stop
		}
		return Continue
	})
	if result {
		t.Error("expected stopped walk to return false, didn't")
	}
	if !reflect.DeepEqual(visited, []string{"root", "a", "b", "b1"}) {
		t.Errorf("expected to visit root a b b1, visited %v", visited)
	}
	visited = nil
	WalkWith(tree.Root, func(n *Node, p Path) WalkAction {
		visited = append(visited, p.String())
		if n.Props["name"] == "b" {
			return SkipChildren
		}
		return Continue
	})
	if !reflect.DeepEqual(visited, []string{"/", "/0", "/1"}) {
		t.Errorf("expected to visit / /0 /1, visited %v", visited)
	}
}

// --- Paths -----------------------------------------------------------------

func TestPathNotation(t *testing.T) {
	for _, s := range []string{"/", "/0", "/1/0/3"} {
		p, err := ParsePath(s)
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != s {
			t.Errorf("expected path to print as %s, is %s", s, p)
		}
	}
	if p, err := ParsePath(""); err != nil || !p.IsRoot() {
		t.Errorf("expected empty string to denote the root, is %v (%v)", p, err)
	}
	if _, err := ParsePath("/1/x"); err == nil {
		t.Error("expected /1/x to be malformed, isn't")
	}
	if parent, last := (Path{2, 4}).Split(); !parent.Equal(Path{2}) || last != 4 {
		t.Errorf("expected /2/4 to split into /2 and 4, is %s and %d", parent, last)
	}
	if _, last := (Path{}).Split(); last != -1 {
		t.Errorf("expected root path to split with index -1, is %d", last)
	}
}
