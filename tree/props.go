package tree

import (
	"github.com/jinzhu/copier"
)

// ChildrenKey is the property holding the children of a spec tree.
const ChildrenKey = "children"

// ValueKey wraps spec children which are not property bags themselves.
const ValueKey = "value"

// Props is an arbitrary property bag. As input to Materialize it is a spec
// tree, with an optional ChildrenKey entry holding a sequence of spec trees.
// Within a materialized tree, ChildrenKey always holds a []Props.
type Props map[string]any

// PropsUpdater computes new props for a node from its current ones.
// See Tree.UpdateNodeProps.
type PropsUpdater func(current Props) Props

// Clone returns a deep copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	c := make(Props, len(p))
	if err := copier.CopyWithOption(&c, p, copier.Option{DeepCopy: true}); err != nil {
		tracer().Errorf("cannot deep-copy props, falling back to shallow copy: %v", err)
		for k, v := range p {
			c[k] = v
		}
	}
	return c
}

// ChildProps returns the child specs of p. ok is false if p has no
// ChildrenKey entry or if that entry is not a sequence.
//
// Sequences of type []Props are returned as-is, other kinds of sequences
// ([]map[string]any, []any as produced by YAML or JSON decoders) are converted.
func (p Props) ChildProps() (children []Props, ok bool) {
	v, found := p[ChildrenKey]
	if !found {
		return nil, false
	}
	return asPropsSlice(v)
}

func asPropsSlice(v any) ([]Props, bool) {
	switch chs := v.(type) {
	case []Props:
		return chs, true
	case []map[string]any:
		s := make([]Props, len(chs))
		for i, ch := range chs {
			s[i] = Props(ch)
		}
		return s, true
	case []any:
		s := make([]Props, len(chs))
		for i, ch := range chs {
			s[i] = asProps(ch)
		}
		return s, true
	}
	return nil, false
}

func asProps(v any) Props {
	switch p := v.(type) {
	case Props:
		return p
	case map[string]any:
		return Props(p)
	case nil:
		return Props{}
	}
	return Props{ValueKey: v}
}

// withoutChildren returns a shallow copy of p minus the ChildrenKey entry.
func (p Props) withoutChildren() Props {
	c := make(Props, len(p))
	for k, v := range p {
		if k != ChildrenKey {
			c[k] = v
		}
	}
	return c
}
