package treestate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/treestate/tree"
)

// Names of the built-in reducers.
const (
	OpAddNode           = "addNode"
	OpReplaceChildNodes = "replaceChildNodes"
	OpDeleteNode        = "deleteNode"
	OpUpdateNodeProps   = "updateNodeProps"
	OpReadNodeProps     = "readNodeProps"
)

// ErrUnknownReducer is returned when dispatching to an unregistered name.
var ErrUnknownReducer = errors.New("unknown reducer")

// ErrInvalidReducer is returned when registering a reducer without a name
// or without a function.
var ErrInvalidReducer = errors.New("invalid reducer")

// ErrInvalidArgument is returned by built-in reducers called through Dispatch
// with arguments of the wrong type.
var ErrInvalidArgument = errors.New("invalid reducer argument")

func unknownReducer(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownReducer, name)
}

func builtinReducers() map[string]tree.MutatorFn {
	return map[string]tree.MutatorFn{
		OpAddNode: func(t tree.Tree, path tree.Path, args ...any) (*tree.Result, error) {
			spec, err := argAt[tree.Props](OpAddNode, args, 0)
			if err != nil {
				return nil, err
			}
			return t.AddNode(path, spec)
		},
		OpReplaceChildNodes: func(t tree.Tree, path tree.Path, args ...any) (*tree.Result, error) {
			specs, err := argAt[[]tree.Props](OpReplaceChildNodes, args, 0)
			if err != nil {
				return nil, err
			}
			return t.ReplaceChildNodes(path, specs)
		},
		OpDeleteNode: func(t tree.Tree, path tree.Path, args ...any) (*tree.Result, error) {
			return t.DeleteNode(path)
		},
		OpUpdateNodeProps: func(t tree.Tree, path tree.Path, args ...any) (*tree.Result, error) {
			updater, err := argAt[tree.PropsUpdater](OpUpdateNodeProps, args, 0)
			if err != nil {
				return nil, err
			}
			return t.UpdateNodeProps(path, updater)
		},
		OpReadNodeProps: func(t tree.Tree, path tree.Path, args ...any) (*tree.Result, error) {
			return t.ReadNodeProps(path)
		},
	}
}

// argAt extracts argument i as a T. Untyped nil arguments yield the zero T.
func argAt[T any](op string, args []any, i int) (T, error) {
	var zero T
	if i >= len(args) || args[i] == nil {
		return zero, nil
	}
	if v, ok := args[i].(T); ok {
		return v, nil
	}
	if conv, ok := convertArg[T](args[i]); ok {
		return conv, nil
	}
	return zero, fmt.Errorf("%w: %s expects %T as argument %d, got %T", ErrInvalidArgument, op, zero, i, args[i])
}

// convertArg accepts the unnamed equivalents of the tree package's types.
func convertArg[T any](arg any) (T, bool) {
	var v any
	switch a := arg.(type) {
	case map[string]any:
		v = tree.Props(a)
	case func(tree.Props) tree.Props:
		v = tree.PropsUpdater(a)
	case []map[string]any:
		specs := make([]tree.Props, len(a))
		for i, m := range a {
			specs[i] = tree.Props(m)
		}
		v = specs
	}
	t, ok := v.(T)
	return t, ok
}

// Register adds a reducer under name, replacing any reducer of the same name
// (built-ins included). Dispatching name (or calling DispatchByID with it)
// runs fn with event recording and cursor tracking, like a built-in.
func (s *Store) Register(name string, fn tree.MutatorFn) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: name=%q, fn=%v", ErrInvalidReducer, name, fn != nil)
	}
	if _, exists := s.reducers[name]; exists {
		tracer().Infof("reducer %q is overridden", name)
	}
	s.reducers[name] = fn
	return nil
}

// Reducers returns the sorted names of all registered reducers.
func (s *Store) Reducers() []string {
	names := make([]string, 0, len(s.reducers))
	for name := range s.reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Typed wrappers --------------------------------------------------------

// AddNode materializes spec and appends it as the last child of the node at path.
func (s *Store) AddNode(path tree.Path, spec tree.Props) (*tree.Result, error) {
	return s.Dispatch(OpAddNode, path, spec)
}

// AddNodeByID is AddNode for the first node carrying id.
func (s *Store) AddNodeByID(id tree.ID, spec tree.Props) (*tree.Result, error) {
	return s.DispatchByID(OpAddNode, id, spec)
}

// ReplaceChildNodes replaces all children of the node at path by
// materializations of specs.
func (s *Store) ReplaceChildNodes(path tree.Path, specs []tree.Props) (*tree.Result, error) {
	return s.Dispatch(OpReplaceChildNodes, path, specs)
}

// ReplaceChildNodesByID is ReplaceChildNodes for the first node carrying id.
func (s *Store) ReplaceChildNodesByID(id tree.ID, specs []tree.Props) (*tree.Result, error) {
	return s.DispatchByID(OpReplaceChildNodes, id, specs)
}

// DeleteNode removes the node at path. Deleting the root is a no-op.
func (s *Store) DeleteNode(path tree.Path) (*tree.Result, error) {
	return s.Dispatch(OpDeleteNode, path)
}

// DeleteNodeByID removes the first node carrying id.
func (s *Store) DeleteNodeByID(id tree.ID) (*tree.Result, error) {
	return s.DispatchByID(OpDeleteNode, id)
}

// UpdateNodeProps replaces the props of the node at path by updater's result.
func (s *Store) UpdateNodeProps(path tree.Path, updater tree.PropsUpdater) (*tree.Result, error) {
	return s.Dispatch(OpUpdateNodeProps, path, updater)
}

// UpdateNodePropsByID is UpdateNodeProps for the first node carrying id.
func (s *Store) UpdateNodePropsByID(id tree.ID, updater tree.PropsUpdater) (*tree.Result, error) {
	return s.DispatchByID(OpUpdateNodeProps, id, updater)
}

// ReadNodeProps reads the props of the node at path. It records an event but
// leaves the tree unchanged.
func (s *Store) ReadNodeProps(path tree.Path) (*tree.Result, error) {
	return s.Dispatch(OpReadNodeProps, path)
}

// ReadNodePropsByID is ReadNodeProps for the first node carrying id.
func (s *Store) ReadNodePropsByID(id tree.ID) (*tree.Result, error) {
	return s.DispatchByID(OpReadNodeProps, id)
}
