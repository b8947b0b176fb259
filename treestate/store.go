package treestate

import (
	"github.com/npillmayer/treestate/tree"
)

// State is a snapshot of a Store's tree. Version increases with every change
// of the root identity and serves as a change token.
type State struct {
	Root    *tree.Node
	Version uint64
}

// Store owns a materialized tree, a cursor and the last event.
// Create stores with New.
type Store struct {
	root     *tree.Node
	version  uint64
	cursor   *Cursor
	event    Event
	ids      tree.IDGenerator
	reducers map[string]tree.MutatorFn
	onChange func(State, Event)
}

// Option configures a Store at creation time.
type Option func(*Store)

// WithIDGenerator sets the generator for node identifiers.
// The default is tree.UUIDGenerator.
func WithIDGenerator(gen tree.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithOnChange sets a callback invoked with the current state and event
// whenever the tree or the last event changes, including at creation.
// The callback is invoked synchronously.
func WithOnChange(f func(State, Event)) Option {
	return func(s *Store) {
		s.onChange = f
	}
}

// WithCustomReducers registers client-defined reducers. A reducer named like
// a built-in replaces the built-in.
func WithCustomReducers(reducers map[string]tree.MutatorFn) Option {
	return func(s *Store) {
		for name, fn := range reducers {
			if err := s.Register(name, fn); err != nil {
				tracer().Errorf("custom reducer %q not registered: %v", name, err)
			}
		}
	}
}

// New materializes spec and creates a Store for it. The cursor is placed on
// the root and an initialization event is recorded.
func New(spec tree.Props, opts ...Option) *Store {
	s := &Store{
		ids:      tree.UUIDGenerator(),
		reducers: builtinReducers(),
	}
	for _, option := range opts {
		option(s)
	}
	s.initialize(spec)
	return s
}

// Reset replaces the tree by a fresh materialization of spec, as if the
// Store was newly created. Custom reducers and options are kept.
func (s *Store) Reset(spec tree.Props) {
	s.initialize(spec)
}

func (s *Store) initialize(spec tree.Props) {
	root := tree.Materialize(spec, s.ids)
	tracer().Debugf("store initialized with root %s", root.ID)
	s.root = root
	s.version++
	s.cursor = cursorAt(root)
	s.record(Event{Type: EventInitialization, Params: []any{}})
}

// State returns the current tree state.
func (s *Store) State() State {
	return State{Root: s.root, Version: s.version}
}

// Root returns the current root node.
func (s *Store) Root() *tree.Node {
	return s.root
}

// Event returns the last event recorded.
func (s *Store) Event() Event {
	return s.event
}

// Tree returns the current tree, ready to be operated on by a tree.MutatorFn.
func (s *Store) Tree() tree.Tree {
	return tree.Tree{Root: s.root, NewID: s.ids}
}

// SetTree replaces the whole tree by root and records a setTree event.
// root is used as-is: it has to be a materialized tree (e.g. the root of a
// Result or of tree.Materialize).
func (s *Store) SetTree(root *tree.Node) {
	s.commit(root, RecordEvent(EventSetTree, nil, root), true)
}

// Dispatch runs the reducer registered under name on the node at path and
// records an event of type name. Clients usually call the typed wrappers
// (AddNode, DeleteNode, …) instead.
//
// path is copied before being handed to the reducer. A reducer returning a
// nil Result leaves the store untouched.
func (s *Store) Dispatch(name string, path tree.Path, args ...any) (*tree.Result, error) {
	fn, ok := s.reducers[name]
	if !ok {
		return nil, unknownReducer(name)
	}
	p := path.Clone()
	res, err := fn(s.Tree(), p.Clone(), args...)
	if err != nil {
		tracer().Debugf("reducer %s at %s failed: %v", name, p, err)
		return nil, err
	}
	if res == nil {
		tracer().Debugf("reducer %s at %s is a no-op", name, p)
		return nil, nil
	}
	root := res.Root
	if root == nil {
		root = s.root
	}
	s.commit(root, RecordEvent(name, p, args...), false)
	return res, nil
}

// DispatchByID resolves id to the path of the first node carrying it and
// dispatches the reducer name there. If id cannot be found, nothing happens
// and a nil Result is returned.
func (s *Store) DispatchByID(name string, id tree.ID, args ...any) (*tree.Result, error) {
	path, ok := tree.FindFirstPath(s.root, id)
	if !ok {
		tracer().Debugf("%s: no node with id %s", name, id)
		return nil, nil
	}
	return s.Dispatch(name, path, args...)
}

// commit installs root and event. If the root identity changed (or force is
// set) the version is bumped and the cursor re-resolved.
func (s *Store) commit(root *tree.Node, e Event, force bool) {
	if force || root != s.root {
		s.root = root
		s.version++
		s.syncCursor()
	}
	s.record(e)
}

// record replaces the last event and notifies the client.
func (s *Store) record(e Event) {
	s.event = e
	tracer().Debugf("event %s, version %d", e, s.version)
	if s.onChange != nil {
		s.onChange(s.State(), s.event)
	}
}
