package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/treestate/tree"
	"github.com/npillmayer/treestate/treedbg"
	"github.com/npillmayer/treestate/treemetrics"
	"github.com/npillmayer/treestate/treestate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"gopkg.in/yaml.v3"
)

// REPL holds the state of the interactive session.
type REPL struct {
	store    *treestate.Store
	out      io.Writer
	registry *prometheus.Registry // nil if metrics are disabled
}

// defaultSpec is used if no spec file is configured.
var defaultSpec = tree.Props{treedbg.NameKey: "root"}

// NewREPL creates a session writing to out. If cfg names a spec file,
// the store is initialized from it.
func NewREPL(cfg Config, out io.Writer) (*REPL, error) {
	r := &REPL{out: out}
	var gen tree.IDGenerator
	switch strings.ToLower(cfg.IDs) {
	case "", "sequence":
		gen = tree.SequenceGenerator(0)
	case "uuid":
		gen = tree.UUIDGenerator()
	default:
		return nil, fmt.Errorf("unknown id generator %q", cfg.IDs)
	}
	spec := defaultSpec
	if cfg.Spec != "" {
		var err error
		if spec, err = LoadSpec(cfg.Spec); err != nil {
			return nil, err
		}
	}
	opts := []treestate.Option{treestate.WithIDGenerator(gen)}
	if cfg.Metrics.Enabled {
		r.registry = prometheus.NewRegistry()
		obs, err := treemetrics.NewObserver(r.registry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, treestate.WithOnChange(obs.Observe))
	}
	r.store = treestate.New(spec, opts...)
	return r, nil
}

// LoadSpec reads a spec tree from a YAML file.
func LoadSpec(filename string) (tree.Props, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes a YAML document into a spec tree. The document has to
// be a mapping; children are given as a sequence under key "children".
func ParseSpec(data []byte) (tree.Props, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	if spec == nil {
		return nil, fmt.Errorf("parse spec: document is empty")
	}
	return tree.Props(spec), nil
}

// Run reads commands from in until EOF or 'quit'.
func (r *REPL) Run(in io.Reader, prompt string) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(r.out, prompt)
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.handleCommand(input) {
			return
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		return false

	case "load":
		r.cmdLoad(args)

	case "show", "tree":
		r.cmdShow()

	case "add":
		r.cmdAdd(args)

	case "del", "delete":
		r.cmdDelete(args)

	case "set":
		r.cmdSet(args)

	case "replace":
		r.cmdReplace(args)

	case "get":
		r.cmdGet(args)

	case "cursor":
		r.cmdCursor(args)

	case "up":
		r.cmdUp()

	case "find":
		r.cmdFind(args)

	case "event":
		fmt.Fprintln(r.out, r.store.Event())

	case "metrics":
		r.cmdMetrics()

	default:
		fmt.Fprintf(r.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `
Commands:
  load <file>                    Re-initialize from a YAML spec file
  show                           Print the tree, '*' marks the cursor
  add <target> <name> [k=v ...]  Append a child node
  del <target>                   Delete a node
  set <target> <key> <value>     Set a property of a node
  replace <target> <name> ...    Replace the children of a node
  get <target>                   Print the properties of a node
  cursor [<target>]              Print or move the cursor
  up                             Move the cursor to its parent
  find <id>                      Print all paths of a node id
  event                          Print the last event
  metrics                        Print collected metrics
  help                           Show this help
  quit                           Exit

A target is either a path like / or /0/2, or a node id prefixed by '#'.
Values are read as YAML scalars, e.g. 42, true or text.
`)
}

// target is a parsed command target, addressing a node either by
// path or by id.
type target struct {
	path tree.Path
	id   tree.ID
	byID bool
}

func parseTarget(arg string) (target, error) {
	if strings.HasPrefix(arg, "#") {
		return target{id: tree.ID(arg[1:]), byID: true}, nil
	}
	path, err := tree.ParsePath(arg)
	if err != nil {
		return target{}, err
	}
	return target{path: path}, nil
}

func (r *REPL) targetArg(args []string, min int, usage string) (target, bool) {
	if len(args) < min {
		fmt.Fprintf(r.out, "Usage: %s\n", usage)
		return target{}, false
	}
	t, err := parseTarget(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return target{}, false
	}
	return t, true
}

// parseValue reads a command line value as a YAML scalar.
func parseValue(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	return v
}

// parseProps builds a node spec from a name and a list of key=value pairs.
func parseProps(name string, pairs []string) (tree.Props, error) {
	props := tree.Props{treedbg.NameKey: name}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed property %q, expected key=value", pair)
		}
		props[k] = parseValue(v)
	}
	return props, nil
}

func (r *REPL) report(res *tree.Result, err error) {
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if res == nil {
		fmt.Fprintln(r.out, "No such node")
		return
	}
	fmt.Fprintf(r.out, "OK: %s (version %d)\n", r.store.Event(), r.store.State().Version)
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(r.out, "Usage: load <file>")
		return
	}
	spec, err := LoadSpec(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.store.Reset(spec)
	fmt.Fprintf(r.out, "Loaded %d nodes from %s\n", tree.Count(r.store.Root()), args[0])
}

func (r *REPL) cmdShow() {
	var cursor *tree.Node
	if c := r.store.Cursor(); c != nil {
		cursor = c.Node
	}
	fmt.Fprint(r.out, treedbg.Sprint(r.store.Root(), cursor))
}

func (r *REPL) cmdAdd(args []string) {
	t, ok := r.targetArg(args, 2, "add <target> <name> [key=value ...]")
	if !ok {
		return
	}
	spec, err := parseProps(args[1], args[2:])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if t.byID {
		r.report(r.store.AddNodeByID(t.id, spec))
		return
	}
	r.report(r.store.AddNode(t.path, spec))
}

func (r *REPL) cmdDelete(args []string) {
	t, ok := r.targetArg(args, 1, "del <target>")
	if !ok {
		return
	}
	if t.byID {
		r.report(r.store.DeleteNodeByID(t.id))
		return
	}
	r.report(r.store.DeleteNode(t.path))
}

func (r *REPL) cmdSet(args []string) {
	t, ok := r.targetArg(args, 3, "set <target> <key> <value>")
	if !ok {
		return
	}
	key, value := args[1], parseValue(strings.Join(args[2:], " "))
	if key == tree.ChildrenKey {
		fmt.Fprintf(r.out, "Error: use 'replace' to change %q\n", tree.ChildrenKey)
		return
	}
	updater := func(current tree.Props) tree.Props {
		props := make(tree.Props, len(current)+1)
		for k, v := range current {
			props[k] = v
		}
		props[key] = value
		return props
	}
	if t.byID {
		r.report(r.store.UpdateNodePropsByID(t.id, updater))
		return
	}
	r.report(r.store.UpdateNodeProps(t.path, updater))
}

func (r *REPL) cmdReplace(args []string) {
	t, ok := r.targetArg(args, 1, "replace <target> <name> ...")
	if !ok {
		return
	}
	specs := make([]tree.Props, len(args)-1)
	for i, name := range args[1:] {
		specs[i] = tree.Props{treedbg.NameKey: name}
	}
	if t.byID {
		r.report(r.store.ReplaceChildNodesByID(t.id, specs))
		return
	}
	r.report(r.store.ReplaceChildNodes(t.path, specs))
}

func (r *REPL) cmdGet(args []string) {
	t, ok := r.targetArg(args, 1, "get <target>")
	if !ok {
		return
	}
	var props tree.Props
	if t.byID {
		var found bool
		if props, found = r.store.NodePropsByID(t.id); !found {
			fmt.Fprintln(r.out, "No such node")
			return
		}
	} else {
		var err error
		if props, err = r.store.NodeProps(t.path); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
	}
	out, err := yaml.Marshal(map[string]any(props))
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(r.out, string(out))
}

func (r *REPL) cmdCursor(args []string) {
	if len(args) == 0 {
		r.printCursor()
		return
	}
	t, err := parseTarget(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if t.byID {
		err = r.store.SetCursorByID(t.id)
	} else {
		err = r.store.SetCursor(t.path)
	}
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.printCursor()
}

func (r *REPL) cmdUp() {
	path, ok := r.store.CursorPath()
	if !ok {
		fmt.Fprintln(r.out, "No cursor")
		return
	}
	if err := r.store.SetCursorToParent(path); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.printCursor()
}

func (r *REPL) printCursor() {
	c := r.store.Cursor()
	if c == nil {
		fmt.Fprintln(r.out, "Cursor: none")
		return
	}
	path, _ := r.store.CursorPath()
	fmt.Fprintf(r.out, "Cursor: %s at %s\n", c.ID, path)
}

func (r *REPL) cmdFind(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(r.out, "Usage: find <id>")
		return
	}
	id := tree.ID(strings.TrimPrefix(args[0], "#"))
	paths := r.store.Paths(id)
	if len(paths) == 0 {
		fmt.Fprintln(r.out, "No such node")
		return
	}
	for _, path := range paths {
		nodes, _ := r.store.PathNodes(path)
		fmt.Fprintf(r.out, "%s  %s\n", path, treedbg.FormatNodePath(nodes))
	}
}

func (r *REPL) cmdMetrics() {
	if r.registry == nil {
		fmt.Fprintln(r.out, "Metrics are disabled (set TREESTATE_METRICS_ENABLED=true)")
		return
	}
	families, err := r.registry.Gather()
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(r.out, mf); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
	}
}
