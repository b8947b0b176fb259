package treestate

import (
	"fmt"

	"github.com/npillmayer/treestate/tree"
)

// Event types recorded by a Store in addition to the names of reducers.
const (
	EventInitialization    = "initialization"
	EventSetTree           = "setTree"
	EventSetCursor         = "setCursor"
	EventSetCursorToParent = "setCursorToParent"
)

// Event records an operation performed on a Store. A Store keeps only the
// most recent event.
type Event struct {
	Type   string    // reducer name or one of the Event… constants
	Path   tree.Path // nil for operations not addressed by path
	Params []any     // operation specific parameters
}

// RecordEvent creates an event record.
func RecordEvent(typ string, path tree.Path, params ...any) Event {
	return Event{
		Type:   typ,
		Path:   path.Clone(),
		Params: params,
	}
}

func (e Event) String() string {
	if e.Path == nil {
		return fmt.Sprintf("%s%v", e.Type, e.Params)
	}
	return fmt.Sprintf("%s@%s%v", e.Type, e.Path, e.Params)
}
