// internal/routing/reverse.go
//
// Named-route table with lazy reversal.
//
// Context
// -------
// Heavy widgets carry the *name* of the Ajax endpoint that serves them, not
// its URL.  URL patterns are mounted by cmd/web after packages initialise,
// so widgets must defer name→URL resolution until first render.  The Table
// here is that indirection: the router registers each mounted path under a
// name, and widgets call Reverse at BuildAttrs time.
//
// The table is an explicit value threaded through construction, not a
// package-level global, so tests can build isolated instances.

package routing

import (
	"fmt"
	"sync"
)

// CentralJSONRoute is the shared endpoint name that auto widgets default to.
// cmd/web mounts the central Ajax view under this name.
const CentralJSONRoute = "select2_central_json"

// Table maps route names to mounted URL paths.  Guarded by mutex; reads
// dominate after startup.
type Table struct {
	mu     sync.RWMutex
	routes map[string]string
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{routes: make(map[string]string)}
}

// Register records a name→path binding.  A duplicate name overwrites the
// earlier entry; last mount wins, matching router behaviour.
func (t *Table) Register(name, path string) {
	t.mu.Lock()
	t.routes[name] = path
	t.mu.Unlock()
}

// Reverse resolves a route name to its mounted path.  Unknown names are an
// error naming the route, since they are integrator mistakes.
func (t *Table) Reverse(name string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	path, ok := t.routes[name]
	if !ok {
		return "", fmt.Errorf("routing: no route registered under %q", name)
	}
	return path, nil
}
