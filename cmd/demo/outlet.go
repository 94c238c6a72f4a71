package main

import (
	"sync"

	"github.com/vango-dev/vangoroute/collab"
)

// activation is what memOutlet remembers about one mounted outlet, shaped
// for direct JSON marshaling by the /api/state handler.
type activation struct {
	Outlet    string         `json:"outlet"`
	Component string         `json:"component"`
	Path      string         `json:"path"`
	Params    map[string]any `json:"params"`
	Data      map[string]any `json:"data"`
}

// memOutlet stands in for the view renderer (spec.md §1: out of scope,
// declared only so navigation has someone to notify). It records what's
// mounted where instead of rendering anything, so the demo server can
// report it back over HTTP.
type memOutlet struct {
	mu     sync.Mutex
	mounts map[string]activation
}

func newMemOutlet() *memOutlet {
	return &memOutlet{mounts: make(map[string]activation)}
}

func (o *memOutlet) Activate(name string, component any, snapshot collab.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	params := make(map[string]any)
	for k, v := range snapshot.Params().ToMap() {
		params[k] = v
	}

	componentName, _ := component.(string)
	o.mounts[name] = activation{
		Outlet:    name,
		Component: componentName,
		Path:      snapshot.RouteConfigPath(),
		Params:    params,
		Data:      snapshot.Data(),
	}
}

func (o *memOutlet) Deactivate(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.mounts, name)
}

func (o *memOutlet) snapshot() []activation {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]activation, 0, len(o.mounts))
	for _, a := range o.mounts {
		out = append(out, a)
	}
	return out
}
