// Package merge folds kit hook and MCP server fragments into the shared
// project configuration documents.
//
// Both folds are additive. Hook handlers are appended per event unless a
// structurally identical handler is already registered. MCP servers are
// added by name and an existing name is never replaced, so the first
// writer wins.
package merge

import (
	"bytes"

	"github.com/thoreinstein/vibery/internal/docstore"
)

// Document keys of the shared configuration documents and their fragments.
const (
	HooksKey      = "hooks"
	MCPServersKey = "mcpServers"
)

// HookAddition is one handler appended to an event.
type HookAddition struct {
	Event   string
	Handler any
}

// Hooks merges fragment["hooks"] into settings["hooks"] and returns the
// handlers that were appended, in fragment order with events sorted.
//
// settings["hooks"] is created when absent or not an object. An event whose
// value is not a list is replaced by an empty list before merging.
func Hooks(settings, fragment docstore.Document) []HookAddition {
	incoming, ok := fragment[HooksKey].(map[string]any)
	if !ok {
		return nil
	}

	hooks := settings.Object(HooksKey)
	var added []HookAddition
	for _, event := range docstore.Document(incoming).Keys() {
		handlers, ok := incoming[event].([]any)
		if !ok {
			continue
		}

		existing, _ := hooks[event].([]any)
		if existing == nil {
			existing = []any{}
		}
		for _, h := range handlers {
			if containsHandler(existing, h) {
				continue
			}
			existing = append(existing, h)
			added = append(added, HookAddition{Event: event, Handler: h})
		}
		hooks[event] = existing
	}
	return added
}

// MCPs merges fragment["mcpServers"] into config["mcpServers"] and returns
// the names that were added, sorted. Names already present are kept as is.
func MCPs(config, fragment docstore.Document) []string {
	incoming, ok := fragment[MCPServersKey].(map[string]any)
	if !ok {
		return nil
	}

	servers := config.Object(MCPServersKey)
	var added []string
	for _, name := range docstore.Document(incoming).Keys() {
		if _, exists := servers[name]; exists {
			continue
		}
		servers[name] = incoming[name]
		added = append(added, name)
	}
	return added
}

func containsHandler(list []any, h any) bool {
	want := docstore.Canonical(h)
	for _, existing := range list {
		if bytes.Equal(docstore.Canonical(existing), want) {
			return true
		}
	}
	return false
}
