// Package registry holds the set of tools available to the run-loop
// and resolves a requested tool name to a concrete, schema-validated
// Tool definition (C4).
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/vtcode/vtcode/internal/tools/policy"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Tool is a single callable capability exposed to the model.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
	// Source identifies where the tool came from: "builtin" or
	// "mcp:<server>".
	Source string
}

// Registry holds registered tools and resolves names against the
// policy resolver's alias/canonicalization rules.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]*Tool
	resolver *policy.Resolver

	// resolveCache memoizes ToolResolution results; resolution is a
	// pure function of (name, registry contents) so memoizing is safe
	// as long as the cache is invalidated on Register/Unregister.
	resolveCache map[string]vtmodels.ToolResolution
}

// New creates a Registry bound to the given policy resolver.
func New(resolver *policy.Resolver) *Registry {
	return &Registry{
		tools:        make(map[string]*Tool),
		resolver:     resolver,
		resolveCache: make(map[string]vtmodels.ToolResolution),
	}
}

// Register adds or replaces a tool definition.
func (r *Registry) Register(t *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name] = t
	r.resolveCache = make(map[string]vtmodels.ToolResolution)
}

// Unregister removes a tool and, if it was the last tool from an MCP
// server, the resolver's registration for that server.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
	r.resolveCache = make(map[string]vtmodels.ToolResolution)
}

// RegisterMCPServerTools bulk-registers tools discovered from an MCP
// server and informs the policy resolver so "mcp:<server>.*" and
// aliases resolve correctly.
func (r *Registry) RegisterMCPServerTools(serverID string, tools []*Tool) {
	r.mu.Lock()
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		t.Source = "mcp:" + serverID
		r.tools[t.Name] = t
		names = append(names, t.Name)
	}
	r.resolveCache = make(map[string]vtmodels.ToolResolution)
	r.mu.Unlock()

	if r.resolver != nil {
		r.resolver.RegisterMCPServer(serverID, names)
	}
}

// Resolve canonicalizes a requested tool name and looks it up. The
// result is cached; resolution is idempotent within a registry
// generation (Resolve(Resolve(x).CanonicalName) == Resolve(x)).
func (r *Registry) Resolve(name string) vtmodels.ToolResolution {
	r.mu.RLock()
	if cached, ok := r.resolveCache[name]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	canonical := name
	if r.resolver != nil {
		canonical = r.resolver.CanonicalName(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, found := r.tools[canonical]
	res := vtmodels.ToolResolution{CanonicalName: canonical, Found: found}
	if !found {
		res.Err = fmt.Errorf("tool %q (canonical %q) is not registered", name, canonical)
	}
	r.resolveCache[name] = res
	return res
}

// Get returns the Tool for a canonical name.
func (r *Registry) Get(canonicalName string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[canonicalName]
	return t, ok
}

// ListAllowed returns tool definitions allowed under the given
// policy, filtered through the resolver's Decide logic.
func (r *Registry) ListAllowed(p *policy.Policy) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Tool
	for name, t := range r.tools {
		if r.resolver == nil || r.resolver.IsAllowed(p, name) {
			out = append(out, t)
		}
	}
	return out
}

// SchemaJSON marshals a tool's JSON schema for sending to a provider.
func (t *Tool) SchemaJSON() (json.RawMessage, error) {
	if t.Schema == nil {
		return json.RawMessage(`{"type":"object","properties":{}}`), nil
	}
	return json.Marshal(t.Schema)
}

// GenerateSchema builds a jsonschema.Schema from a Go struct type
// describing a tool's arguments, using reflection the way
// invopop/jsonschema's Reflector does.
func GenerateSchema(v any) *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	return reflector.Reflect(v)
}
