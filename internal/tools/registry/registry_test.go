package registry

import (
	"testing"

	"github.com/vtcode/vtcode/internal/tools/policy"
)

func TestResolveIdempotent(t *testing.T) {
	resolver := policy.NewResolver()
	resolver.RegisterAlias("bash", "run_terminal_cmd")
	reg := New(resolver)
	reg.Register(&Tool{Name: "run_terminal_cmd", Description: "run a shell command"})

	first := reg.Resolve("bash")
	if !first.Found || first.CanonicalName != "run_terminal_cmd" {
		t.Fatalf("unexpected resolution: %+v", first)
	}
	second := reg.Resolve(first.CanonicalName)
	if second.CanonicalName != first.CanonicalName || !second.Found {
		t.Fatalf("resolution not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolveUnknownTool(t *testing.T) {
	reg := New(policy.NewResolver())
	res := reg.Resolve("does_not_exist")
	if res.Found || res.Err == nil {
		t.Fatal("expected unknown tool to be unresolved with an error")
	}
}

func TestListAllowedFiltersByPolicy(t *testing.T) {
	resolver := policy.NewResolver()
	reg := New(resolver)
	reg.Register(&Tool{Name: "read_file"})
	reg.Register(&Tool{Name: "write_file"})

	p := &policy.Policy{Allow: []string{"read_file"}}
	allowed := reg.ListAllowed(p)
	if len(allowed) != 1 || allowed[0].Name != "read_file" {
		t.Fatalf("expected only read_file allowed, got %+v", allowed)
	}
}

func TestRegisterMCPServerToolsWiresResolver(t *testing.T) {
	resolver := policy.NewResolver()
	reg := New(resolver)
	reg.RegisterMCPServerTools("github", []*Tool{{Name: "mcp:github.search"}})

	p := &policy.Policy{Allow: []string{"mcp:github.*"}}
	allowed := reg.ListAllowed(p)
	if len(allowed) != 1 {
		t.Fatalf("expected mcp tool allowed via wildcard, got %+v", allowed)
	}
}
