package policy

import "testing"

func TestResolverAllowsMCPAlias(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterMCPServer("github", []string{"search"})
	resolver.RegisterAlias("mcp_github_search", "mcp:github.search")

	policy := &Policy{Allow: []string{"mcp:github.search"}}
	if !resolver.IsAllowed(policy, "mcp_github_search") {
		t.Fatal("expected alias tool to be allowed")
	}
}

func TestResolverAllowsMCPAliasViaWildcard(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterMCPServer("github", []string{"search"})
	resolver.RegisterAlias("mcp_github_search", "mcp:github.search")

	policy := &Policy{Allow: []string{"mcp:github.*"}}
	if !resolver.IsAllowed(policy, "mcp_github_search") {
		t.Fatal("expected alias tool to be allowed via wildcard")
	}
}

func TestResolverDenyOverridesAllow(t *testing.T) {
	resolver := NewResolver()
	policy := &Policy{Allow: []string{"group:fs"}, Deny: []string{"write_file"}}
	if resolver.IsAllowed(policy, "write_file") {
		t.Fatal("expected deny to override allow")
	}
	if !resolver.IsAllowed(policy, "read_file") {
		t.Fatal("expected read_file to remain allowed")
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterAlias("bash", "run_terminal_cmd")
	once := resolver.CanonicalName("bash")
	twice := resolver.CanonicalName(once)
	if once != twice {
		t.Fatalf("resolution not idempotent: %q != %q", once, twice)
	}
}

func TestResolverFullProfileAllowsUnlisted(t *testing.T) {
	resolver := NewResolver()
	policy := NewPolicy(ProfileFull)
	if !resolver.IsAllowed(policy, "anything_goes") {
		t.Fatal("expected full profile to allow unlisted tools")
	}
}

func TestResolverUnregisterMCPServerRevokesWildcard(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterMCPServer("github", []string{"search"})
	policy := &Policy{Allow: []string{"mcp:github.*"}}
	if !resolver.IsAllowed(policy, "mcp:github.search") {
		t.Fatal("expected mcp tool allowed before unregister")
	}
	resolver.UnregisterMCPServer("github")
	if resolver.IsAllowed(policy, "mcp:github.search") {
		t.Fatal("expected mcp tool denied after unregister invalidates the wildcard expansion")
	}
}
