package security

import (
	"fmt"
	"regexp"

	"github.com/vtcode/vtcode/internal/config"
)

// auditConfigContent checks configuration content for security issues.
// This includes secrets detection and insecure defaults.
func auditConfigContent(cfg *config.Config) []AuditFinding {
	var findings []AuditFinding

	if cfg == nil {
		return findings
	}

	findings = append(findings, auditSecretsInConfig(cfg)...)
	findings = append(findings, auditMCPServers(cfg)...)

	return findings
}

// auditSecretsInConfig checks for potential secrets that look like they might
// be hardcoded rather than coming from environment variables.
func auditSecretsInConfig(cfg *config.Config) []AuditFinding {
	var findings []AuditFinding

	hardcodedPatterns := []*regexp.Regexp{
		regexp.MustCompile(`^sk-[a-zA-Z0-9]{20,}`),             // OpenAI/Anthropic API key
		regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}`),             // GitHub personal access token
		regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}`),             // GitHub OAuth token
		regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]+`),        // GitHub fine-grained PAT
		regexp.MustCompile(`^AKIA[0-9A-Z]{16}`),                // AWS access key
		regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}`),           // Google API key
	}

	for providerName, provider := range cfg.LLM.Providers {
		if provider.APIKey == "" {
			continue
		}
		for _, pattern := range hardcodedPatterns {
			if pattern.MatchString(provider.APIKey) {
				findings = append(findings, AuditFinding{
					CheckID:     fmt.Sprintf("config.hardcoded_api_key.%s", providerName),
					Severity:    SeverityWarn,
					Title:       fmt.Sprintf("Potential hardcoded API key in %s provider", providerName),
					Detail:      fmt.Sprintf("The API key for llm.providers.%s appears to be hardcoded. Consider using environment variables.", providerName),
					Remediation: "Use environment variables like ANTHROPIC_API_KEY instead of hardcoding secrets in config files.",
				})
				break
			}
		}
	}

	if cfg.Tools.MemorySearch.Embeddings.APIKey != "" {
		for _, pattern := range hardcodedPatterns {
			if pattern.MatchString(cfg.Tools.MemorySearch.Embeddings.APIKey) {
				findings = append(findings, AuditFinding{
					CheckID:     "config.hardcoded_embeddings_api_key",
					Severity:    SeverityWarn,
					Title:       "Potential hardcoded embeddings API key",
					Detail:      "tools.memory_search.embeddings.api_key appears to be hardcoded in the config file.",
					Remediation: "Use an environment variable for the embeddings API key.",
				})
				break
			}
		}
	}

	return findings
}

// auditMCPServers checks MCP server definitions for insecure defaults.
func auditMCPServers(cfg *config.Config) []AuditFinding {
	var findings []AuditFinding

	for _, server := range cfg.MCP.Servers {
		if server == nil {
			continue
		}
		if server.URL != "" && len(server.Headers) == 0 {
			findings = append(findings, AuditFinding{
				CheckID:  fmt.Sprintf("config.mcp.%s.no_auth_header", server.ID),
				Severity: SeverityInfo,
				Title:    fmt.Sprintf("MCP server %q has no auth headers", server.ID),
				Detail:   "HTTP-transport MCP servers without headers send unauthenticated requests.",
			})
		}
	}

	return findings
}
