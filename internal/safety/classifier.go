// Package safety classifies shell commands before they reach the tool
// execution pipeline, producing an Allow/Deny/Unknown verdict plus the
// rule that produced it.
package safety

import (
	"strings"

	"github.com/vtcode/vtcode/internal/tools/security"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Rule matches a command's program name and argv against a pattern
// and reports a verdict. Rules are evaluated in order; the first
// match wins.
type Rule struct {
	Name    string
	Match   func(program string, argv []string, raw string) bool
	Verdict vtmodels.SafetyVerdict
	Reason  string
}

// Classifier holds an ordered rule table plus the metacharacter scan
// used to flag compound shell invocations that bypass argv-based
// matching entirely (pipes, redirects, subshells, chaining).
type Classifier struct {
	rules []Rule
}

// New builds a Classifier with the default rule table. Additional
// rules can be appended with AddRule before first use.
func New() *Classifier {
	c := &Classifier{}
	c.rules = append(c.rules, defaultRules()...)
	return c
}

// AddRule appends a rule to the end of the table (lowest priority).
func (c *Classifier) AddRule(r Rule) {
	c.rules = append(c.rules, r)
}

// Classify tokenizes raw into a program name and argv (best-effort,
// quote-aware) and evaluates the rule table against it, returning the
// first matching verdict. Commands containing shell metacharacters
// that change control flow (pipes, redirects, subshells, chaining,
// backgrounding) are deferred to the metachar scan, since a argv-level
// rule cannot see what the metacharacter hides.
func (c *Classifier) Classify(raw string) vtmodels.SafetyDecision {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return vtmodels.SafetyDecision{Verdict: vtmodels.SafetyUnknown, Rule: "empty", Reason: "empty command"}
	}

	if analysis := security.AnalyzeCommandQuoteAware(trimmed); !analysis.IsSafe {
		tokens := make([]string, len(analysis.DangerousTokens))
		for i, t := range analysis.DangerousTokens {
			tokens[i] = t.Token
		}
		return vtmodels.SafetyDecision{
			Verdict: vtmodels.SafetyDeny,
			Rule:    "metacharacter_scan",
			Reason:  "command contains shell control characters: " + strings.Join(tokens, " "),
		}
	}

	argv := tokenize(trimmed)
	if len(argv) == 0 {
		return vtmodels.SafetyDecision{Verdict: vtmodels.SafetyUnknown, Rule: "empty", Reason: "no tokens"}
	}
	program := baseName(argv[0])

	for _, rule := range c.rules {
		if rule.Match(program, argv, trimmed) {
			return vtmodels.SafetyDecision{Verdict: rule.Verdict, Rule: rule.Name, Reason: rule.Reason}
		}
	}

	return vtmodels.SafetyDecision{Verdict: vtmodels.SafetyUnknown, Rule: "no_match", Reason: "no rule matched " + program}
}

func baseName(path string) string {
	path = strings.TrimSuffix(path, ".exe")
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// tokenize performs a simple quote-aware split of a command line into
// argv, honoring single and double quotes but not performing full
// shell expansion.
func tokenize(cmd string) []string {
	var tokens []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(cmd); i++ {
		ch := cmd[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ' ' || ch == '\t':
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

