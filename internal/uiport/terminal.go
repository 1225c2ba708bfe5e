package uiport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TerminalRenderer is a plain-text Renderer suitable for a non-interactive
// terminal or a pipe. It never blocks on RenderHITL unless in must prompt
// is reachable from a real terminal (stdin is a tty); callers that need
// raw-mode key capture should use cmd/vtcode's terminal-setup picker
// instead, which talks to golang.org/x/term directly.
type TerminalRenderer struct {
	out        io.Writer
	in         *bufio.Reader
	showReason bool
}

// NewTerminalRenderer builds a Renderer that writes to out and reads
// HITL answers from in.
func NewTerminalRenderer(out io.Writer, in io.Reader, showReasoning bool) *TerminalRenderer {
	return &TerminalRenderer{out: out, in: bufio.NewReader(in), showReason: showReasoning}
}

func (r *TerminalRenderer) SetHeader(provider, model, mode, reasoningEffort string) {
	fmt.Fprintf(r.out, "[%s/%s mode=%s effort=%s]\n", provider, model, mode, reasoningEffort)
}

func (r *TerminalRenderer) RenderAssistantDelta(text string) {
	fmt.Fprint(r.out, text)
}

func (r *TerminalRenderer) RenderReasoningDelta(text string) {
	if !r.showReason {
		return
	}
	fmt.Fprintf(r.out, "\x1b[2m%s\x1b[0m", text)
}

func (r *TerminalRenderer) RenderToolStart(name string, args json.RawMessage) {
	fmt.Fprintf(r.out, "\n→ %s %s\n", name, string(args))
}

func (r *TerminalRenderer) RenderToolResult(name string, outcome ToolOutcomeView) {
	marker := "✓"
	if outcome.IsError {
		marker = "✗"
	}
	fmt.Fprintf(r.out, "%s %s: %s\n", marker, name, outcome.Summary)
	if outcome.Detail != "" {
		fmt.Fprintln(r.out, outcome.Detail)
	}
}

func (r *TerminalRenderer) RenderDiffConfirm(paths []string, unifiedDiff string) bool {
	fmt.Fprintf(r.out, "\nProposed change to: %s\n%s\nApply? [y/N] ", strings.Join(paths, ", "), unifiedDiff)
	line, _ := r.in.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

func (r *TerminalRenderer) RenderHITL(req HITLRequest) (HITLDecision, error) {
	fmt.Fprintf(r.out, "\nApproval requested for %s: %s\nArgs: %s\n[a]pprove / [A]lways / [d]eny: ",
		req.ToolName, req.Reason, string(req.Arguments))
	line, err := r.in.ReadString('\n')
	if err != nil {
		return HITLDeny, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "a":
		return HITLApprove, nil
	case "always", "aa":
		return HITLApproveAlways, nil
	default:
		return HITLDeny, nil
	}
}
