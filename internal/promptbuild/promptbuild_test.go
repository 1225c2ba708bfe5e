package promptbuild

import "testing"

func TestSystemPromptCacheEquivalence(t *testing.T) {
	a := New()
	in := Inputs{BasePrompt: "base", ConversationLength: 3, ToolUsageCount: 1}

	first := a.SystemPrompt(in)
	second := a.SystemPrompt(in)
	if first != second {
		t.Fatalf("SystemPrompt() not cache-stable: %q != %q", first, second)
	}

	stats := a.Stats(in)
	if !stats.Cached {
		t.Fatalf("Stats().Cached = false, want true after a build")
	}
}

func TestSystemPromptChangedInputsDiffer(t *testing.T) {
	a := New()
	base := Inputs{BasePrompt: "base", ConversationLength: 1}
	changed := base
	changed.ConversationLength = 2

	if a.SystemPrompt(base) == a.SystemPrompt(changed) {
		t.Fatalf("SystemPrompt() did not change for different ConversationLength")
	}
}

func TestRebuildPromptIgnoresCache(t *testing.T) {
	a := New()
	in := Inputs{BasePrompt: "base"}
	a.SystemPrompt(in)

	rebuilt := a.RebuildPrompt(in)
	if rebuilt == "" {
		t.Fatalf("RebuildPrompt() returned empty string")
	}
}

func TestPlanModeOverridesLeadingInstructions(t *testing.T) {
	a := New()
	out := a.SystemPrompt(Inputs{BasePrompt: "normal work instructions", PlanMode: true})
	if !contains(out, "Plan mode") {
		t.Fatalf("expected plan mode header, got %q", out)
	}
	if contains(out, "normal work instructions") {
		t.Fatalf("plan mode should override leading instructions, got %q", out)
	}
}

func TestRetryNoteAppearsOnRetry(t *testing.T) {
	a := New()
	out := a.SystemPrompt(Inputs{BasePrompt: "base", RetryAttempt: 2})
	if !contains(out, "Retry #2") {
		t.Fatalf("expected retry note, got %q", out)
	}
	if !contains(out, "task_tracker") {
		t.Fatalf("expected retry note to mention task_tracker, got %q", out)
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (sub == "" || indexOf(s, sub) >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
