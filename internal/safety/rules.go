package safety

import (
	"strings"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func hasArg(argv []string, want string) bool {
	for _, a := range argv[1:] {
		if a == want {
			return true
		}
	}
	return false
}

func hasArgPrefix(argv []string, prefix string) bool {
	for _, a := range argv[1:] {
		if strings.HasPrefix(a, prefix) {
			return true
		}
	}
	return false
}

// defaultRules returns the spot-checked baseline table: read-only
// inspection commands allow, destructive variants deny, everything
// else is left unknown for the policy gateway (C5) to decide via HITL.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:    "git_readonly",
			Verdict: vtmodels.SafetyAllow,
			Reason:  "read-only git subcommand",
			Match: func(program string, argv []string, raw string) bool {
				if program != "git" || len(argv) < 2 {
					return false
				}
				switch argv[1] {
				case "status", "log", "diff", "show", "branch", "blame", "remote", "fetch":
					return !hasArg(argv, "--hard") && !hasArg(argv, "-f") && !hasArg(argv, "--force")
				}
				return false
			},
		},
		{
			Name:    "git_destructive",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "destructive git operation",
			Match: func(program string, argv []string, raw string) bool {
				if program != "git" || len(argv) < 2 {
					return false
				}
				if argv[1] == "reset" && hasArg(argv, "--hard") {
					return true
				}
				if argv[1] == "clean" && (hasArg(argv, "-f") || hasArg(argv, "-fd") || hasArg(argv, "-fdx")) {
					return true
				}
				if argv[1] == "push" && (hasArg(argv, "--force") || hasArg(argv, "-f")) {
					return true
				}
				return false
			},
		},
		{
			Name:    "find_destructive",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "find with -delete or -exec rm",
			Match: func(program string, argv []string, raw string) bool {
				if program != "find" {
					return false
				}
				return hasArg(argv, "-delete") || hasArgPrefix(argv, "-exec")
			},
		},
		{
			Name:    "find_readonly",
			Verdict: vtmodels.SafetyUnknown,
			Reason:  "find without destructive flags is unknown by default",
			Match: func(program string, argv []string, raw string) bool {
				return program == "find"
			},
		},
		{
			Name:    "rm_rf_root",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "recursive forced delete",
			Match: func(program string, argv []string, raw string) bool {
				if program != "rm" {
					return false
				}
				return hasArg(argv, "-rf") || (hasArg(argv, "-r") && hasArg(argv, "-f")) ||
					hasArg(argv, "--recursive") || hasArg(argv, "-fr")
			},
		},
		{
			Name:    "dd_disk_write",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "dd writing to a device",
			Match: func(program string, argv []string, raw string) bool {
				return program == "dd" && hasArgPrefix(argv, "of=/dev/")
			},
		},
		{
			Name:    "chmod_chown_readonly",
			Verdict: vtmodels.SafetyAllow,
			Reason:  "permission inspection",
			Match: func(program string, argv []string, raw string) bool {
				return (program == "ls" || program == "stat" || program == "file")
			},
		},
		{
			Name:    "curl_wget_pipe_shell",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "remote script piped into a shell",
			Match: func(program string, argv []string, raw string) bool {
				return (program == "curl" || program == "wget") && strings.Contains(raw, "|")
			},
		},
	}
}
