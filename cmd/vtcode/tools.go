package main

import (
	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/internal/config"
	sessionstore "github.com/vtcode/vtcode/internal/sessions"
	"github.com/vtcode/vtcode/internal/tools/exec"
	"github.com/vtcode/vtcode/internal/tools/files"
	toolsessions "github.com/vtcode/vtcode/internal/tools/sessions"
)

// buildToolRegistry registers the built-in filesystem, shell, and session
// tools scoped to the workspace, mirroring the handful of tools a real
// interactive run needs.
func buildToolRegistry(cfg *config.Config, store sessionstore.Store) *agent.ToolRegistry {
	registry := agent.NewToolRegistry()
	workspace := cfg.Workspace.Path
	if workspace == "" {
		workspace = "."
	}

	fileCfg := files.Config{Workspace: workspace, MaxReadBytes: 200000}
	registry.Register(files.NewReadTool(fileCfg))
	registry.Register(files.NewWriteTool(fileCfg))
	registry.Register(files.NewEditTool(fileCfg))
	registry.Register(files.NewApplyPatchTool(fileCfg))

	execManager := exec.NewManager(workspace)
	registry.Register(exec.NewExecTool("shell", execManager))
	registry.Register(exec.NewProcessTool(execManager))

	if store != nil {
		registry.Register(toolsessions.NewListTool(store, "vtcode"))
		registry.Register(toolsessions.NewHistoryTool(store))
		registry.Register(toolsessions.NewStatusTool(store))
	}

	return registry
}
