package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/devbush/clipsave/internal/ports"
)

type fakeTool struct {
	available bool
	installs  int
	updates   int
}

func (f *fakeTool) IsAvailable() bool     { return f.available }
func (f *fakeTool) GetBinaryPath() string { return "/bin/yt-dlp" }

func (f *fakeTool) Update(ctx context.Context) error {
	f.updates++
	return nil
}
func (f *fakeTool) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	f.installs++
	if progress != nil {
		progress(50, 100)
	}
	return nil
}

var _ ports.ToolManager = (*fakeTool)(nil)

func TestDepsInstall(t *testing.T) {
	tool := &fakeTool{}
	app := &App{Tool: tool}

	if err := runDepsInstall(app); err != nil {
		t.Fatalf("runDepsInstall() error = %v", err)
	}
	if tool.installs != 1 {
		t.Errorf("installs = %d, want 1", tool.installs)
	}
}

func TestDepsInstallAlreadyPresent(t *testing.T) {
	tool := &fakeTool{available: true}
	app := &App{Tool: tool}

	if err := runDepsInstall(app); err != nil {
		t.Fatalf("runDepsInstall() error = %v", err)
	}
	if tool.installs != 0 {
		t.Errorf("installs = %d, want 0 when already present", tool.installs)
	}
}

func TestDepsUpdate(t *testing.T) {
	tool := &fakeTool{available: true}
	app := &App{Tool: tool}

	if err := runDepsUpdate(app); err != nil {
		t.Fatalf("runDepsUpdate() error = %v", err)
	}
	if tool.updates != 1 {
		t.Errorf("updates = %d, want 1", tool.updates)
	}
}

func TestDepsUpdateRequiresInstall(t *testing.T) {
	tool := &fakeTool{}
	app := &App{Tool: tool}

	err := runDepsUpdate(app)
	if err == nil || !strings.Contains(err.Error(), "deps install") {
		t.Fatalf("runDepsUpdate() error = %v, want install-first error", err)
	}
	if tool.updates != 0 {
		t.Errorf("updates = %d, want 0 when not installed", tool.updates)
	}
}
