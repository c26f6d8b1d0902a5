// Package render invokes the external chat-analytics tool over the export
// directory. The renderer's internals are out of scope; this only shells
// out and reports failure.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
)

type CLI struct {
	exportDir    string
	analyticsDir string
	logger       *slog.Logger
}

func New(exportDir, analyticsDir string, logger *slog.Logger) *CLI {
	return &CLI{exportDir: exportDir, analyticsDir: analyticsDir, logger: logger}
}

// Render regenerates the analytics page from every export document.
func (r *CLI) Render(ctx context.Context) error {
	out := filepath.Join(r.analyticsDir, "index.html")
	cmd := exec.CommandContext(ctx, "npx", "chat-analytics",
		"-p", "discord",
		"-i", filepath.Join(r.exportDir, "*"),
		"-o", out,
	)
	r.logger.Debug("rendering analytics", "output", out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("chat-analytics: %w: %s", err, output)
	}
	return nil
}
