// Package xbrowser opens files and URLs for the user.
package xbrowser

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/browser"

	"oss.terrastruct.com/xos"
)

// Open opens target, a path or URL, with $BROWSER when set or the system
// default otherwise. BROWSER=0 disables opening.
func Open(ctx context.Context, env *xos.Env, target string, out io.Writer) error {
	browserEnv := env.Getenv("BROWSER")
	switch browserEnv {
	case "0":
		return nil
	case "":
		browser.Stdout = out
		browser.Stderr = out
		return browser.OpenFile(target)
	}
	browserSh := fmt.Sprintf("%s \"$1\"", browserEnv)
	cmd := exec.CommandContext(ctx, "sh", "-c", browserSh, "--", target)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %v (out: %q): %w", cmd.Args, b, err)
	}
	return nil
}
