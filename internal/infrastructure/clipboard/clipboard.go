// Package clipboard provides a clipboard adapter using wl-clipboard
// (Wayland) with X11 fallback.
package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/logging"
)

// Adapter implements port.Clipboard using system clipboard tools. Uses
// wl-clipboard for Wayland, falls back to xclip/xsel for X11.
type Adapter struct {
	copyCmd string
}

// New creates a new clipboard adapter. Detects Wayland vs X11 and selects
// the appropriate clipboard tool.
func New() port.Clipboard {
	a := &Adapter{}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if path, err := exec.LookPath("wl-copy"); err == nil {
			a.copyCmd = path
		}
	}

	if a.copyCmd == "" && os.Getenv("DISPLAY") != "" {
		if path, err := exec.LookPath("xclip"); err == nil {
			a.copyCmd = path
		} else if path, err := exec.LookPath("xsel"); err == nil {
			a.copyCmd = path
		}
	}

	return a
}

type disabled struct{}

func (disabled) WriteText(context.Context, string) error { return nil }

// Disabled returns a clipboard that silently drops every write, for hosts
// with copy-on-select turned off.
func Disabled() port.Clipboard { return disabled{} }

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	if a.copyCmd == "" {
		err := fmt.Errorf("no clipboard tool available (install wl-clipboard or xclip)")
		log.Error().Err(err).Msg("clipboard write failed")
		return err
	}

	var cmd *exec.Cmd
	switch {
	case strings.Contains(a.copyCmd, "wl-copy"):
		cmd = exec.CommandContext(ctx, a.copyCmd)
	case strings.Contains(a.copyCmd, "xclip"):
		cmd = exec.CommandContext(ctx, a.copyCmd, "-selection", "clipboard")
	case strings.Contains(a.copyCmd, "xsel"):
		cmd = exec.CommandContext(ctx, a.copyCmd, "--clipboard", "--input")
	default:
		err := fmt.Errorf("unknown clipboard tool: %s", a.copyCmd)
		log.Error().Err(err).Msg("clipboard write failed")
		return err
	}

	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		log.Error().Err(err).Str("tool", a.copyCmd).Msg("clipboard write failed")
		return err
	}

	log.Debug().Str("tool", a.copyCmd).Int("len", len(text)).Msg("clipboard write success")
	return nil
}
