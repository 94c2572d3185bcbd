package platform

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Runner starts an external program.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener hands URLs to the desktop's default handler.
type Opener struct {
	GOOS string
	Run  Runner
	Log  *zap.Logger
}

func NewOpener(log *zap.Logger) *Opener {
	return &Opener{GOOS: runtime.GOOS, Run: startDetached, Log: log}
}

// Mail opens the mail composer for address. The address is passed through
// unchecked.
func (o *Opener) Mail(address string) error {
	return o.open("mailto:" + address)
}

// OpenLink opens url in the default browser.
func (o *Opener) OpenLink(url string) error {
	return o.open(url)
}

func (o *Opener) open(target string) error {
	name, args := o.command(target)
	if o.Log != nil {
		o.Log.Info("opening with platform handler", zap.String("target", target), zap.String("command", name))
	}
	if err := o.Run(context.Background(), name, args...); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	return nil
}

func (o *Opener) command(target string) (string, []string) {
	switch strings.ToLower(o.GOOS) {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func startDetached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
