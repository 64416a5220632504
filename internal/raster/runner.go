// Package raster converts SVG descriptors into PNG bitmaps by trying a
// fixed sequence of converters until one succeeds.
package raster

import (
	"errors"
	"fmt"
	"os/exec"
)

var (
	// ErrToolNotFound is returned when a converter binary is not on PATH.
	ErrToolNotFound = errors.New("tool not found on PATH")
	// ErrNoOutput is returned when a converter exited cleanly but did not
	// produce the expected file.
	ErrNoOutput = errors.New("no output produced")
	// ErrAllFailed is returned by Chain.Render when every converter failed.
	ErrAllFailed = errors.New("all rasterizers failed")
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. Each call blocks until the
// process exits.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrToolNotFound, err)
	}
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w\n%s", name, err, out)
	}
	return out, nil
}
