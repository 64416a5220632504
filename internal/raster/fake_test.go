package raster

import (
	"errors"
	"os"
)

// fakeRunner stands in for the external converters. Tools without a
// handler behave as if missing from PATH.
type fakeRunner struct {
	handlers map[string]func(args []string) error
	calls    []string
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	h, ok := f.handlers[name]
	if !ok {
		return nil, ErrToolNotFound
	}
	if err := h(args); err != nil {
		return []byte("boom"), err
	}
	return nil, nil
}

var errExit = errors.New("exit status 1")

func fail(args []string) error { return errExit }

// writeArg writes a dummy bitmap to args[i].
func writeArg(i int) func(args []string) error {
	return func(args []string) error {
		return os.WriteFile(args[i], []byte("png"), 0644)
	}
}

// lastArg writes a dummy bitmap to the final argument.
func lastArg(args []string) error {
	return os.WriteFile(args[len(args)-1], []byte("png"), 0644)
}
