package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Mavwarf/mkicon/internal/config"
	"github.com/Mavwarf/mkicon/internal/eventlog"
	"github.com/Mavwarf/mkicon/internal/paths"
)

func runHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mkicon history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 10, "number of runs to show (0 = all)")
	clearAll := fs.Bool("clear", false, "delete all recorded runs")
	cfg, err := config.Parse(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if cfg.History == eventlog.BackendOff {
		fmt.Fprintln(stderr, "Error: history is off (use -history file|sqlite or MKICON_HISTORY)")
		return exitError
	}

	store, err := eventlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer store.Close()

	if *clearAll {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "Cleared %s\n", store.Path())
		return exitOK
	}

	runs, err := store.Runs(*limit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	printRuns(stdout, runs)
	return exitOK
}

// printRuns writes one line per run followed by its failures.
func printRuns(w io.Writer, runs []eventlog.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %-20s %2d/%-2d sizes  %s\n",
			r.Time.Local().Format(time.DateTime), r.OutDir,
			r.Succeeded(), len(r.Entries), containerStatus(r.Containers))
		for _, d := range r.Entries {
			if !d.OK() {
				fmt.Fprintf(w, "    %s: %s\n", d.Name, firstLine(d.Err))
			}
		}
	}
}

func containerStatus(ds []eventlog.Detail) string {
	if len(ds) == 0 {
		return "-"
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		status := "ok"
		if !d.OK() {
			status = "failed"
		}
		parts[i] = d.Name + "=" + status
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
