package build

import (
	"time"

	"github.com/Mavwarf/mkicon/internal/eventlog"
	"github.com/Mavwarf/mkicon/internal/iconset"
)

// Result is the outcome of one iconset entry.
type Result struct {
	Entry iconset.Entry
	Path  string
	Tool  string // rasterizer that produced Path
	Err   error
}

// ContainerResult is the outcome of one assembler.
type ContainerResult struct {
	Name string
	Path string
	Err  error
}

// Summary describes a finished build, including partial failures.
type Summary struct {
	Time       time.Time
	OutDir     string
	Results    []Result
	Standalone string // path of the standalone copy, "" if skipped
	Containers []ContainerResult
}

// Succeeded returns the number of entries rendered.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the entries that produced no bitmap.
func (s Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// OK reports whether every entry rendered and every container assembled.
func (s Summary) OK() bool {
	if len(s.Failed()) > 0 {
		return false
	}
	for _, c := range s.Containers {
		if c.Err != nil {
			return false
		}
	}
	return true
}

// Run converts the summary into a history record.
func (s Summary) Run() eventlog.Run {
	r := eventlog.Run{
		Time:       s.Time,
		OutDir:     s.OutDir,
		Standalone: s.Standalone != "",
	}
	for _, res := range s.Results {
		d := eventlog.Detail{Name: res.Entry.FileName(), Tool: res.Tool}
		if res.Err != nil {
			d.Err = res.Err.Error()
		}
		r.Entries = append(r.Entries, d)
	}
	for _, c := range s.Containers {
		d := eventlog.Detail{Name: c.Name}
		if c.Err != nil {
			d.Err = c.Err.Error()
		}
		r.Containers = append(r.Containers, d)
	}
	return r
}
