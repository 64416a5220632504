package eventlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Run is the record of one mkicon build.
type Run struct {
	Time       time.Time
	OutDir     string
	Standalone bool
	Entries    []Detail // one per iconset entry, in processing order
	Containers []Detail // one per assembler
}

// Detail is the outcome of a single entry or container.
type Detail struct {
	Name string
	Tool string // rasterizer used, entries only
	Err  string // empty on success
}

// OK reports whether the detail succeeded.
func (d Detail) OK() bool { return d.Err == "" }

// Succeeded returns the number of entries that produced a bitmap.
func (r Run) Succeeded() int {
	n := 0
	for _, d := range r.Entries {
		if d.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of entries without a bitmap.
func (r Run) Failed() int {
	return len(r.Entries) - r.Succeeded()
}

// formatRun renders r in the flat log format: a summary line, one
// indented line per entry and container, and a blank separator line.
func formatRun(r Run) string {
	ts := r.Time.Format(time.RFC3339)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  out=%q  ok=%d  failed=%d  standalone=%t\n",
		ts, r.OutDir, r.Succeeded(), r.Failed(), r.Standalone)
	for _, d := range r.Entries {
		fmt.Fprintf(&b, "%s    entry %s\n", ts, detailFields(d))
	}
	for _, d := range r.Containers {
		fmt.Fprintf(&b, "%s    container %s\n", ts, detailFields(d))
	}
	b.WriteString("\n")
	return b.String()
}

func detailFields(d Detail) string {
	s := fmt.Sprintf("name=%q", d.Name)
	if d.Tool != "" {
		s += "  tool=" + d.Tool
	}
	if d.Err != "" {
		s += fmt.Sprintf("  error=%q", d.Err)
	}
	return s
}

// ParseRuns splits log content on blank lines and parses each block into
// a Run. Malformed blocks are silently skipped.
func ParseRuns(content string) []Run {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}
	var runs []Run
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if r, ok := parseBlock(block); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

func parseBlock(block string) (Run, bool) {
	lines := strings.Split(block, "\n")
	head := tokenize(lines[0])
	if len(head) < 2 {
		return Run{}, false
	}
	ts, err := time.Parse(time.RFC3339, head[0])
	if err != nil {
		return Run{}, false
	}
	kv := keyValues(head[1:])
	if _, ok := kv["out"]; !ok {
		return Run{}, false
	}
	r := Run{Time: ts, OutDir: kv["out"], Standalone: kv["standalone"] == "true"}

	for _, line := range lines[1:] {
		tok := tokenize(line)
		if len(tok) < 3 {
			continue
		}
		f := keyValues(tok[2:])
		d := Detail{Name: f["name"], Tool: f["tool"], Err: f["error"]}
		switch tok[1] {
		case "entry":
			r.Entries = append(r.Entries, d)
		case "container":
			r.Containers = append(r.Containers, d)
		}
	}
	return r, true
}

// tokenize splits s on whitespace, keeping quoted values (key="a b")
// in one token.
func tokenize(s string) []string {
	var out []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out
		}
		end := strings.IndexAny(s, " \t\"")
		if end < 0 {
			return append(out, s)
		}
		if s[end] != '"' {
			out = append(out, s[:end])
			s = s[end:]
			continue
		}
		q, err := strconv.QuotedPrefix(s[end:])
		if err != nil {
			return append(out, s)
		}
		out = append(out, s[:end]+q)
		s = s[end+len(q):]
	}
}

// keyValues parses key=value tokens, unquoting quoted values.
func keyValues(tokens []string) map[string]string {
	m := make(map[string]string, len(tokens))
	for _, t := range tokens {
		k, v, ok := strings.Cut(t, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(v, `"`) {
			if u, err := strconv.Unquote(v); err == nil {
				v = u
			}
		}
		m[k] = v
	}
	return m
}
