package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Write renders entries in the given format.
func Write(w io.Writer, entries []Entry, format string) error {
	switch format {
	case "", FormatText:
		return WriteText(w, entries)
	case FormatYAML:
		return WriteYAML(w, entries)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText prints one block per preset: a header line, the unmapped scene
// paths, then one "levelN  (path)" line per build index.
func WriteText(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s consists of the following assets:\n", e.Name)
		for _, p := range e.Unmapped {
			fmt.Fprintf(bw, "    %s\n", p)
		}
		for _, l := range e.Levels {
			fmt.Fprintf(bw, "    level%d  (%s)\n", l.Index, l.Path)
		}
	}
	return bw.Flush()
}

type yamlEntry struct {
	ServerName string   `yaml:"server_name"`
	Source     string   `yaml:"source"`
	GUID       string   `yaml:"guid,omitempty"`
	Unmapped   []string `yaml:"unmapped,omitempty"`
	Levels     []Level  `yaml:"levels,omitempty"`
}

// WriteYAML prints entries as a YAML list.
func WriteYAML(w io.Writer, entries []Entry) error {
	out := make([]yamlEntry, len(entries))
	for i, e := range entries {
		out[i] = yamlEntry{
			ServerName: e.Name,
			Source:     e.Source,
			GUID:       e.GUID,
			Unmapped:   e.Unmapped,
			Levels:     e.Levels,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

// Diff returns a unified diff between two rendered reports, or "" when they
// are identical.
func Diff(fromName, toName, from, to string) (string, error) {
	u := difflib.UnifiedDiff{
		A:        splitLines(from),
		B:        splitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(u)
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
