// Package report walks a presets tree, resolves each preset and groups
// the resulting scenes by build index.
package report

import (
	"sort"

	"github.com/Faultbox/mapinfo/pkg/scenes"
)

// Level is a scene that has a build index.
type Level struct {
	Index int    `yaml:"index"`
	Path  string `yaml:"path"`
}

// Grouping splits a resolved scene list into scenes without a build index,
// in resolution order, and levels sorted by index.
type Grouping struct {
	Unmapped []string
	Levels   []Level
}

// Group looks every path up in table. Unknown paths are kept verbatim,
// duplicates included. For each build index only the first path seen is kept.
func Group(paths []string, table *scenes.Table) Grouping {
	var g Grouping
	byIndex := make(map[int]string)
	for _, p := range paths {
		idx, ok := table.Index(p)
		if !ok {
			g.Unmapped = append(g.Unmapped, p)
			continue
		}
		if _, seen := byIndex[idx]; !seen {
			byIndex[idx] = p
		}
	}

	g.Levels = make([]Level, 0, len(byIndex))
	for idx, p := range byIndex {
		g.Levels = append(g.Levels, Level{Index: idx, Path: p})
	}
	sort.Slice(g.Levels, func(i, j int) bool { return g.Levels[i].Index < g.Levels[j].Index })
	return g
}

// Entry is the report for one named preset.
type Entry struct {
	Name   string
	Source string
	GUID   string
	Scenes []string
	Grouping
}
