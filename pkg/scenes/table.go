// Package scenes builds the lookup from scene path to build index out of a
// project's EditorBuildSettings manifest.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/mapinfo/pkg/document"
)

// ErrMalformedManifest is returned when the manifest lacks the scene list.
var ErrMalformedManifest = errors.New("malformed build settings manifest")

// Schema names the manifest fields holding the scene list.
type Schema struct {
	Root      string `yaml:"root"`       // top-level object, "EditorBuildSettings"
	SceneList string `yaml:"scene_list"` // array of scene entries, "m_Scenes"
	Path      string `yaml:"path"`       // per-entry scene path, "path"
}

// DefaultSchema returns the field names Unity writes.
func DefaultSchema() Schema {
	return Schema{
		Root:      "EditorBuildSettings",
		SceneList: "m_Scenes",
		Path:      "path",
	}
}

// Table maps scene paths to build indices. It is read-only once built.
type Table struct {
	index map[string]int
}

// Index returns the build index of a scene path.
func (t *Table) Index(path string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[path]
	return i, ok
}

// Len returns the number of distinct scene paths.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Entry is one row of the table.
type Entry struct {
	Index int
	Path  string
}

// Entries returns the table rows ordered by build index.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.index))
	for p, i := range t.index {
		out = append(out, Entry{Index: i, Path: p})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// BuildTable reads the scene list of a manifest document. The build index
// of a scene is its position in the list; when a path is listed more than
// once the first position wins. Entries without a path keep their slot.
func BuildTable(doc document.Value, schema Schema) (*Table, error) {
	list, err := doc.Lookup(schema.Root, schema.SceneList)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	items, err := list.Items()
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrMalformedManifest, schema.Root, schema.SceneList, err)
	}

	t := &Table{index: make(map[string]int, len(items))}
	for i, item := range items {
		pv, err := item.Get(schema.Path)
		if err != nil {
			continue
		}
		path, err := pv.AsString()
		if err != nil || path == "" {
			continue
		}
		if _, seen := t.index[path]; !seen {
			t.index[path] = i
		}
	}
	return t, nil
}

// LoadTable loads the manifest at path and builds its table. Any error is
// fatal to a run: nothing can be reported without build indices.
func LoadTable(path string, schema Schema) (*Table, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	t, err := BuildTable(doc, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
