// Package presets decodes map server presets, caches them by guid and
// flattens preset reference graphs into scene lists.
package presets

import (
	"errors"
	"fmt"

	"github.com/Faultbox/mapinfo/pkg/document"
)

// ErrMalformedPreset is returned when a document does not have preset shape.
var ErrMalformedPreset = errors.New("malformed preset")

// Schema names the document fields a preset is read from.
type Schema struct {
	Root       string `yaml:"root"`        // "MonoBehaviour"
	ServerName string `yaml:"server_name"` // "ServerName"
	SceneKeys  string `yaml:"scene_keys"`  // "_scenesResourceKeys"
	ScenePath  string `yaml:"scene_path"`  // "path"
	Children   string `yaml:"children"`    // "ChildPresets"
	GUID       string `yaml:"guid"`        // "guid", in child references and .meta files
}

// DefaultSchema returns the field names of the exported preset MonoBehaviour.
func DefaultSchema() Schema {
	return Schema{
		Root:       "MonoBehaviour",
		ServerName: "ServerName",
		SceneKeys:  "_scenesResourceKeys",
		ScenePath:  "path",
		Children:   "ChildPresets",
		GUID:       "guid",
	}
}

// Preset is the part of a preset document the resolver needs.
type Preset struct {
	GUID       string   // from the .meta sidecar, empty when unknown
	Source     string   // file the preset was loaded from
	ServerName string   // empty for presets that only exist to be composed
	Scenes     []string // direct scene paths, in document order
	Children   []string // child preset guids, in document order
}

// Decode reads a preset out of a generic document. Missing scene or child
// lists are treated as empty; child references without a guid (Unity's
// null reference, {fileID: 0}) are skipped.
func Decode(doc document.Value, schema Schema) (*Preset, error) {
	root, err := doc.Get(schema.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPreset, err)
	}

	p := &Preset{}
	if v, err := root.Get(schema.ServerName); err == nil {
		if p.ServerName, err = v.AsString(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPreset, schema.ServerName, err)
		}
	}

	scenes, err := optionalItems(root, schema.SceneKeys)
	if err != nil {
		return nil, err
	}
	for i, item := range scenes {
		pv, err := item.Get(schema.ScenePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrMalformedPreset, schema.SceneKeys, i, err)
		}
		path, err := pv.AsString()
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrMalformedPreset, schema.SceneKeys, i, err)
		}
		p.Scenes = append(p.Scenes, path)
	}

	refs, err := optionalItems(root, schema.Children)
	if err != nil {
		return nil, err
	}
	for i, ref := range refs {
		if ref.Kind() != document.Map {
			return nil, fmt.Errorf("%w: %s[%d]: expected map, got %s", ErrMalformedPreset, schema.Children, i, ref.Kind())
		}
		gv, err := ref.Get(schema.GUID)
		if err != nil {
			continue
		}
		guid, err := gv.AsString()
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrMalformedPreset, schema.Children, i, err)
		}
		if guid != "" {
			p.Children = append(p.Children, guid)
		}
	}

	return p, nil
}

func optionalItems(root document.Value, key string) ([]document.Value, error) {
	v, err := root.Get(key)
	if errors.Is(err, document.ErrMissingField) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPreset, err)
	}
	items, err := v.Items()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPreset, key, err)
	}
	return items, nil
}

// ReadGUID returns the guid recorded in a .meta sidecar document.
func ReadGUID(meta document.Value, schema Schema) (string, error) {
	v, err := meta.Get(schema.GUID)
	if err != nil {
		return "", err
	}
	guid, err := v.AsString()
	if err != nil {
		return "", err
	}
	if guid == "" {
		return "", fmt.Errorf("%s: empty", schema.GUID)
	}
	return guid, nil
}

// Load reads a preset file and, when present, its .meta sidecar. A missing
// or unreadable sidecar leaves GUID empty; requireGUID turns that into an error.
func Load(path string, schema Schema, requireGUID bool) (*Preset, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := Decode(doc, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Source = path

	meta, err := document.Load(path + document.MetaSuffix)
	if err == nil {
		p.GUID, err = ReadGUID(meta, schema)
		if err != nil {
			err = fmt.Errorf("%s%s: %w", path, document.MetaSuffix, err)
		}
	}
	if err != nil && requireGUID {
		return nil, err
	}
	return p, nil
}
