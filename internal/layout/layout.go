// Package layout locates the inputs inside an asset extraction directory.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoBundle is returned when the extraction root holds no bundle directory.
var ErrNoBundle = errors.New("no bundle directory found")

// Relative locations inside an extraction.
var (
	ManifestPath     = filepath.Join("globalgamemanagers", "ExportedProject", "ProjectSettings", "EditorBuildSettings.asset")
	MonoBehaviourDir = filepath.Join("ExportedProject", "Assets", "MonoBehaviour")
	PresetsDir       = filepath.Join("ExportedProject", "Assets", "Content", "Locations", "_Presets")
)

// bundleMarker identifies directories extracted from map bundles.
const bundleMarker = ".bundle"

// Layout holds the resolved input paths of one run.
type Layout struct {
	Root          string
	Manifest      string
	Bundle        string
	MonoBehaviour string
	Presets       string
}

// Manifest returns the location of the build settings manifest under root.
func Manifest(root string) string {
	return filepath.Join(root, ManifestPath)
}

// Resolve locates the manifest and the bundle directory under root. When
// bundle is empty the first subdirectory, in name order, whose name
// contains ".bundle" is used.
func Resolve(root, bundle string) (*Layout, error) {
	l := &Layout{
		Root:     root,
		Manifest: Manifest(root),
	}

	if bundle == "" {
		found, err := findBundle(root)
		if err != nil {
			return nil, err
		}
		bundle = found
	}

	l.Bundle = filepath.Join(root, bundle)
	info, err := os.Stat(l.Bundle)
	if err != nil {
		return nil, fmt.Errorf("bundle directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bundle %s is not a directory", l.Bundle)
	}

	l.MonoBehaviour = filepath.Join(l.Bundle, MonoBehaviourDir)
	l.Presets = filepath.Join(l.Bundle, PresetsDir)
	return l, nil
}

func findBundle(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("reading extraction root: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && strings.Contains(e.Name(), bundleMarker) {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoBundle, root)
}
