package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/mapinfo/pkg/presets"
	"github.com/Faultbox/mapinfo/pkg/scenes"
)

// Walker resolves every preset under a directory tree.
type Walker struct {
	Resolver *presets.Resolver
	Table    *scenes.Table
	Schema   presets.Schema
	Ext      string      // preset file extension, defaults to presets.AssetExt
	Logger   *zap.Logger // defaults to a no-op logger
}

// Walk visits root recursively, files of a directory before its
// subdirectories, each in name order. Presets that fail to load are logged
// and skipped. Presets without a server name are resolved but not returned.
func (w *Walker) Walk(root string) ([]Entry, error) {
	run := *w
	if run.Logger == nil {
		run.Logger = zap.NewNop()
	}
	if run.Ext == "" {
		run.Ext = presets.AssetExt
	}

	items, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading presets root: %w", err)
	}

	var entries []Entry
	run.walkDir(root, items, &entries)
	return entries, nil
}

func (w *Walker) walkDir(dir string, items []os.DirEntry, entries *[]Entry) {
	var subdirs []string
	for _, it := range items {
		path := filepath.Join(dir, it.Name())
		if it.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}
		if !strings.HasSuffix(it.Name(), w.Ext) {
			continue
		}
		if e, ok := w.visit(path); ok {
			*entries = append(*entries, e)
		}
	}

	for _, sub := range subdirs {
		subItems, err := os.ReadDir(sub)
		if err != nil {
			w.Logger.Warn("skipping preset directory", zap.String("dir", sub), zap.Error(err))
			continue
		}
		w.walkDir(sub, subItems, entries)
	}
}

func (w *Walker) visit(path string) (Entry, bool) {
	p, err := presets.Load(path, w.Schema, false)
	if err != nil {
		w.Logger.Warn("skipping preset", zap.String("file", path), zap.Error(err))
		return Entry{}, false
	}

	resolved := w.Resolver.Resolve(p)
	w.Logger.Debug("resolved preset",
		zap.String("file", path),
		zap.String("server", p.ServerName),
		zap.Int("scenes", len(resolved)))

	if p.ServerName == "" {
		return Entry{}, false
	}
	return Entry{
		Name:     p.ServerName,
		Source:   path,
		GUID:     p.GUID,
		Scenes:   resolved,
		Grouping: Group(resolved, w.Table),
	}, true
}
