package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const unityHeader = "%YAML 1.1\n%TAG !u! tag:unity3d.com,2011:\n--- !u!114 &11400000\n"

// writePreset writes a preset asset and, when guid is non-empty, its .meta.
func writePreset(t *testing.T, dir, name, server string, scenes []string, children []string, guid string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(unityHeader)
	b.WriteString("MonoBehaviour:\n")
	fmt.Fprintf(&b, "  m_Name: %s\n", strings.TrimSuffix(name, AssetExt))
	fmt.Fprintf(&b, "  ServerName: %s\n", server)
	b.WriteString("  _scenesResourceKeys:")
	if len(scenes) == 0 {
		b.WriteString(" []")
	}
	b.WriteString("\n")
	for _, s := range scenes {
		fmt.Fprintf(&b, "  - path: %s\n    rcid: \n", s)
	}
	b.WriteString("  ChildPresets:")
	if len(children) == 0 {
		b.WriteString(" []")
	}
	b.WriteString("\n")
	for _, c := range children {
		fmt.Fprintf(&b, "  - {fileID: 11400000, guid: %s, type: 2}\n", c)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	if guid != "" {
		meta := fmt.Sprintf("fileFormatVersion: 2\nguid: %s\nNativeFormatImporter:\n  mainObjectFileID: 11400000\n", guid)
		require.NoError(t, os.WriteFile(path+".meta", []byte(meta), 0644))
	}
	return path
}

func TestLoadCache(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Factory.asset", "factory4_day", []string{"f1", "f2"}, []string{"c0ffee"}, "f00d")
	writePreset(t, dir, "FactoryCommon.asset", "", []string{"fc"}, nil, "c0ffee")
	writePreset(t, dir, "NoMeta.asset", "", []string{"x"}, nil, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.asset"), []byte(unityHeader+"MonoBehaviour: [\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.asset.meta"), []byte("guid: bad\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a preset"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Nested.asset"), 0755))
	writePreset(t, filepath.Join(dir, "Nested.asset"), "Deep.asset", "deep", nil, nil, "deep")

	core, logs := observer.New(zapcore.WarnLevel)
	cache, err := LoadCache(dir, CacheOptions{Schema: DefaultSchema(), Logger: zap.New(core)})
	require.NoError(t, err)

	assert.Equal(t, []string{"c0ffee", "f00d"}, cache.GUIDs())

	p, ok := cache.Get("f00d")
	require.True(t, ok)
	assert.Equal(t, "factory4_day", p.ServerName)
	assert.Equal(t, []string{"f1", "f2"}, p.Scenes)
	assert.Equal(t, []string{"c0ffee"}, p.Children)
	assert.Equal(t, filepath.Join(dir, "Factory.asset"), p.Source)

	_, ok = cache.Get("deep")
	assert.False(t, ok, "subdirectories are not scanned")

	skipped := logs.FilterMessage("skipping preset").All()
	require.Len(t, skipped, 2)
	assert.Equal(t, filepath.Join(dir, "Broken.asset"), skipped[0].ContextMap()["file"])
	assert.Equal(t, filepath.Join(dir, "NoMeta.asset"), skipped[1].ContextMap()["file"])
}

func TestLoadCacheDuplicateGUID(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "A.asset", "first", nil, nil, "same")
	writePreset(t, dir, "B.asset", "second", nil, nil, "same")

	core, logs := observer.New(zapcore.WarnLevel)
	cache, err := LoadCache(dir, CacheOptions{Schema: DefaultSchema(), Logger: zap.New(core)})
	require.NoError(t, err)

	p, ok := cache.Get("same")
	require.True(t, ok)
	assert.Equal(t, "second", p.ServerName, "later file in name order wins")

	dups := logs.FilterMessage("duplicate preset guid, keeping later file").All()
	require.Len(t, dups, 1)
	assert.Equal(t, filepath.Join(dir, "A.asset"), dups[0].ContextMap()["dropped"])
}

func TestLoadCacheMissingDir(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "nope"), CacheOptions{Schema: DefaultSchema()})
	assert.Error(t, err)
}

func TestLoadCacheThenResolve(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "Top.asset", "top", []string{"t1"}, []string{"m1", "gone"}, "top")
	writePreset(t, dir, "Mid.asset", "", []string{"m"}, []string{"l1"}, "m1")
	writePreset(t, dir, "Leaf.asset", "", []string{"l"}, []string{"top"}, "l1")

	cache, err := LoadCache(dir, CacheOptions{Schema: DefaultSchema()})
	require.NoError(t, err)

	got, ok := NewResolver(cache, nil).ResolveGUID("top")
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "m", "l"}, got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePreset(t, dir, "Solo.asset", "solo", []string{"s"}, nil, "")

	p, err := Load(path, DefaultSchema(), false)
	require.NoError(t, err)
	assert.Empty(t, p.GUID)
	assert.Equal(t, "solo", p.ServerName)

	_, err = Load(path, DefaultSchema(), true)
	assert.Error(t, err)
}
