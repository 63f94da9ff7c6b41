package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/mapinfo/internal/layout"
	"github.com/Faultbox/mapinfo/internal/report"
	"github.com/Faultbox/mapinfo/pkg/document"
	"github.com/Faultbox/mapinfo/pkg/presets"
	"github.com/Faultbox/mapinfo/pkg/scenes"
)

func (a *app) layout() (*layout.Layout, error) {
	l, err := layout.Resolve(a.cfg.Data.ExtractDir, a.cfg.Data.Bundle)
	if err != nil {
		return nil, err
	}
	a.log.Debug("using bundle", zap.String("dir", l.Bundle))
	return l, nil
}

// loadTable reads the manifest, which depends only on the extraction root.
func (a *app) loadTable() (*scenes.Table, error) {
	table, err := scenes.LoadTable(layout.Manifest(a.cfg.Data.ExtractDir), a.cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("loading build settings: %w", err)
	}
	a.log.Info("build settings loaded", zap.Int("scenes", table.Len()))
	return table, nil
}

func (a *app) loadCache(l *layout.Layout) (*presets.Cache, error) {
	cache, err := presets.LoadCache(l.MonoBehaviour, presets.CacheOptions{
		Schema: a.cfg.Preset,
		Ext:    a.cfg.Data.PresetExt,
		Logger: a.log,
	})
	if err != nil {
		return nil, err
	}
	a.log.Info("preset cache loaded", zap.Int("presets", cache.Len()))
	return cache, nil
}

func (a *app) newReportCmd() *cobra.Command {
	var compare string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the levels used by every named preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable()
			if err != nil {
				return err
			}
			l, err := a.layout()
			if err != nil {
				return err
			}
			cache, err := a.loadCache(l)
			if err != nil {
				return err
			}

			w := &report.Walker{
				Resolver: presets.NewResolver(cache, a.log),
				Table:    table,
				Schema:   a.cfg.Preset,
				Ext:      a.cfg.Data.PresetExt,
				Logger:   a.log,
			}
			entries, err := w.Walk(l.Presets)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := report.Write(&buf, entries, a.cfg.Report.Format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if compare == "" {
				_, err = out.Write(buf.Bytes())
				return err
			}

			previous, err := os.ReadFile(compare)
			if err != nil {
				return fmt.Errorf("reading previous report: %w", err)
			}
			diff, err := report.Diff(compare, "current", string(previous), buf.String())
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(out, "No changes")
				return nil
			}
			_, err = fmt.Fprint(out, diff)
			return err
		},
	}
	cmd.Flags().StringVar(&compare, "compare", "", "Print a diff against a previously saved report")
	return cmd
}

func (a *app) newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "Print the scene build-index table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range table.Entries() {
				fmt.Fprintf(out, "level%-5d %s\n", e.Index, e.Path)
			}
			return nil
		},
	}
}

func (a *app) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets available to child references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.layout()
			if err != nil {
				return err
			}
			cache, err := a.loadCache(l)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, guid := range cache.GUIDs() {
				p, _ := cache.Get(guid)
				name := p.ServerName
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(out, "%-32s  %-24s  scenes=%-3d children=%-3d %s\n",
					guid, name, len(p.Scenes), len(p.Children), filepath.Base(p.Source))
			}
			return nil
		},
	}
}

func (a *app) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <guid>",
		Short: "Resolve a single cached preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable()
			if err != nil {
				return err
			}
			l, err := a.layout()
			if err != nil {
				return err
			}
			cache, err := a.loadCache(l)
			if err != nil {
				return err
			}

			guid := args[0]
			resolved, ok := presets.NewResolver(cache, a.log).ResolveGUID(guid)
			if !ok {
				return fmt.Errorf("preset %s not found in %s", guid, l.MonoBehaviour)
			}

			p, _ := cache.Get(guid)
			name := p.ServerName
			if name == "" {
				name = guid
			}
			entry := report.Entry{
				Name:     name,
				Source:   p.Source,
				GUID:     guid,
				Scenes:   resolved,
				Grouping: report.Group(resolved, table),
			}
			return report.Write(cmd.OutOrStdout(), []report.Entry{entry}, a.cfg.Report.Format)
		},
	}
}

func (a *app) newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <file> <jsonpath>",
		Short: "Print JSONPath matches from an exported asset as JSON",
		Example: `  mapinfo query Factory.asset '$.MonoBehaviour._scenesResourceKeys[*].path'
  mapinfo query Factory.asset.meta '$.guid'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			matches, err := document.Select(doc, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintln(out, oj.JSON(m.Interface(), &ojg.Options{Indent: 2, Sort: true}))
			}
			if len(matches) == 0 {
				a.log.Warn("no matches", zap.String("file", args[0]), zap.String("path", args[1]))
			}
			return nil
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if len(args) == 1 {
				path = args[0]
				err = a.cfg.SaveTo(path)
			} else {
				path, err = a.cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
