package main

import (
	"strconv"
	"time"

	"github.com/handiism/maplebgm-data/internal/build"
	"github.com/handiism/maplebgm-data/internal/merge"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderSummary(s *build.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Build summary")
	tw.AppendRows([]table.Row{
		{"Run", s.RunID},
		{"Tracks", strconv.Itoa(s.Tracks)},
		{"Downloadable", strconv.Itoa(s.Downloadable)},
		{"Maps", strconv.Itoa(s.Maps)},
		{"Assigned maps", strconv.Itoa(s.AssignedMaps)},
		{"Orphaned maps", strconv.Itoa(len(s.Orphans))},
		{"Output", s.OutputPath},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}

func renderOrphans(orphans []merge.Orphan) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Maps playing tracks missing from the catalog")
	tw.AppendHeader(table.Row{"Map", "Track"})
	for _, o := range orphans {
		tw.AppendRow(table.Row{string(o.ID), string(o.Key)})
	}
	return tw.Render()
}
