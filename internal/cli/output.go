package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"practicehub/internal/catalog"
	"practicehub/pkg/models"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePractices(w io.Writer, items []models.NormalizedPractice) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tNAME\tMIN\tLEVEL\tVIDEO\tCATEGORIES")
	for _, p := range items {
		minutes := "-"
		if p.Minutes != nil {
			minutes = fmt.Sprint(*p.Minutes)
		}
		video := ""
		if p.IsVideo {
			video = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Slug, p.Name, minutes, p.Level, video, strings.Join(p.CatKeys, ","))
	}
	return tw.Flush()
}

func writeCategories(w io.Writer, idx *catalog.Index) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tPRACTICES")
	for _, c := range idx.Cats {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Key(), c.Name, idx.CatCounts[c.Key()])
	}
	return tw.Flush()
}

func writePresetStats(w io.Writer, s catalog.PresetStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tPRACTICES")
	for _, p := range catalog.Presets {
		fmt.Fprintf(tw, "%s\t%d\n", p, s.Count(p))
	}
	return tw.Flush()
}
