package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"practicehub/internal/catalog"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Write the indexed practices as CSV",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, _, err := loadIndex(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				return writeCSV(cmd.OutOrStdout(), idx)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := writeCSV(f, idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d practices to %s\n", len(idx.Practices), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output CSV path (- for stdout)")
	return cmd
}

func writeCSV(out io.Writer, idx *catalog.Index) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "slug", "name", "categories", "minutes", "level", "video", "featured", "thumb"}); err != nil {
		return err
	}
	for _, p := range idx.Practices {
		labels := make([]string, 0, len(p.CatKeys))
		for _, k := range p.CatKeys {
			labels = append(labels, idx.CatLabelByKey[k])
		}
		minutes := ""
		if p.Minutes != nil {
			minutes = strconv.Itoa(*p.Minutes)
		}
		if err := w.Write([]string{
			p.ID,
			p.Slug,
			p.Name,
			strings.Join(labels, "|"),
			minutes,
			string(p.Level),
			strconv.FormatBool(p.IsVideo),
			strconv.FormatBool(p.Featured),
			p.Thumb.URL,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type snapshotFile struct {
	Practices  []any `yaml:"practices"`
	Categories []any `yaml:"categories"`
}

// NewSnapshotCommand creates the snapshot command. It refreshes the local
// fallback file from the CMS.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Save the fetched CMS records as a fallback snapshot file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, snap, err := loadIndex(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(snapshotFile{Practices: snap.Practices, Categories: snap.Categories})
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d practices and %d categories from %s to %s\n",
				len(idx.Practices), len(snap.Categories), snap.Source, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "data/practices.yaml", "snapshot file to write")
	return cmd
}
