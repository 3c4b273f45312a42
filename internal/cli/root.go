// Package cli implements the catalog command line tool: it builds the
// practice index from a snapshot file (or the CMS) and prints what the
// catalog page would show.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"practicehub/internal/catalog"
	"practicehub/internal/cms"
	"practicehub/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File      string
	CMSURL    string
	CMSToken  string
	Collation string
	Format    string // "json" | "text"
	Verbose   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the catalog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Inspect the practice catalog",
		Long:          "Build the practice index from a CMS snapshot and preview filters and the editorial layout.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := language.Parse(opts.Collation); err != nil {
				return fmt.Errorf("invalid collation %q: %w", opts.Collation, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "data/practices.yaml", "snapshot file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.CMSURL, "cms-url", "", "Strapi base URL; tried before --file when set")
	cmd.PersistentFlags().StringVar(&opts.CMSToken, "cms-token", "", "Strapi API token")
	cmd.PersistentFlags().StringVar(&opts.Collation, "collation", "hu", "category sort language")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSnapshotCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadIndex fetches a snapshot and builds the index from it.
func loadIndex(ctx context.Context, opts *RootOptions) (*catalog.Index, cms.Snapshot, error) {
	log := logger.Nop()
	if opts.Verbose {
		if l, err := logger.New("dev"); err == nil {
			log = l
		}
	}

	var sources []cms.Source
	if strings.TrimSpace(opts.CMSURL) != "" {
		sources = append(sources, cms.NewClient(opts.CMSURL, opts.CMSToken, "", log))
	}
	sources = append(sources, cms.NewFileSource(opts.File))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	snap, err := cms.NewFallbackSource(log, sources...).Fetch(ctx)
	if err != nil {
		return nil, cms.Snapshot{}, err
	}

	copts := catalog.DefaultOptions()
	if tag, err := language.Parse(opts.Collation); err == nil {
		copts.Collation = tag
	}
	return catalog.BuildIndex(snap.Practices, snap.Categories, copts), snap, nil
}
