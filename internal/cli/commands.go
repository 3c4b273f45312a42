package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"practicehub/internal/auth"
	"practicehub/internal/catalog"
	"practicehub/internal/locale"
	"practicehub/pkg/utils"
)

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "index",
		Short:        "Build the index and print it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, snap, err := loadIndex(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, idx)
			}
			fmt.Fprintf(out, "source: %s, %d practices, %d categories\n\n", snap.Source, len(idx.Practices), len(idx.Cats))
			if err := writeCategories(out, idx); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := writePractices(out, idx.Practices); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return writeEditorial(out, idx)
		},
	}
}

// FilterOptions holds flags of the filter command.
type FilterOptions struct {
	Query    string
	Category string
	Preset   string
	Limit    int
	Lang     string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:          "filter",
		Short:        "Apply a search query, category and preset",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, ok := catalog.ParsePreset(opts.Preset)
			if !ok {
				return fmt.Errorf("unknown preset %q: must be one of %v", opts.Preset, catalog.Presets)
			}
			idx, _, err := loadIndex(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			state := catalog.FilterState{Query: opts.Query, Category: opts.Category, Preset: preset}
			res := catalog.View(idx, state, opts.Limit)

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, res)
			}
			if res.Empty {
				fmt.Fprintln(out, locale.T(opts.Lang, "empty"))
				return nil
			}
			fmt.Fprintf(out, "%d of %d practices\n", len(res.Items), res.Total)
			return writePractices(out, res.Items)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "category key")
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "preset (short|easy|mid|hard|video)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show at most n items (0 = all)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "hu", "message language")

	return cmd
}

type statsOutput struct {
	Source      string              `json:"source"`
	Practices   int                 `json:"practices"`
	CatCounts   map[string]int      `json:"catCounts"`
	PresetStats catalog.PresetStats `json:"presetStats"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stats",
		Short:        "Print category and preset counts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, snap, err := loadIndex(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, statsOutput{
					Source:      snap.Source,
					Practices:   len(idx.Practices),
					CatCounts:   idx.CatCounts,
					PresetStats: idx.PresetStats,
				})
			}
			if err := writeCategories(out, idx); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return writePresetStats(out, idx.PresetStats)
		},
	}
}

// TokenOptions holds flags of the token command.
type TokenOptions struct {
	Secret  string
	Issuer  string
	Subject string
	TTL     time.Duration
}

// NewTokenCommand creates the token command. It signs the bearer token the
// CMS webhook uses to call POST /cms/revalidate.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	defaults := utils.LoadAuthConfig()
	opts := &TokenOptions{}

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Sign a revalidate token for the CMS webhook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Secret == "" {
				return fmt.Errorf("--secret must not be empty")
			}
			ts := auth.TokenService{
				Secret:   []byte(opts.Secret),
				Issuer:   opts.Issuer,
				Duration: opts.TTL,
			}
			token, exp, err := ts.Sign(opts.Subject, auth.ScopeRevalidate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, map[string]any{
					"token":      token,
					"expires_at": exp.UTC().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Secret, "secret", defaults.JWTSecret, "HMAC secret (PRACTICEHUB_JWT_SECRET)")
	cmd.Flags().StringVar(&opts.Issuer, "issuer", defaults.JWTIssuer, "token issuer")
	cmd.Flags().StringVar(&opts.Subject, "subject", "cms-webhook", "token subject")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", defaults.JWTDuration, "token lifetime")

	return cmd
}

func writeEditorial(w io.Writer, idx *catalog.Index) error {
	ed := idx.Editorial
	line := func(name string, s *catalog.Slot) {
		if p, ok := idx.Resolve(s); ok {
			fmt.Fprintf(w, "%-10s %s\n", name, p.Slug)
		}
	}
	line("hero", ed.Hero)
	line("wide", ed.Wide)
	line("dailyPick", ed.DailyPick)
	for i := range ed.Tiles {
		line("tile", &ed.Tiles[i])
	}
	fmt.Fprintf(w, "%-10s %d more\n", "rest", len(ed.Rest))
	return nil
}
