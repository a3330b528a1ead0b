package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis/store/sqlite"
)

const reportDBNote = "The report database is an output artifact for external consumers. " +
	"lexis never reads a corpus back from it: every analysis rebuilds the corpus " +
	"from the text files in DIR."

// dbPath prefers the flag and falls back to export.path from the config.
func (c *commandContext) dbPath(flag string) (string, error) {
	if path := strings.TrimSpace(flag); path != "" {
		return path, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Export.Path == "" {
		return "", errors.New("--db is required when export.path is not configured")
	}
	return cfg.Export.Path, nil
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		db    string
		terms []string
	)
	cmd := &cobra.Command{
		Use:   "export DIR",
		Short: "Write the report of a corpus to a SQLite database",
		Long: "Write the report of a corpus to a SQLite database.\n\n" +
			reportDBNote,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.dbPath(db)
			if err != nil {
				return err
			}
			st, err := sqlite.OpenSQLite(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			engine, err := ctx.newEngine(cmd.ErrOrStderr(), st)
			if err != nil {
				st.Close()
				return err
			}
			defer engine.Close()

			c, err := engine.Build(args[0])
			if err != nil {
				return fmt.Errorf("build corpus: %w", err)
			}
			id, err := engine.Export(cmd.Context(), c, terms)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, map[string]string{"id": id, "corpus": c.Name(), "db": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s as run %s to %s\n", c.Name(), id, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path")
	cmd.Flags().StringSliceVar(&terms, "terms", nil, "Terms to include in the TF-IDF table")
	return cmd
}

type runJSON struct {
	ID        string    `json:"id"`
	Corpus    string    `json:"corpus"`
	CreatedAt time.Time `json:"created_at"`
	Documents int       `json:"documents"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var (
		db         string
		corpusName string
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List exported report runs",
		Long: "List exported report runs.\n\n" +
			reportDBNote,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.dbPath(db)
			if err != nil {
				return err
			}
			st, err := sqlite.OpenSQLite(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), corpusName)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				out := make([]runJSON, 0, len(runs))
				for _, r := range runs {
					out = append(out, runJSON{ID: r.ID, Corpus: r.Corpus, CreatedAt: r.CreatedAt, Documents: r.Documents})
				}
				return writeJSON(cmd, out)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.ID,
					r.Corpus,
					r.CreatedAt.Local().Format(time.DateTime),
					strconv.Itoa(r.Documents),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Corpus", "Created", "Documents"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&corpusName, "corpus", "", "Only list runs of this corpus")
	return cmd
}
