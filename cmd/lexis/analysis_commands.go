package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis"
	"github.com/cognicore/lexis/pkg/lexis/corpus"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "info DIR",
		Short: "Show document, distinct token and word counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(engine *lexis.Engine, c *corpus.Corpus) error {
				info := c.BasicInfo()
				if ctx.flags.json {
					if stats {
						return writeJSON(cmd, struct {
							corpus.Info
							Build buildStats `json:"build"`
						}{info, collectBuildStats(engine.Metrics())})
					}
					return writeJSON(cmd, info)
				}
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				if stats {
					fmt.Fprintln(cmd.OutOrStdout(), renderBuildStats(collectBuildStats(engine.Metrics())))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Also print corpus build statistics")
	return cmd
}

type termCountJSON struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

func newTopCommand(ctx *commandContext) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top DIR",
		Short: "List the most frequent tokens of a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(_ *lexis.Engine, c *corpus.Corpus) error {
				top := c.Frequencies().Top(n)
				if ctx.flags.json {
					out := make([]termCountJSON, 0, len(top))
					for _, e := range top {
						out = append(out, termCountJSON{Token: e.Token, Count: e.Count})
					}
					return writeJSON(cmd, out)
				}
				rows := make([][]string, 0, len(top))
				for i, e := range top {
					rows = append(rows, []string{strconv.Itoa(i + 1), e.Token, strconv.Itoa(e.Count)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Token", "Count"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 20, "Number of tokens to list")
	return cmd
}

type matrixJSON struct {
	Labels []string     `json:"labels"`
	Values [][]*float64 `json:"values"`
}

func newSimilarityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity DIR",
		Short: "Print the pairwise cosine similarity of documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(_ *lexis.Engine, c *corpus.Corpus) error {
				m, err := c.SimilarityMatrix()
				if err != nil {
					return err
				}
				if ctx.flags.json {
					out := matrixJSON{Labels: m.Labels, Values: make([][]*float64, m.Size())}
					for i := range m.Size() {
						out.Values[i] = make([]*float64, m.Size())
						for j := range m.Size() {
							out.Values[i][j] = jsonFloat(m.At(i, j))
						}
					}
					return writeJSON(cmd, out)
				}
				headers := append([]string{""}, m.Labels...)
				rows := make([][]string, 0, m.Size())
				for i, label := range m.Labels {
					row := []string{label}
					for j := range m.Size() {
						row = append(row, formatScore(m.At(i, j)))
					}
					rows = append(rows, row)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, rightAligned(m.Size())))
				return nil
			})
		},
	}
}

type tfidfJSON struct {
	Terms     []string     `json:"terms"`
	Documents []string     `json:"documents"`
	DF        []int        `json:"df"`
	IDF       []*float64   `json:"idf"`
	Values    [][]*float64 `json:"values"`
}

func newTFIDFCommand(ctx *commandContext) *cobra.Command {
	var (
		terms  []string
		sample int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "tfidf DIR",
		Short: "Compute TF-IDF of terms across the documents of a corpus",
		Long: "Compute TF-IDF of terms across the documents of a corpus.\n\n" +
			"Terms come from --terms or are drawn from the vocabulary with --sample.\n" +
			"A term found in no document scores N/A.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(terms) > 0 && sample > 0 {
				return errors.New("--terms and --sample are mutually exclusive")
			}
			if len(terms) == 0 && sample <= 0 {
				return errors.New("either --terms or --sample is required")
			}
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(_ *lexis.Engine, c *corpus.Corpus) error {
				selected := terms
				if sample > 0 {
					selected = c.SampleTokens(sample, seed)
				}
				t, err := c.TFIDF(selected)
				if err != nil {
					return err
				}
				if ctx.flags.json {
					out := tfidfJSON{
						Terms:     t.Terms,
						Documents: t.Documents,
						DF:        t.DF,
						IDF:       make([]*float64, len(t.Terms)),
						Values:    make([][]*float64, len(t.Terms)),
					}
					for i := range t.Terms {
						out.IDF[i] = jsonFloat(t.IDF[i])
						out.Values[i] = make([]*float64, len(t.Documents))
						for j := range t.Documents {
							out.Values[i][j] = jsonFloat(t.Values[i][j])
						}
					}
					return writeJSON(cmd, out)
				}
				headers := append([]string{"Term"}, t.Documents...)
				rows := make([][]string, 0, len(t.Terms))
				for i, term := range t.Terms {
					row := []string{term}
					for j := range t.Documents {
						row = append(row, formatScore(t.Values[i][j]))
					}
					rows = append(rows, row)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, rightAligned(len(t.Documents))))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&terms, "terms", nil, "Comma separated terms to score")
	cmd.Flags().IntVar(&sample, "sample", 0, "Score N terms sampled from the vocabulary")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for --sample")
	return cmd
}

func newSampleCommand(ctx *commandContext) *cobra.Command {
	var (
		n    int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "sample DIR",
		Short: "Draw a reproducible sample of distinct vocabulary tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(_ *lexis.Engine, c *corpus.Corpus) error {
				tokens := c.SampleTokens(n, seed)
				if ctx.flags.json {
					return writeJSON(cmd, tokens)
				}
				for _, tok := range tokens {
					fmt.Fprintln(cmd.OutOrStdout(), tok)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 10, "Sample size")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed")
	return cmd
}

type candidateJSON struct {
	Token     string   `json:"token"`
	DFPercent float64  `json:"df_percent"`
	IDF       *float64 `json:"idf"`
	Score     float64  `json:"score"`
}

func newStopwordsCommand(ctx *commandContext) *cobra.Command {
	thresholds := stoplist.DefaultThresholds()
	cmd := &cobra.Command{
		Use:   "stopwords DIR",
		Short: "Suggest corpus specific stopwords by document frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCorpus(cmd.ErrOrStderr(), args[0], func(engine *lexis.Engine, c *corpus.Corpus) error {
				cands, err := engine.SuggestStopwords(c, thresholds)
				if err != nil {
					return err
				}
				if ctx.flags.json {
					out := make([]candidateJSON, 0, len(cands))
					for _, cand := range cands {
						out = append(out, candidateJSON{
							Token:     cand.Token,
							DFPercent: cand.Reason.DFPercent,
							IDF:       jsonFloat(cand.Reason.IDF),
							Score:     cand.Score,
						})
					}
					return writeJSON(cmd, out)
				}
				if len(cands) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No stopword candidates")
					return nil
				}
				rows := make([][]string, 0, len(cands))
				for _, cand := range cands {
					rows = append(rows, []string{
						cand.Token,
						strconv.FormatFloat(cand.Reason.DFPercent, 'f', 1, 64),
						formatScore(cand.Reason.IDF),
						formatScore(cand.Score),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Token", "DF %", "IDF", "Score"}, rows, rightAligned(3),
				))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&thresholds.DFPercent, "df-percent", thresholds.DFPercent, "Minimum document frequency percentage")
	cmd.Flags().Int64Var(&thresholds.MinDocs, "min-docs", thresholds.MinDocs, "Minimum corpus size for suggestions")
	return cmd
}
