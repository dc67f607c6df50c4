package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/rankcore/internal/segtext"
	"github.com/Aman-CERP/rankcore/pkg/ranking/bm25"
	"github.com/Aman-CERP/rankcore/pkg/ranking/computer"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

func newScoreCmd() *cobra.Command {
	var title, query string
	var hostCentrality, pageRank float64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a toy single-document title field against a query and print the signal breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			coefficients, err := signal.ParseCoefficients(rootConfig.Signals.Coefficients)
			if err != nil {
				return fmt.Errorf("signals.coefficients: %w", err)
			}

			q := &computer.Query{SimpleTerms: strings.Fields(query), SignalCoefficients: coefficients}
			comp := computer.New(q, nil, computer.WithCacheSizes(rootConfig.Cache.FreshnessSize, rootConfig.Cache.FetchTimeSize))

			if rootConfig.LinearModel.Path != "" {
				model, err := computer.LoadLinearModel(rootConfig.LinearModel.Path)
				if err != nil {
					return fmt.Errorf("load linear model: %w", err)
				}
				comp.SetLinearModel(model)
			}

			searcher := newToySearcher(signal.FieldTitle, title)
			fastFields := &toyFastFields{hostCentrality: hostCentrality, pageRank: pageRank}
			params := bm25.Params{K1: rootConfig.BM25.K1, B: rootConfig.BM25.B}
			if err := comp.RegisterSegment(searcher, segtext.DefaultTokenizers(), params, toyCompileCtx{}, fastFields); err != nil {
				return fmt.Errorf("register segment: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SIGNAL\tCOEFFICIENT\tVALUE\tCONTRIBUTION")
			var total float64
			for cs := range comp.ComputeSignals(0) {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", cs.Signal, cs.Score.Coefficient, cs.Score.Value, cs.Score.Contribution())
				total += cs.Score.Contribution()
			}
			fmt.Fprintf(w, "TOTAL\t\t\t%.4f\n", total)
			if err := w.Flush(); err != nil {
				return err
			}

			boost := comp.Boosts(0)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "boosts(0) = %.4f\n", *boost)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "the quick brown fox", "toy document title text")
	cmd.Flags().StringVar(&query, "query", "quick fox", "query terms to score against the title")
	cmd.Flags().Float64Var(&hostCentrality, "host-centrality", 0, "host_centrality fast-field value")
	cmd.Flags().Float64Var(&pageRank, "page-rank", 0, "page_rank fast-field value")

	return cmd
}
