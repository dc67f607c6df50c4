package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/rankcore/internal/bangs"
)

func newBangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bangs",
		Short: "Exercise the bang redirector against a bang table",
	}
	cmd.AddCommand(newBangsLookupCmd())
	return cmd
}

func newBangsLookupCmd() *cobra.Command {
	var tablePath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "lookup <query...>",
		Short: "Look up a !tag in the bang table and print the redirect URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tablePath
			if path == "" {
				path = rootConfig.Bangs.Path
			}

			table, err := bangs.Load(path)
			if err != nil {
				return fmt.Errorf("load bang table: %w", err)
			}

			terms := naiveParse(strings.Join(args, " "))
			if err := printLookup(cmd.OutOrStdout(), table, terms); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			w := bangs.NewWatcher(path, table, slog.Default())
			return watchLookup(cmd.Context(), cmd.OutOrStdout(), w, terms)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "path to the bang table JSON (defaults to the configured bangs.path)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep watching the bang table for changes and re-run the lookup on each reload")
	return cmd
}

// printLookup runs one lookup against table and prints the result, shared by
// the initial lookup and every watch-triggered reload.
func printLookup(w io.Writer, table *bangs.Table, terms []bangs.Term) error {
	hit, err := table.Lookup(terms)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	if hit == nil {
		_, err := fmt.Fprintln(w, "no bang matched")
		return err
	}
	_, err = fmt.Fprintln(w, hit.RedirectTo.String())
	return err
}

// watchLookup re-runs printLookup against watcher's table every time the
// backing file reloads, until interrupted.
func watchLookup(ctx context.Context, w io.Writer, watcher *bangs.Watcher, terms []bangs.Term) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(ctx) }()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	current := watcher.Table()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("watch bang table: %w", err)
			}
			return nil
		case <-ticker.C:
			if t := watcher.Table(); t != current {
				current = t
				if err := printLookup(w, current, terms); err != nil {
					return err
				}
			}
		}
	}
}

// naiveParse is a whitespace splitter standing in for the query parser this
// core consumes terms from (out of scope for this core) — enough to
// exercise Table.Lookup from the command line.
func naiveParse(query string) []bangs.Term {
	fields := strings.Fields(query)
	terms := make([]bangs.Term, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, string(bangs.Prefix)) {
			terms = append(terms, bangs.PossibleBang(strings.TrimPrefix(f, string(bangs.Prefix))))
			continue
		}
		terms = append(terms, bangs.Word(f))
	}
	return terms
}
