package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/rankcore/internal/logging"
)

func newLogsCmd() *cobra.Command {
	var (
		logFile string
		lines   int
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show rankctl's own debug log (~/.rankcore/logs/rankctl.log by default)",
		Long: `logs prints the tail of the log file rankctl writes to when run with
--debug, then exits. Pass -f to keep following new lines as they're written,
the way 'tail -f' does, until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := logging.FindLogFile(logFile)
			if err != nil {
				return err
			}

			if err := printTail(cmd.OutOrStdout(), path, lines); err != nil {
				return err
			}
			if !follow {
				return nil
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return followFile(ctx, cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&logFile, "file", "", "path to the log file (defaults to the configured log path)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to print from the end of the file")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing new lines as they're written")

	return cmd
}

// printTail prints up to the last n lines of the file at path.
func printTail(w io.Writer, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var tail []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		tail = append(tail, scanner.Text())
		if len(tail) > n {
			tail = tail[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	_, err = fmt.Fprintln(w, strings.Join(tail, "\n"))
	return err
}

// followFile polls path for growth and writes appended bytes to w until ctx
// is cancelled, mirroring 'tail -f' for the single log file rankctl keeps.
func followFile(ctx context.Context, w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, f); err != nil {
				return fmt.Errorf("read log file: %w", err)
			}
		}
	}
}
