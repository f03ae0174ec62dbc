package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"go.withmatt.com/triage/internal/session"
	"go.withmatt.com/triage/internal/triage"
)

const defaultListWidth = 100

var listFlags struct {
	days     int
	priority string
	show     string
	json     bool
	summary  bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the prioritized inbox without the TUI",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listFlags.days, "days", 0, "only show emails from the last N days (0 for today)")
	listCmd.Flags().StringVar(&listFlags.priority, "priority", "", "all, high, medium, low or spam")
	listCmd.Flags().StringVar(&listFlags.show, "show", "", "all, unread, read or starred")
	listCmd.Flags().BoolVar(&listFlags.json, "json", false, "print records as JSON")
	listCmd.Flags().BoolVar(&listFlags.summary, "summary", false, "print summaries and key points")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.auth.IsAuthenticated() {
		return errors.New("not signed in. Run 'triage auth login' first")
	}

	criteria, err := listCriteria(a.session.State().Criteria, cmd.Flags().Changed("days"))
	if err != nil {
		return err
	}
	if _, err := a.session.Dispatch(ctx, session.Command{Kind: session.CmdRefresh}); err != nil {
		return err
	}

	now := time.Now()
	records := triage.Filter(a.pipeline.Snapshot().Records, criteria, now)

	out := cmd.OutOrStdout()
	if listFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	writeRecordTable(out, records, now, terminalWidth(), listFlags.summary)
	stats := triage.Aggregate(a.pipeline.Snapshot().Records)
	fmt.Fprintf(out, "\n%d shown · %d emails · %d unread · %d important · %d spam\n",
		len(records), stats.Total, stats.Unread, stats.Important, stats.Spam)
	return nil
}

// listCriteria applies the command-line overrides to base. Flags never
// touch the saved preferences. daysSet reports whether --days was given,
// since 0 is a valid window.
func listCriteria(base triage.Criteria, daysSet bool) (triage.Criteria, error) {
	c := base
	if daysSet {
		c.MaxAgeDays = listFlags.days
	}
	if listFlags.priority != "" {
		p, err := triage.ParsePriorityFilter(listFlags.priority)
		if err != nil {
			return c, err
		}
		c.Priority = p
	}
	if listFlags.show != "" {
		v, err := triage.ParseVisibility(listFlags.show)
		if err != nil {
			return c, err
		}
		c.Visibility = v
	}
	return c, c.Validate()
}

func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultListWidth
	}
	return int(ws.Col)
}

// writeRecordTable prints one line per record: priority, flags, age,
// sender and subject, fitted to width.
func writeRecordTable(w io.Writer, records []triage.Record, now time.Time, width int, summaries bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No emails match the current filters.")
		return
	}
	const (
		priorityCol = 7
		flagsCol    = 3
		ageCol      = 13
		fromCol     = 24
	)
	subjectCol := max(width-priorityCol-flagsCol-ageCol-fromCol, 10)

	for _, r := range records {
		var b strings.Builder
		b.WriteString(padding.String(string(r.Priority), priorityCol))
		b.WriteString(padding.String(recordFlags(r), flagsCol))
		b.WriteString(padding.String(triage.RelativeAge(r.Date, now), ageCol))
		b.WriteString(padding.String(truncate.StringWithTail(senderName(r.From), fromCol-2, "…"), fromCol))
		b.WriteString(truncate.StringWithTail(r.Subject, uint(subjectCol), "…"))
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

		if !summaries {
			continue
		}
		text := strings.TrimSpace(r.Summary)
		for _, p := range r.KeyPoints {
			text += "\n- " + p
		}
		fmt.Fprintln(w, indent.String(wordwrap.String(text, max(width-4, 20)), 4))
	}
}

func recordFlags(r triage.Record) string {
	var flags string
	if !r.IsRead {
		flags += "•"
	}
	if r.IsStarred {
		flags += "★"
	}
	return flags
}

func senderName(from string) string {
	if idx := strings.Index(from, "<"); idx > 0 {
		from = strings.TrimSpace(from[:idx])
	}
	return strings.Trim(from, `"`)
}
