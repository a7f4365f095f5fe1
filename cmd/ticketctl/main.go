// ticketctl lists and edits a ticket file from the terminal.
//
// It loads the same documents as the web server (ticket file, settings,
// translations) from a directory or an http(s) base URL, prints the
// filtered and sorted tickets as a table, and can apply one edit and
// write the updated ticket file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/ticketdesk/internal/config"
	"github.com/JonMunkholm/ticketdesk/internal/core"
	"github.com/JonMunkholm/ticketdesk/internal/logging"
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/JonMunkholm/ticketdesk/internal/source"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], cfg, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		printError(os.Stderr, err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// printError writes err for the operator. Errors with a user message print
// it with its code and action; the technical cause goes to the debug log.
func printError(w io.Writer, err error) {
	var userErr *core.UserError
	if errors.As(err, &userErr) {
		slog.Debug("command failed", "error", userErr.Technical)
		fmt.Fprintf(w, "error: %s\n", core.FormatUserError(userErr.Technical))
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

// options are the parsed command line flags.
type options struct {
	source  string
	status  string
	sort    string
	desc    bool
	update  string
	out     string
	verbose bool

	setStatus      string
	setPriority    string
	setAssignee    string
	setDescription string
	setProgress    int
}

func run(ctx context.Context, args []string, cfg *config.Config, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("ticketctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.source, "source", cfg.Source.Base, "directory or http(s) base URL holding the ticket file")
	flagSet.StringVar(&opts.status, "status", ticket.FilterAll, "show only tickets with this status")
	flagSet.StringVar(&opts.sort, "sort", "", "sort on this field ("+strings.Join(ticket.Fields, ", ")+")")
	flagSet.BoolVar(&opts.desc, "desc", false, "sort descending")
	flagSet.StringVar(&opts.update, "update", "", "ID of the ticket to edit with the --set-* flags")
	flagSet.StringVar(&opts.setStatus, "set-status", "", "new status")
	flagSet.StringVar(&opts.setPriority, "set-priority", "", "new priority")
	flagSet.StringVar(&opts.setAssignee, "set-assignee", "", "new assignee")
	flagSet.StringVar(&opts.setDescription, "set-description", "", "new description")
	flagSet.IntVar(&opts.setProgress, "set-progress", 0, "new progress (0-100)")
	flagSet.StringVarP(&opts.out, "out", "o", "", "write the ticket file here (- for stdout) instead of printing the table")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return &exitError{code: 2, err: fmt.Errorf("unexpected argument: %s", rest[0])}
	}
	if opts.sort != "" && !slices.Contains(ticket.Fields, opts.sort) {
		return &exitError{code: 2, err: fmt.Errorf("unknown sort field %q", opts.sort)}
	}

	level := cfg.Logging.Level
	if opts.verbose {
		level = "debug"
	}
	slog.SetDefault(logging.New(stderr, level, cfg.Logging.Format))

	fetcher, err := source.New(opts.source, cfg.Source.FetchTimeout, cfg.Source.MaxBytes)
	if err != nil {
		return err
	}

	service := core.NewService(nil)
	files := core.Files{
		Tickets:      cfg.Source.TicketsFile,
		Settings:     cfg.Source.SettingsFile,
		Translations: cfg.Source.TranslationsFile,
	}
	if err := service.Load(ctx, fetcher, files); err != nil {
		return core.NewUserError(err)
	}

	// The table, the update result and the export all follow store order.
	if opts.sort != "" {
		dir := ticket.Asc
		if opts.desc {
			dir = ticket.Desc
		}
		if _, _, err := service.SortBy(opts.sort, dir); err != nil {
			return err
		}
	}

	csv := ""
	if opts.update != "" {
		csv, err = applyUpdate(ctx, service, flagSet, opts)
		if err != nil {
			return err
		}
	}

	if opts.out != "" {
		if csv == "" {
			res, err := service.Export(ctx)
			if err != nil {
				return err
			}
			csv = res.CSV
		}
		return writeOutput(opts.out, csv, stdout)
	}

	visible, err := service.OnFilterChanged(opts.status)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, renderTable(visible, service.Translator("")))
	return nil
}

// applyUpdate saves the --set-* flags that were given over ticket id and
// returns the updated ticket file.
func applyUpdate(ctx context.Context, service *core.Service, flagSet *pflag.FlagSet, opts options) (string, error) {
	current, err := service.Find(opts.update)
	if err != nil {
		return "", &exitError{code: 3, err: err}
	}

	patch := ticket.PatchFrom(current)
	if flagSet.Changed("set-status") {
		patch.Status = opts.setStatus
	}
	if flagSet.Changed("set-priority") {
		patch.Priority = opts.setPriority
	}
	if flagSet.Changed("set-assignee") {
		patch.AssignedTo = opts.setAssignee
	}
	if flagSet.Changed("set-description") {
		patch.Description = opts.setDescription
	}
	if flagSet.Changed("set-progress") {
		patch.Progress = opts.setProgress
	}

	res, err := service.OnSaveRequested(ctx, opts.update, patch)
	if err != nil {
		return "", err
	}
	if !res.Found {
		return "", &exitError{code: 3, err: fmt.Errorf("%w: %s", core.ErrTicketNotFound, opts.update)}
	}
	slog.Info("ticket updated", "ticket_id", opts.update, "export_id", res.ExportID)
	return res.CSV, nil
}

func writeOutput(path, csv string, stdout io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(stdout, csv+"\n")
		return err
	}
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("ticket file written", "path", path)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var priorityColors = map[string]lipgloss.Color{
	ticket.PriorityHigh:   lipgloss.Color("9"),
	ticket.PriorityMedium: lipgloss.Color("11"),
	ticket.PriorityLow:    lipgloss.Color("10"),
}

type tableColumn struct {
	field, key, label string
}

// tableColumns are the ticket fields printed, in order.
var tableColumns = []tableColumn{
	{ticket.FieldID, "col.id", "ID"},
	{ticket.FieldTitle, "col.title", "Title"},
	{ticket.FieldRequester, "col.requester", "Requester"},
	{ticket.FieldStatus, "col.status", "Status"},
	{ticket.FieldPriority, "col.priority", "Priority"},
	{ticket.FieldDate, "col.date", "Date"},
	{ticket.FieldAssignedTo, "col.assignedTo", "Assigned to"},
	{ticket.FieldProgress, "col.progress", "Progress"},
}

// renderTable lays out tickets with headers in the settings language.
func renderTable(tickets []ticket.Ticket, t settings.Translator) string {
	headers := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		headers[i] = t.Text(c.key, c.label)
	}

	rows := make([][]string, 0, len(tickets))
	for _, tk := range tickets {
		row := make([]string, len(tableColumns))
		for i, c := range tableColumns {
			row[i] = tk.Get(c.field)
		}
		row[len(row)-1] = fmt.Sprintf("%d%%", tk.ProgressPercent())
		rows = append(rows, row)
	}

	priorityCol := slices.IndexFunc(tableColumns, func(c tableColumn) bool {
		return c.field == ticket.FieldPriority
	})

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == priorityCol && row >= 0 && row < len(tickets) {
				if color, ok := priorityColors[tickets[row].Priority]; ok {
					return cellStyle.Foreground(color)
				}
			}
			return cellStyle
		})

	if len(tickets) == 0 {
		return tbl.String() + "\n" + t.Text("tickets.empty", "No tickets found")
	}
	return tbl.String()
}
