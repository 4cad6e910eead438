package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eric-akh/jl-todo-app/client"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List todos, newest first",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			todos, err := cl.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Fprintln(c.out, "No todos.")
				return nil
			}
			fmt.Fprint(c.out, todoTable(todos))
			return nil
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var (
		priority string
		dueAt    string
	)
	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Create a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateRequest{Title: strings.Join(args, " ")}
			if priority != "" {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				req.Priority = p
			}
			if dueAt != "" {
				due, err := parseDueAt(dueAt, time.Now())
				if err != nil {
					return err
				}
				req.DueAt = &due
			}

			cl, err := c.client()
			if err != nil {
				return err
			}
			created, err := cl.Create(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(c.out, "Created %s\n", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority: low, medium, high or 1-3 (default medium)")
	cmd.Flags().StringVar(&dueAt, "due-at", "", "due date as RFC 3339 or a duration from now, e.g. 48h")
	addTodoFlagAliases(cmd)
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			t, err := cl.Get(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			fmt.Fprint(c.out, todoDetail(t))
			return nil
		},
	}
}

func (c *cli) updateCmd() *cobra.Command {
	var (
		title     string
		priority  string
		completed bool
	)
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change the title, priority or completion of a todo",
		Aliases: []string{"edit"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("priority") && !flags.Changed("completed") {
				return fmt.Errorf("nothing to update: pass --title, --priority or --completed")
			}

			cl, err := c.client()
			if err != nil {
				return err
			}
			current, err := cl.Get(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}

			req := client.UpdateRequest{
				Title:       current.Title,
				Priority:    current.Priority,
				IsCompleted: current.IsCompleted,
			}
			if flags.Changed("title") {
				req.Title = title
			}
			if flags.Changed("priority") {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				req.Priority = p
			}
			if flags.Changed("completed") {
				req.IsCompleted = completed
			}

			updated, err := cl.Update(cmd.Context(), current.ID, req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprint(c.out, todoDetail(updated))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority: low, medium, high or 1-3")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark completed (--completed=false to reopen)")
	addTodoFlagAliases(cmd)
	return cmd
}

func (c *cli) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Flip the completion flag of one or more todos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			return c.forEach(cmd.Context(), args, cl.Toggle, "Toggled")
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Short:   "Delete one or more todos",
		Aliases: []string{"delete"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			return c.forEach(cmd.Context(), args, cl.Remove, "Deleted")
		},
	}
}

// maxBatchRequests bounds concurrent requests for multi-id commands.
const maxBatchRequests = 4

// forEach runs op for every id concurrently and reports them in argument
// order once all have succeeded. The first failure cancels the rest.
func (c *cli) forEach(ctx context.Context, ids []string, op func(context.Context, string) error, verb string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchRequests)
	for _, id := range ids {
		g.Go(func() error {
			if err := op(ctx, id); err != nil {
				return fmt.Errorf("%s: %w", id, describe(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintf(c.out, "%s %s\n", verb, id)
	}
	return nil
}

func (c *cli) activityCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			cl, err := c.client()
			if err != nil {
				return err
			}
			entries, err := cl.Activity(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(c.out, "No activity.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Timestamp.Local().Format(time.DateTime), e.Type, e.TodoID, e.Message})
			}
			fmt.Fprint(c.out, formatTable([]string{"TIME", "TYPE", "TODO", "MESSAGE"}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	return cmd
}

func todoTable(todos []client.Todo) string {
	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		rows = append(rows, []string{
			t.ID,
			doneMark(t.IsCompleted),
			priorityName(t.Priority),
			formatDue(t.DueAt),
			t.Title,
		})
	}
	return formatTable([]string{"ID", "DONE", "PRIORITY", "DUE", "TITLE"}, rows)
}

func todoDetail(t *client.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %s\n", t.ID)
	fmt.Fprintf(&b, "Title:     %s\n", t.Title)
	fmt.Fprintf(&b, "Priority:  %s\n", priorityName(t.Priority))
	fmt.Fprintf(&b, "Completed: %t\n", t.IsCompleted)
	fmt.Fprintf(&b, "Created:   %s\n", t.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(&b, "Due:       %s\n", formatDue(t.DueAt))
	return b.String()
}

func doneMark(done bool) string {
	if done {
		return "x"
	}
	return ""
}

func formatDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Local().Format(time.DateTime)
}

func priorityName(p int) string {
	switch p {
	case 1:
		return "low"
	case 2:
		return "medium"
	case 3:
		return "high"
	default:
		return strconv.Itoa(p)
	}
}

// parsePriority accepts a name or a number. Range checks are left to the server.
func parsePriority(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return 1, nil
	case "medium", "med", "m":
		return 2, nil
	case "high", "h":
		return 3, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q: use low, medium, high or a number", s)
	}
	return p, nil
}

// parseDueAt accepts an RFC 3339 timestamp, a date, or a duration from now.
func parseDueAt(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q: use RFC 3339, YYYY-MM-DD or a duration like 48h", s)
}

// describe adds the server's field messages to a validation failure.
func describe(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Errors) == 0 {
		return err
	}
	fields := make([]string, 0, len(apiErr.Errors))
	for field := range apiErr.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var msgs []string
	for _, field := range fields {
		for _, msg := range apiErr.Errors[field] {
			msgs = append(msgs, field+": "+msg)
		}
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(msgs, ", "))
}
