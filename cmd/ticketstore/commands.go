package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/ticket-store/internal/domain"
	"github.com/spec-kit/ticket-store/internal/store"
)

// The commands are glue only: each one loads the app, invokes a single
// store operation, and renders the result. Business rules live in the
// store, which re-enforces every gate regardless of what the CLI allows.

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ticketstore",
		Short:         "Local ticket tracker: users, tickets, comments in one persisted snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newEditCmd(),
		newStatusCmd(),
		newRemoveCmd(),
		newCommentCmd(),
		newRemoveCommentCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Assert an identity (no password; the name is the identity)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			user := a.store.Login(cmd.Context(), strings.Join(args, " "))
			fmt.Printf("logged in as %s (%s)\n", user.Name, user.ID)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			a.store.Logout(cmd.Context())
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if user, ok := a.store.CurrentUser(); ok {
				fmt.Printf("%s (%s)\n", user.Name, user.ID)
			} else {
				fmt.Println("not logged in")
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var title, description, status string
	cmd := &cobra.Command{
		Use:   "add <number>",
		Short: "Create a ticket with a manual ticket number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := domain.ParseStatus(status)
			if !ok {
				return fmt.Errorf("unknown status %q (want open, in-progress, or closed)", status)
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			id, err := a.store.AddTicket(cmd.Context(), store.TicketInput{
				ID:          args[0],
				Name:        title,
				Description: description,
				Status:      parsed,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created ticket %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "ticket title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional description")
	cmd.Flags().StringVarP(&status, "status", "s", string(domain.StatusOpen), "open | in-progress | closed")
	return cmd
}

func newListCmd() *cobra.Command {
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			user, loggedIn := a.store.CurrentUser()
			for _, t := range a.store.Tickets() {
				if mine && (!loggedIn || t.CreatedByID != user.ID) {
					continue
				}
				fmt.Printf("%-12s %-12s %-30s %s\n", t.ID, t.Status, t.Name, t.CreatedByName)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "only tickets created by the current user")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show a ticket and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			t, ok := a.store.Ticket(args[0])
			if !ok {
				return fmt.Errorf("no ticket %q", args[0])
			}
			fmt.Printf("%s  %s\n", t.ID, t.Name)
			fmt.Printf("status:  %s\n", t.Status)
			fmt.Printf("creator: %s\n", t.CreatedByName)
			fmt.Printf("created: %s\n", formatMillis(t.CreatedAt))
			if t.Description != "" {
				fmt.Printf("\n%s\n", t.Description)
			}
			for _, c := range a.store.CommentsFor(t.ID) {
				fmt.Printf("\n[%s] %s at %s\n  %s\n", c.ID, c.UserName, formatMillis(c.CreatedAt), c.Text)
			}
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: "Edit a ticket's title or description (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			var upd store.TicketUpdate
			if cmd.Flags().Changed("title") {
				upd.Name = &title
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			a.store.UpdateTicket(cmd.Context(), args[0], upd)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears)")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <number> <status>",
		Short: "Change a ticket's status (owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := domain.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q (want open, in-progress, or closed)", args[1])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			a.store.SetStatus(cmd.Context(), args[0], status)
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <number>",
		Short: "Delete a ticket and its comments (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			a.store.DeleteTicket(cmd.Context(), args[0])
			return nil
		},
	}
}

func newCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <number> <text>...",
		Short: "Comment on a ticket",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			a.store.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
			return nil
		},
	}
}

func newRemoveCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-comment <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			a.store.DeleteComment(cmd.Context(), args[0])
			return nil
		},
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
