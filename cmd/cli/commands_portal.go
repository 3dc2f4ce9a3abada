package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/eligibility"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/core/services"
	"github.com/redbridgehub/volunteer-portal/pkg/core/stats"
)

// Member-facing commands: everything a student or parent can do.

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in with a seeded email and the demo password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Brief pause for feedback parity with the portal's mocked
			// network round-trip
			fmt.Print("Checking credentials...")
			time.Sleep(400 * time.Millisecond)
			fmt.Println()

			result, err := services.Login(app.ctx, app.store, app.cfg, app.logger, args[0], args[1])
			if err != nil {
				return err
			}

			app.token = result.Token

			fmt.Printf("\n✓ Welcome back, %s!\n\n", result.User.Name)
			fmt.Printf("Role:    %s\n", result.User.Role)
			fmt.Printf("Session: valid until %s\n", result.ExpiresAt.Format("15:04"))
			fmt.Printf("Token:   %s\n\n", result.Token)
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser()
			if err != nil {
				return err
			}

			fmt.Printf("\n%s (%s)\n", user.Name, user.Email)
			fmt.Printf("Role:    %s\n", user.Role)
			if user.Chapter != "" {
				fmt.Printf("Chapter: %s\n", user.Chapter)
			}
			fmt.Println()
			return nil
		},
	}
}

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List events you can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser()
			if err != nil {
				return err
			}

			events, err := services.BrowseEvents(app.ctx, app.store, app.logger, user)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("\nNo events right now - check back later.")
				return nil
			}

			fmt.Printf("\nFound %d events:\n\n", len(events))
			for _, event := range events {
				statusNote := ""
				if event.Status != model.EventPublished {
					statusNote = fmt.Sprintf(" [%s]", event.Status)
				}
				fmt.Printf("- %s (%s)%s\n", event.Name, event.ID, statusNote)
				if event.Description != "" {
					fmt.Printf("    %s\n", event.Description)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func eventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event <event_id>",
		Short: "Show an event's sessions with open spots and your status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser()
			if err != nil {
				return err
			}

			view, err := services.ViewEvent(app.ctx, app.store, app.logger, user, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n", view.Event.Name)
			if view.Event.Description != "" {
				fmt.Printf("%s\n", view.Event.Description)
			}
			if view.Event.Location != "" {
				fmt.Printf("Location: %s\n", view.Event.Location)
			}

			if len(view.Sessions) == 0 {
				fmt.Println("\nNo sessions scheduled yet.")
				return nil
			}

			fmt.Printf("\nSessions:\n")
			for _, row := range view.Sessions {
				fmt.Printf("  %s  %s - %s\n",
					row.Session.ID,
					row.Session.Start.Format("Mon 2 Jan 2006 15:04"),
					row.Session.End.Format("15:04"))
				fmt.Printf("      students: %d/%d  parents: %d/%d  waitlist: %d\n",
					row.StudentConfirmed, row.Session.StudentCapacity,
					row.ParentConfirmed, row.Session.ParentCapacity,
					row.WaitlistLength)
				if row.ViewerState != eligibility.StateNone {
					fmt.Printf("      your status: %s\n", row.ViewerState)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <session_id>",
		Short: "Sign up for a session (waitlisted if your pool is full)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}

			result, err := services.SignUp(app.ctx, app.store, app.cfg, app.logger, claims.UserID, args[0])
			if err != nil {
				return err
			}

			when := result.Session.Start.Format("Mon 2 Jan 2006 15:04")
			if result.Waitlisted {
				fmt.Printf("\n%s on %s is full - you're on the waitlist.\n\n", result.Event.Name, when)
			} else {
				fmt.Printf("\n✓ You're confirmed for %s on %s!\n\n", result.Event.Name, when)
			}
			return nil
		},
	}
}

func cancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <session_id>",
		Short: "Cancel a confirmed signup (requires --reason)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}
			reason, _ := cmd.Flags().GetString("reason")

			result, err := services.CancelSignup(app.ctx, app.store, app.cfg, app.logger, claims.UserID, args[0], reason)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Signup cancelled. A %s spot opened up for the next person who signs up.\n\n", result.FreedCategory)
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Why you're cancelling (required)")

	return cmd
}

func dropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <session_id>",
		Short: "Leave a session's waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}

			if _, err := services.DropWaitlist(app.ctx, app.store, app.cfg, app.logger, claims.UserID, args[0]); err != nil {
				return err
			}

			fmt.Println("\n✓ You left the waitlist.")
			fmt.Println()
			return nil
		},
	}
}

func mySignupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mysignups",
		Short: "Show your signup history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}

			details, err := services.MySignups(app.ctx, app.store, app.logger, claims.UserID)
			if err != nil {
				return err
			}

			if len(details) == 0 {
				fmt.Println("\nYou haven't signed up for anything yet.")
				return nil
			}

			fmt.Printf("\nYour signups:\n\n")
			for _, d := range details {
				name := d.EventName
				if name == "" {
					name = "(event removed)"
				}
				line := fmt.Sprintf("- %s  %s  [%s]", name, d.Session.Start.Format("2 Jan 2006"), d.Signup.Status)
				if d.Signup.HoursEarned != nil {
					line += fmt.Sprintf("  %.1fh", *d.Signup.HoursEarned)
				}
				if d.Signup.CancelReason != "" {
					line += fmt.Sprintf("  (%s)", d.Signup.CancelReason)
				}
				fmt.Println(line)
			}
			fmt.Println()
			return nil
		},
	}
}

func myHoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "myhours",
		Short: "Show your total hours and completed events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}

			summary, err := services.MyHours(app.ctx, app.store, app.logger, claims.UserID)
			if err != nil {
				return err
			}

			fmt.Printf("\nTotal hours:      %.1f\n", summary.TotalHours)
			fmt.Printf("Completed events: %d\n\n", summary.CompletedEvents)
			return nil
		},
	}
}

func leaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the volunteer leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.claims(); err != nil {
				return err
			}

			metric, _ := cmd.Flags().GetString("metric")
			byChapter, _ := cmd.Flags().GetBool("chapters")

			result, err := services.BuildLeaderboard(app.ctx, app.store, app.logger, stats.Metric(metric), byChapter)
			if err != nil {
				return err
			}

			fmt.Printf("\nLeaderboard (by %s):\n\n", result.Metric)
			if byChapter {
				for i, row := range result.Chapters {
					chapter := row.Chapter
					if chapter == "" {
						chapter = "(no chapter)"
					}
					fmt.Printf("  %2d. %-20s %6.1fh  %d events  (%d members)\n",
						i+1, chapter, row.TotalHours, row.CompletedEvents, row.MemberCount)
				}
			} else {
				for i, row := range result.Entries {
					fmt.Printf("  %2d. %-20s %6.1fh  %d events\n",
						i+1, row.Name, row.TotalHours, row.CompletedEvents)
				}
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("metric", string(stats.MetricHours), "Ranking metric: hours or events")
	cmd.Flags().Bool("chapters", false, "Aggregate by chapter instead of individuals")

	return cmd
}

func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show your unexpired notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := app.claims()
			if err != nil {
				return err
			}

			notifications, err := services.ListNotifications(app.ctx, app.store, app.logger, claims.UserID)
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("\nNo notifications.")
				return nil
			}

			fmt.Printf("\nNotifications:\n\n")
			for _, n := range notifications {
				fmt.Printf("  %s  %s\n", n.CreatedAt.Format("15:04"), n.Message)
			}
			fmt.Println()

			app.logger.Debug("Notifications displayed",
				zap.String("user_id", claims.UserID),
				zap.Int("count", len(notifications)))
			return nil
		},
	}
}

// trimOrDash is a tiny display helper for optional fields.
func trimOrDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return s
}
