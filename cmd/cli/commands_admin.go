package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/core/services"
)

// Admin commands: event and user CRUD, session scheduling, attendance and
// hours. All of these are gated on the admin role at the CLI layer.

func createEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createevent <name>",
		Short: "Create a new event as a draft (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			description, _ := cmd.Flags().GetString("description")
			location, _ := cmd.Flags().GetString("location")

			event, err := services.CreateEvent(app.ctx, app.store, app.logger, services.CreateEventRequest{
				Name:        args[0],
				Description: description,
				Location:    location,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event created as draft.\n\n")
			fmt.Printf("ID:     %s\n", event.ID)
			fmt.Printf("Name:   %s\n", event.Name)
			fmt.Printf("Status: %s (publish it to make it visible)\n\n", event.Status)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Event description")
	cmd.Flags().String("location", "", "Default event location")

	return cmd
}

func publishEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishevent <event_id>",
		Short: "Publish a draft event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			event, err := services.PublishEvent(app.ctx, app.store, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s is now published and open for signups.\n\n", event.Name)
			return nil
		},
	}
}

func archiveEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archiveevent <event_id>",
		Short: "Archive a published event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			event, err := services.ArchiveEvent(app.ctx, app.store, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s archived. It stays visible to admins only.\n\n", event.Name)
			return nil
		},
	}
}

func deleteEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteevent <event_id>",
		Short: "Delete an event and its sessions (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			event, err := app.store.GetEventByID(app.ctx, args[0])
			if err != nil {
				return err
			}

			if !confirm(fmt.Sprintf("Delete %q and all its sessions?", event.Name)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := services.DeleteEvent(app.ctx, app.store, app.logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ %s deleted.\n\n", event.Name)
			return nil
		},
	}
}

func scheduleSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedulesessions <event_id> <rrule>",
		Short: "Generate session occurrences from a recurrence rule (admin)",
		Long: `Generate an event's sessions from an RFC 5545 recurrence rule, e.g.:

  schedulesessions event-1 "DTSTART:20260404T090000Z
RRULE:FREQ=WEEKLY;COUNT=6" --duration 180 --students 10 --parents 4

The rule must be bounded by COUNT or UNTIL.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			duration, _ := cmd.Flags().GetInt("duration")
			students, _ := cmd.Flags().GetInt("students")
			parents, _ := cmd.Flags().GetInt("parents")
			location, _ := cmd.Flags().GetString("location")

			result, err := services.ScheduleSessions(app.ctx, app.store, app.logger, services.ScheduleSessionsRequest{
				EventID:         args[0],
				RRule:           strings.ReplaceAll(args[1], `\n`, "\n"),
				DurationMinutes: duration,
				StudentCapacity: students,
				ParentCapacity:  parents,
				Location:        location,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %d sessions scheduled for %s:\n\n", len(result.Sessions), result.Event.Name)
			for i, session := range result.Sessions {
				fmt.Printf("  %2d. %s (%s)\n", i+1, session.Start.Format("2006-01-02 15:04 (Monday)"), session.ID)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Int("duration", 120, "Session length in minutes")
	cmd.Flags().Int("students", 0, "Student pool capacity per session")
	cmd.Flags().Int("parents", 0, "Parent pool capacity per session")
	cmd.Flags().String("location", "", "Location override for these sessions")

	return cmd
}

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createuser <name> <email> <role>",
		Short: "Create a portal member: student, parent, or admin (admin)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			chapter, _ := cmd.Flags().GetString("chapter")

			user, err := services.CreateUser(app.ctx, app.store, app.logger, services.CreateUserRequest{
				Name:    args[0],
				Email:   args[1],
				Role:    args[2],
				Chapter: chapter,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ User created.\n\n")
			fmt.Printf("ID:    %s\n", user.ID)
			fmt.Printf("Email: %s\n", user.Email)
			fmt.Printf("Role:  %s (roles never change once assigned)\n\n", user.Role)
			return nil
		},
	}

	cmd.Flags().String("chapter", "", "Chapter the user belongs to")

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listusers",
		Short: "List all portal members (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			users, err := services.ListUsers(app.ctx, app.store, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d users:\n\n", len(users))
			for _, user := range users {
				fmt.Printf("- %-20s %-8s %-12s %s (%s)\n",
					user.Name, user.Role, trimOrDash(user.Chapter), user.Email, user.ID)
			}
			fmt.Println()
			return nil
		},
	}
}

func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteuser <user_id>",
		Short: "Delete a portal member, keeping their signup history (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := app.requireAdmin()
			if err != nil {
				return err
			}
			if admin.ID == args[0] {
				return fmt.Errorf("you cannot delete your own account")
			}

			user, err := app.store.GetUserByID(app.ctx, args[0])
			if err != nil {
				return err
			}

			if !confirm(fmt.Sprintf("Delete %s (%s)?", user.Name, user.Email)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := services.DeleteUser(app.ctx, app.store, app.logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ %s deleted. Their signup history is kept.\n\n", user.Name)
			return nil
		},
	}
}

func rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <session_id>",
		Short: "Show a session's roster grouped by pool (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			roster, err := services.Roster(app.ctx, app.store, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s - %s\n\n", roster.EventName, roster.Session.Start.Format("Mon 2 Jan 2006 15:04"))

			printRows := func(title string, rows []services.RosterRow) {
				if len(rows) == 0 {
					return
				}
				fmt.Printf("%s:\n", title)
				for _, row := range rows {
					line := fmt.Sprintf("  %-20s %s  attendance: %s", row.UserName, row.Signup.ID, row.Signup.Attendance)
					if row.Signup.HoursEarned != nil {
						line += fmt.Sprintf("  %.1fh", *row.Signup.HoursEarned)
					}
					fmt.Println(line)
				}
				fmt.Println()
			}

			printRows(fmt.Sprintf("Students (%d/%d)", len(roster.Students), roster.Session.StudentCapacity), roster.Students)
			printRows(fmt.Sprintf("Parents (%d/%d)", len(roster.Parents), roster.Session.ParentCapacity), roster.Parents)
			printRows("Waitlist", roster.Waitlist)
			printRows("Cancelled", roster.Cancelled)
			return nil
		},
	}
}

func markAttendanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markattendance <signup_id> <present|absent|not_marked>",
		Short: "Record attendance on a signup (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			signup, err := services.RecordAttendance(app.ctx, app.store, app.logger, args[0], model.Attendance(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Attendance recorded: %s\n\n", signup.Attendance)
			return nil
		},
	}
}

func awardHoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "awardhours <signup_id> <hours>",
		Short: "Award volunteer hours on a signup (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("hours must be a number: %w", err)
			}

			signup, err := services.AwardHours(app.ctx, app.store, app.cfg, app.logger, args[0], hours)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Awarded %.1f hours on signup %s.\n\n", hours, signup.ID)
			return nil
		},
	}
}

func removeSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "removesignup <signup_id>",
		Short: "Remove someone's signup, marking it cancelled (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAdmin(); err != nil {
				return err
			}

			reason, _ := cmd.Flags().GetString("reason")

			signup, err := services.RemoveSignup(app.ctx, app.store, app.cfg, app.logger, args[0], reason)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Signup %s removed (the record is kept as cancelled).\n\n", signup.ID)
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason shown to the user")

	return cmd
}
