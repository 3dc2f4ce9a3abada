package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/auth"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
	"github.com/redbridgehub/volunteer-portal/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	store  *db.MemStore
	logger *zap.Logger
	ctx    context.Context

	// token is the current session token: set by the login command in
	// interactive mode, or passed via --token otherwise
	token string
}

var (
	env       string
	tokenFlag string
	app       *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Volunteer portal - browse events, sign up, track hours",
		Long:  `A volunteer management portal: event and session browsing, signups and waitlists, attendance and hours tracking, leaderboards, and admin screens.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: demo, test, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Session token from a previous login")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(eventCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(cancelCmd())
	rootCmd.AddCommand(dropCmd())
	rootCmd.AddCommand(mySignupsCmd())
	rootCmd.AddCommand(myHoursCmd())
	rootCmd.AddCommand(leaderboardCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(createEventCmd())
	rootCmd.AddCommand(publishEventCmd())
	rootCmd.AddCommand(archiveEventCmd())
	rootCmd.AddCommand(deleteEventCmd())
	rootCmd.AddCommand(scheduleSessionsCmd())
	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(listUsersCmd())
	rootCmd.AddCommand(deleteUserCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(markAttendanceCmd())
	rootCmd.AddCommand(awardHoursCmd())
	rootCmd.AddCommand(removeSignupCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the seeded in-memory store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting portal", zap.String("environment", env))

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Debug("Loading seed data", zap.String("path", app.cfg.SeedDataPath))
	app.store, err = db.LoadSeed(app.cfg.SeedDataPath)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	app.logger.Info("Store seeded", zap.String("seed", app.cfg.SeedDataPath))

	app.token = tokenFlag

	return nil
}

// claims verifies the current session token
func (a *App) claims() (*auth.Claims, error) {
	if a.token == "" {
		return nil, fmt.Errorf("not logged in (run 'login <email> <password>' first)")
	}
	claims, err := auth.VerifyToken([]byte(a.cfg.TokenSigningKey), a.token)
	if err != nil {
		return nil, fmt.Errorf("session expired or invalid, please login again")
	}
	return claims, nil
}

// currentUser resolves the session token to the signed-in user
func (a *App) currentUser() (*model.User, error) {
	claims, err := a.claims()
	if err != nil {
		return nil, err
	}
	user, err := a.store.GetUserByID(a.ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("your account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// requireAdmin gates the admin screens. Matching the portal's UI-level
// enforcement: non-admins simply never reach these actions.
func (a *App) requireAdmin() (*model.User, error) {
	user, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleAdmin {
		return nil, fmt.Errorf("this command is only available to admins")
	}
	return user, nil
}

// confirm asks a yes/no question on stdin, defaulting to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive portal session (login once, run multiple commands)",
		Long: `Start an interactive session where you can log in once and run multiple commands.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\nWelcome to %s\n", app.cfg.PortalName)
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args between invocations
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full
				// Execute() flow so initApp() doesn't run again and the
				// session token survives between commands
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

// parseCommandLine splits a command line into arguments, respecting quoted
// strings. Supports both single and double quotes, so flags like
// --reason "schedule conflict" keep their value intact.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote

	for i, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}

		if i == len(line)-1 && inQuote != 0 {
			return nil, fmt.Errorf("unclosed quote: %c", inQuote)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-40s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                                     Show this help message")
	fmt.Println("  exit, quit                               Exit the interactive session")
}
