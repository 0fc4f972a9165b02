package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"alcyxob/vitality-planner/internal/api"
	"alcyxob/vitality-planner/internal/bootstrap"
	"alcyxob/vitality-planner/internal/config"
	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/service"
)

var errNoPlan = errors.New("no wellness plan yet, run `vitality generate` first")

// statusPoll is how often generate checks for a new loading message.
const statusPoll = 200 * time.Millisecond

func (cli *CLI) newGenerateCommand() *cobra.Command {
	flags := &profileFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a wellness plan from your profile",
		Example: `  vitality generate --age 34 --gender female --weight 68 --height 170 \
    --activity moderately --goal improve --diet vegetarian --restrictions "lactose"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.profile()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return cli.withSession(ctx, func(cfg config.Config, session *bootstrap.Session) error {
				plan, err := runGeneration(ctx, cmd, session.Planner, profile)
				if err != nil {
					return errors.New(service.UserMessage(err))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, green("Your wellness plan is ready."))
				fmt.Fprintln(out)
				printPlan(out, plan)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// runGeneration submits profile and prints each new loading message until
// the submission resolves.
func runGeneration(ctx context.Context, cmd *cobra.Command, planner *service.Planner, profile domain.Profile) (*domain.WellnessPlan, error) {
	type result struct {
		plan *domain.WellnessPlan
		err  error
	}
	done := make(chan result, 1)
	go func() {
		plan, err := planner.Submit(ctx, profile)
		done <- result{plan, err}
	}()

	ticker := time.NewTicker(statusPoll)
	defer ticker.Stop()

	errOut := cmd.ErrOrStderr()
	last := ""
	for {
		select {
		case r := <-done:
			return r.plan, r.err
		case <-ticker.C:
			state := planner.State()
			if state.Loading && state.StatusMessage != last {
				last = state.StatusMessage
				fmt.Fprintln(errOut, gray(last))
			}
		}
	}
}

func (cli *CLI) newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the current wellness plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withSession(cmd.Context(), func(_ config.Config, session *bootstrap.Session) error {
				plan, ok := session.Planner.Plan()
				if !ok {
					return errNoPlan
				}
				printPlan(cmd.OutOrStdout(), plan)
				return nil
			})
		},
	}
}

func (cli *CLI) newTrackCommand() *cobra.Command {
	var dateFlag string

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Tick or untick a habit or workout for a day",
	}
	trackCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "day to track (YYYY-MM-DD), defaults to today")

	toggle := func(kind string, apply func(p *service.Planner, ctx context.Context, date domain.Date, key string) (service.DayProgress, error)) *cobra.Command {
		return &cobra.Command{
			Use:   kind + " <name>",
			Short: "Toggle a " + kind + " on the selected day",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withSession(cmd.Context(), func(_ config.Config, session *bootstrap.Session) error {
					plan, ok := session.Planner.Plan()
					if !ok {
						return errNoPlan
					}
					tracker := session.Planner.Tracker()
					date, err := resolveDate(tracker, dateFlag)
					if err != nil {
						return err
					}
					day, err := apply(session.Planner, cmd.Context(), date, args[0])
					if err != nil {
						return err
					}
					printDay(cmd.OutOrStdout(), plan, day)
					return nil
				})
			},
		}
	}

	trackCmd.AddCommand(
		toggle("habit", (*service.Planner).ToggleHabit),
		toggle("exercise", (*service.Planner).ToggleExercise),
	)
	return trackCmd
}

func resolveDate(tracker *service.Tracker, raw string) (domain.Date, error) {
	if raw == "" {
		return tracker.SelectedDate(), nil
	}
	return domain.ParseDate(raw)
}

func (cli *CLI) newProgressCommand() *cobra.Command {
	var dateFlag string
	var offset int

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the checklist and completion percentage for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withSession(cmd.Context(), func(_ config.Config, session *bootstrap.Session) error {
				plan, ok := session.Planner.Plan()
				if !ok {
					return errNoPlan
				}
				tracker := session.Planner.Tracker()
				date, err := resolveDate(tracker, dateFlag)
				if err != nil {
					return err
				}
				date = date.AddDays(offset)
				printDay(cmd.OutOrStdout(), plan, tracker.Day(plan, date))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "day to show (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&offset, "offset", 0, "move the day by this many days, e.g. -1 for yesterday")
	return cmd
}

func (cli *CLI) newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the profile, the plan and all tracked days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withSession(cmd.Context(), func(_ config.Config, session *bootstrap.Session) error {
				session.Planner.Reset(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), green("Session cleared."))
				return nil
			})
		},
	}
}

func (cli *CLI) newTokenCommand() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the HTTP API (requires jwt.secret)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.Expiration
			}
			token, err := api.IssueToken(cfg.JWT.Secret, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cli", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to jwt.expiration")
	return cmd
}
