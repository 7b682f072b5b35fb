package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mindgate/internal/bootstrap"
	restrictiondto "mindgate/internal/modules/restriction/dto"
	"mindgate/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "mindgate",
		Short:         "Mindful gatekeeper for time-boxed app and domain restrictions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "mindgate home directory (default ~/.mindgate)")

	root.AddCommand(newDaemonCmd(&homePath))
	root.AddCommand(newScheduleCmd(&homePath))
	root.AddCommand(newRestrictCmd(&homePath))
	root.AddCommand(newIntentionCmd(&homePath))
	root.AddCommand(newShieldCmd(&homePath))
	root.AddCommand(newActionCmd(&homePath))
	root.AddCommand(newSessionCmd(&homePath))
	root.AddCommand(newOpenCmd(&homePath))
	root.AddCommand(newEventsCmd(&homePath))
	return root
}

func loadApp(homePath string) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newDaemonCmd(homePath *string) *cobra.Command {
	daemon := &cobra.Command{Use: "daemon", Short: "Manage the host daemon"}

	daemon.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the host daemon in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			return app.HostCLI.Run(context.Background())
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the host daemon in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.HostCLI.Start(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon started")
			return nil
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the host daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.HostCLI.Stop(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon stopped")
			return nil
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show host daemon status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			status, err := app.HostCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "running=%t pid=%d socket=%s\n", status.Running, status.PID, status.SocketPath)
			if status.Running {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "monitoring=%t active=%t enforcing=%t session=%s\n",
					status.Status.Monitoring, status.Status.AnyActive, status.Status.Enforcing, status.Status.Session.State)
				if w := status.Status.Window; w != nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "window=%s..%s recurring=%t\n",
						w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), w.Recurring)
				}
			}
			return nil
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "reapply",
		Short: "Force immediate schedule re-evaluation and enforcement push",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.HostCLI.ReapplyNow(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reapplied")
			return nil
		},
	})
	var logTail int
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show host daemon logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			payload, err := app.HostCLI.Logs(context.Background(), logTail)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}
	logs.Flags().IntVar(&logTail, "tail", 200, "log lines to show from the end")
	daemon.AddCommand(logs)
	return daemon
}

func newScheduleCmd(homePath *string) *cobra.Command {
	schedule := &cobra.Command{Use: "schedule", Short: "Manage restriction schedules"}

	var name string
	var ranges []string
	var days []int
	var from, until string
	add := &cobra.Command{
		Use:   "add --name <name> --range HH:MM-HH:MM --days 1,2,3",
		Short: "Add a schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			validFrom, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			validUntil, err := parseDateFlag(until)
			if err != nil {
				return err
			}
			out, err := app.ScheduleCLI.Add(context.Background(), name, ranges, days, validFrom, validUntil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added schedule %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "schedule name")
	add.Flags().StringSliceVar(&ranges, "range", nil, "time range HH:MM-HH:MM; end before start wraps past midnight")
	add.Flags().IntSliceVar(&days, "days", nil, "ISO weekdays, 1=Monday .. 7=Sunday")
	add.Flags().StringVar(&from, "from", "", "first valid date (YYYY-MM-DD)")
	add.Flags().StringVar(&until, "until", "", "last valid date (YYYY-MM-DD)")
	schedule.AddCommand(add)

	schedule.AddCommand(&cobra.Command{
		Use:   "enable <schedule-id>",
		Short: "Enable a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setScheduleEnabled(cmd, *homePath, args[0], true)
		},
	})
	schedule.AddCommand(&cobra.Command{
		Use:   "disable <schedule-id>",
		Short: "Disable a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setScheduleEnabled(cmd, *homePath, args[0], false)
		},
	})
	schedule.AddCommand(&cobra.Command{
		Use:   "remove <schedule-id>",
		Short: "Remove a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.ScheduleCLI.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	})
	schedule.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			listed, err := app.ScheduleCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, s := range listed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s enabled=%t active=%t days=%v\n", s.ID, s.Name, s.Enabled, s.ActiveNow, s.Days)
			}
			return nil
		},
	})
	schedule.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show combined schedule status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			status, err := app.ScheduleCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active=%t monitoring=%t\n", status.AnyActive, status.Monitoring)
			if status.Window != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "window=%s..%s recurring=%t\n",
					status.Window.Start.Format(time.RFC3339), status.Window.End.Format(time.RFC3339), status.Window.Recurring)
			}
			return nil
		},
	})
	return schedule
}

func setScheduleEnabled(cmd *cobra.Command, homePath, scheduleID string, enabled bool) error {
	app, err := loadApp(homePath)
	if err != nil {
		return err
	}
	out, err := app.ScheduleCLI.SetEnabled(context.Background(), scheduleID, enabled)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s enabled=%t\n", out.ID, out.Enabled)
	return nil
}

func newRestrictCmd(homePath *string) *cobra.Command {
	restrict := &cobra.Command{Use: "restrict", Short: "Manage restricted targets"}

	restrict.AddCommand(&cobra.Command{
		Use:   "select <kind:token[:name]>...",
		Short: "Replace the restricted target selection",
		Long:  "Replaces the whole selection. Targets absent from the new selection are removed and their pending notifications canceled.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			inputs := make([]restrictiondto.TargetInput, 0, len(args))
			for _, spec := range args {
				input, err := parseTargetSpec(spec)
				if err != nil {
					return err
				}
				inputs = append(inputs, input)
			}
			selected, err := app.RestrictionCLI.Select(context.Background(), inputs)
			if err != nil {
				return err
			}
			for _, target := range selected {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s enabled=%t\n", target.ID, target.Kind, target.DisplayName, target.Enabled)
			}
			return nil
		},
	})

	var intentionID string
	assign := &cobra.Command{
		Use:   "assign <target-id> --intention <intention-id>",
		Short: "Assign an intention to a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.RestrictionCLI.AssignIntention(context.Background(), args[0], intentionID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s intention=%s\n", out.ID, out.IntentionID)
			return nil
		},
	}
	assign.Flags().StringVar(&intentionID, "intention", "", "intention id; empty clears the assignment")
	restrict.AddCommand(assign)

	restrict.AddCommand(&cobra.Command{
		Use:   "enable <target-id>",
		Short: "Enable a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTargetEnabled(cmd, *homePath, args[0], true)
		},
	})
	restrict.AddCommand(&cobra.Command{
		Use:   "disable <target-id>",
		Short: "Disable a target without removing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTargetEnabled(cmd, *homePath, args[0], false)
		},
	})
	restrict.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Push enabled targets to the enforcement capability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.RestrictionCLI.Apply(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "applied")
			return nil
		},
	})
	restrict.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all targets and lift enforcement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.RestrictionCLI.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	})
	restrict.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List restricted targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			listed, err := app.RestrictionCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, target := range listed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s enabled=%t intention=%s\n",
					target.ID, target.Kind, target.DisplayName, target.Enabled, target.IntentionID)
			}
			return nil
		},
	})
	return restrict
}

func setTargetEnabled(cmd *cobra.Command, homePath, targetID string, enabled bool) error {
	app, err := loadApp(homePath)
	if err != nil {
		return err
	}
	out, err := app.RestrictionCLI.SetEnabled(context.Background(), targetID, enabled)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s enabled=%t\n", out.ID, out.Enabled)
	return nil
}

// parseTargetSpec splits kind:token[:name]; the token is opaque and the name
// optional.
func parseTargetSpec(spec string) (restrictiondto.TargetInput, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return restrictiondto.TargetInput{}, fmt.Errorf("invalid target spec %q, want kind:token[:name]", spec)
	}
	input := restrictiondto.TargetInput{Kind: parts[0], Token: []byte(parts[1])}
	if len(parts) == 3 {
		input.DisplayName = parts[2]
	} else {
		input.DisplayName = parts[1]
	}
	return input, nil
}

func newIntentionCmd(homePath *string) *cobra.Command {
	intention := &cobra.Command{Use: "intention", Short: "Browse the intention catalog"}

	intention.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List intentions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			listed, err := app.IntentionCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, item := range listed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s (%s)\n", item.ID, item.Kind, item.Title, item.Duration)
			}
			return nil
		},
	})
	intention.AddCommand(&cobra.Command{
		Use:   "show <intention-id>",
		Short: "Show one intention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			item, err := app.IntentionCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s\n%s\nduration=%s\n", item.ID, item.Kind, item.Title, item.Prompt, item.Duration)
			return nil
		},
	})
	return intention
}

func newShieldCmd(homePath *string) *cobra.Command {
	var kind, token, name string
	shield := &cobra.Command{
		Use:   "shield --kind <kind> --token <token>",
		Short: "Produce a block screen directive for a target about to open",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind == "" || token == "" {
				return fmt.Errorf("--kind and --token are required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			directive, err := app.InterceptCLI.Shield(context.Background(), kind, []byte(token), name)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(directive)
		},
	}
	shield.Flags().StringVar(&kind, "kind", "", "target kind: app|category|domain")
	shield.Flags().StringVar(&token, "token", "", "opaque target token")
	shield.Flags().StringVar(&name, "name", "", "display name hint")
	return shield
}

func newActionCmd(homePath *string) *cobra.Command {
	var targetID, button string
	action := &cobra.Command{
		Use:   "action --target <target-id> --button <primary|secondary>",
		Short: "Resolve the user's choice on a presented shield",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if targetID == "" {
				return fmt.Errorf("--target is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			resolution, err := app.InterceptCLI.Action(context.Background(), targetID, button)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), resolution)
			return nil
		},
	}
	action.Flags().StringVar(&targetID, "target", "", "target identifier from the shield directive")
	action.Flags().StringVar(&button, "button", "", "chosen button")
	return action
}

func newSessionCmd(homePath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Control the intention session in the running daemon"}

	var intentionID, targetID string
	start := &cobra.Command{
		Use:   "start --intention <intention-id>",
		Short: "Start an intention session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if intentionID == "" {
				return fmt.Errorf("--intention is required")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.HostCLI.SessionStart(context.Background(), intentionID, targetID)
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
	start.Flags().StringVar(&intentionID, "intention", "", "intention id")
	start.Flags().StringVar(&targetID, "target", "", "target identifier (optional)")
	session.AddCommand(start)

	session.AddCommand(sessionVerb(homePath, "pause", "Pause the live session", func(app *bootstrap.App, ctx context.Context) (any, error) {
		return app.HostCLI.SessionPause(ctx)
	}))
	session.AddCommand(sessionVerb(homePath, "resume", "Resume a paused session", func(app *bootstrap.App, ctx context.Context) (any, error) {
		return app.HostCLI.SessionResume(ctx)
	}))
	session.AddCommand(sessionVerb(homePath, "complete", "Complete the session", func(app *bootstrap.App, ctx context.Context) (any, error) {
		return app.HostCLI.SessionComplete(ctx)
	}))
	session.AddCommand(sessionVerb(homePath, "skip", "Skip the session", func(app *bootstrap.App, ctx context.Context) (any, error) {
		return app.HostCLI.SessionSkip(ctx)
	}))
	session.AddCommand(sessionVerb(homePath, "status", "Show session status", func(app *bootstrap.App, ctx context.Context) (any, error) {
		return app.HostCLI.SessionStatus(ctx)
	}))
	return session
}

func sessionVerb(homePath *string, use, short string, call func(*bootstrap.App, context.Context) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := call(app, context.Background())
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
		},
	}
}

func printSession(cmd *cobra.Command, out any) {
	_ = json.NewEncoder(cmd.OutOrStdout()).Encode(out)
}

func newOpenCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open <mindgate://intention?...>",
		Short: "Open an intention deep link in the running daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.HostCLI.OpenLink(context.Background(), args[0])
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
}

func newEventsCmd(homePath *string) *cobra.Command {
	var limit int
	events := &cobra.Command{
		Use:   "events",
		Short: "Show recent activity events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			listed, err := app.EventsCLI.Tail(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, event := range listed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s target=%s intention=%s %s\n",
					event.At.Format(time.RFC3339), event.Kind, event.TargetID, event.IntentionID, event.Detail)
			}
			return nil
		},
	}
	events.Flags().IntVar(&limit, "limit", 50, "events to show, newest first")
	return events
}

func parseDateFlag(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return &parsed, nil
}
