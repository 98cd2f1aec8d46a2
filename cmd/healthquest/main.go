package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"healthquest/internal/bootstrap"
	minigamedto "healthquest/internal/modules/minigame/dto"
	"healthquest/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "healthquest",
		Short:         "Mind & body adventure tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data dir (default: $HEALTHQUEST_HOME or ~/.healthquest)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newCheckinCmd(&dataDir))
	root.AddCommand(newQuestCmd(&dataDir))
	root.AddCommand(newChallengeCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newProgressCmd(&dataDir))
	root.AddCommand(newMiniGameCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the healthquest terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg.DataDir, app)
		},
	}
}

func newLogCmd(dataDir *string) *cobra.Command {
	log := &cobra.Command{Use: "log", Short: "Record activity"}

	var intensity, note string
	activityCmd := &cobra.Command{
		Use:   "activity <type> <minutes>",
		Short: "Log an activity block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be an integer: %q", args[1])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.Log(context.Background(), args[0], minutes, intensity, note)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %dmin today=%dmin +%dxp\n", out.Type, out.Minutes, out.TotalMinutesToday, out.XPAwarded)
			return nil
		},
	}
	activityCmd.Flags().StringVar(&intensity, "intensity", "", "light|moderate|intense (default moderate)")
	activityCmd.Flags().StringVar(&note, "note", "", "optional description")

	stepsCmd := &cobra.Command{
		Use:   "steps <count>",
		Short: "Import a step count as walking minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("steps must be an integer: %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.LogSteps(context.Background(), steps)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %d steps as %dmin walking +%dxp\n", steps, out.Minutes, out.XPAwarded)
			return nil
		},
	}

	quickCmd := &cobra.Command{
		Use:   "quick <type> <minutes>",
		Short: "Log with default intensity and no note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be an integer: %q", args[1])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.QuickLog(context.Background(), args[0], minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %dmin today=%dmin +%dxp\n", out.Type, out.Minutes, out.TotalMinutesToday, out.XPAwarded)
			return nil
		},
	}

	log.AddCommand(activityCmd, stepsCmd, quickCmd)
	return log
}

func newCheckinCmd(dataDir *string) *cobra.Command {
	checkin := &cobra.Command{Use: "checkin", Short: "Daily mood and energy check-in"}

	var note string
	moodCmd := &cobra.Command{
		Use:   "mood <very_happy|happy|neutral|sad|stressed>",
		Short: "Record today's mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.Mood(context.Background(), args[0], note)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mood=%s energy=%s +%dxp\n", out.Mood, out.Energy, out.XPAwarded)
			return nil
		},
	}
	moodCmd.Flags().StringVar(&note, "note", "", "optional note")

	energyCmd := &cobra.Command{
		Use:   "energy <high|medium|low>",
		Short: "Record today's energy level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.Energy(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mood=%s energy=%s\n", out.Mood, out.Energy)
			return nil
		},
	}

	checkin.AddCommand(moodCmd, energyCmd)
	return checkin
}

func newQuestCmd(dataDir *string) *cobra.Command {
	quest := &cobra.Command{Use: "quest", Short: "Level catalog operations"}

	quest.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			levels, err := app.QuestCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, level := range levels {
				status := "locked"
				switch {
				case level.Completed:
					status = "completed"
				case level.Unlocked:
					status = "unlocked"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s) %s progress=%.0f%%\n", level.Number, level.Title, level.World, status, level.Progress*100)
			}
			return nil
		},
	})

	quest.AddCommand(&cobra.Command{
		Use:   "show <number>",
		Short: "Show one level with its challenges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level number must be an integer: %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			level, err := app.QuestCLI.Show(context.Background(), number)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s — %s\n", level.Number, level.Title, level.Description)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "world=%s required_xp=%d unlocked=%t completed=%t\n", level.World, level.RequiredXP, level.Unlocked, level.Completed)
			for _, c := range level.Physical {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s (%s) %d %s done=%t\n", c.ID, c.Title, c.ActivityType, c.Target, c.Unit, c.Completed)
			}
			for _, c := range level.Mindfulness {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s (%s) %dmin done=%t\n", c.ID, c.Title, c.Kind, c.DurationMin, c.Completed)
			}
			return nil
		},
	})

	quest.AddCommand(&cobra.Command{
		Use:   "complete <number>",
		Short: "Close out a level once every challenge is done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level number must be an integer: %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.QuestCLI.Complete(context.Background(), number)
			if err != nil {
				return err
			}
			if !out.Completed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "level is not completable yet")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level %d completed +%dxp rewards=%s\n", number, out.XPAwarded, strings.Join(out.Rewards, ", "))
			return nil
		},
	})

	return quest
}

func newChallengeCmd(dataDir *string) *cobra.Command {
	challenge := &cobra.Command{Use: "challenge", Short: "Confirm challenge completion"}

	challenge.AddCommand(&cobra.Command{
		Use:   "physical <level> <challenge-id>",
		Short: "Confirm a physical challenge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level number must be an integer: %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.QuestCLI.CompletePhysical(context.Background(), number, args[1])
			if err != nil {
				return err
			}
			if !out.Completed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to confirm")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "confirmed %s +%dxp\n", out.ChallengeID, out.XPAwarded)
			return nil
		},
	})

	challenge.AddCommand(&cobra.Command{
		Use:   "mindfulness <level> <challenge-id>",
		Short: "Tick a mindfulness challenge directly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level number must be an integer: %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.QuestCLI.CompleteMindfulness(context.Background(), number, args[1])
			if err != nil {
				return err
			}
			if !out.Completed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to tick")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ticked %s\n", out.ChallengeID)
			return nil
		},
	})

	return challenge
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Guided mindfulness sessions"}

	var sessionType, challengeID, title string
	var minutes int
	runCmd := &cobra.Command{
		Use:   "run --type <type> --minutes <n>",
		Short: "Run a session in the foreground; Ctrl+C cancels without credit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionType) == "" {
				return fmt.Errorf("--type is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			snapshot, err := app.MindfulnessCLI.Start(ctx, challengeID, title, sessionType, minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s session, %d:00\n", snapshot.Type, snapshot.DurationSec/60)

			lastGuidance := ""
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					_ = app.MindfulnessCLI.End(context.Background())
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nsession cancelled, no credit")
					return nil
				case <-ticker.C:
				}
				snapshot, err = app.MindfulnessCLI.Snapshot(ctx)
				if err != nil {
					return err
				}
				switch snapshot.State {
				case "completed":
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nsession complete")
					return nil
				case "idle":
					return nil
				}
				if snapshot.Guidance != lastGuidance {
					lastGuidance = snapshot.Guidance
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", snapshot.Guidance)
				}
				line := fmt.Sprintf("\r%02d:%02d", snapshot.RemainingSec/60, snapshot.RemainingSec%60)
				if snapshot.BreathingCue != "" {
					line += " " + snapshot.BreathingCue
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), line)
			}
		},
	}
	runCmd.Flags().StringVar(&sessionType, "type", "", "breathing|meditation|gratitude|visualization")
	runCmd.Flags().IntVar(&minutes, "minutes", 10, "session length in minutes")
	runCmd.Flags().StringVar(&challengeID, "challenge-id", "", "optional challenge id")
	runCmd.Flags().StringVar(&title, "title", "", "optional session title")
	session.AddCommand(runCmd)

	return session
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Player profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ProfileCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name=%q fitness=%s level=%d xp=%d next=%.0f%%\n", out.Name, out.FitnessLevel, out.CurrentLevel, out.TotalXP, out.ProgressToNext*100)
			if len(out.Achievements) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "achievements: %s\n", strings.Join(out.Achievements, ", "))
			}
			return nil
		},
	})

	var name, fitness string
	var activities []string
	setupCmd := &cobra.Command{
		Use:   "setup --name <name> --fitness <level>",
		Short: "Set name, fitness level, and preferred activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ProfileCLI.Setup(context.Background(), name, fitness, activities)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile saved: %q (%s)\n", out.Name, out.FitnessLevel)
			return nil
		},
	}
	setupCmd.Flags().StringVar(&name, "name", "", "player name")
	setupCmd.Flags().StringVar(&fitness, "fitness", "beginner", "beginner|intermediate|advanced")
	setupCmd.Flags().StringSliceVar(&activities, "activities", nil, "preferred activity types")
	profile.AddCommand(setupCmd)

	profile.AddCommand(&cobra.Command{
		Use:   "complete-onboarding",
		Short: "Mark onboarding as done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if _, err := app.ProfileCLI.CompleteOnboarding(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "onboarding complete")
			return nil
		},
	})

	return profile
}

func newProgressCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Today's totals, streak, and experience",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			summary, err := app.ActivityCLI.Summary(ctx)
			if err != nil {
				return err
			}
			profile, err := app.ProfileCLI.Get(ctx)
			if err != nil {
				return err
			}
			quest, err := app.QuestCLI.Progress(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "today: %dmin, %d steps, streak=%d days\n", summary.TotalMinutes, summary.Steps, summary.WeeklyStreak)
			for _, p := range summary.Progress {
				if p.MinutesToday == 0 {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %3d/%3dmin %.0f%%\n", p.Type, p.MinutesToday, p.TargetMinutes, p.Ratio*100)
			}
			if summary.CheckIn != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "check-in: mood=%s energy=%s\n", summary.CheckIn.Mood, summary.CheckIn.Energy)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level %d, %dxp (%.0f%% to next)\n", profile.CurrentLevel, profile.TotalXP, profile.ProgressToNext*100)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "quests: %d/%d levels complete\n", quest.CompletedLevels, quest.TotalLevels)
			return nil
		},
	}
}

func newMiniGameCmd(dataDir *string) *cobra.Command {
	minigame := &cobra.Command{Use: "minigame", Short: "Mini-game plugins"}

	minigame.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plugins, err := app.MiniGameCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	minigame.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.MiniGameCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var gamesPlugin string
	gamesCmd := &cobra.Command{
		Use:   "games --plugin <name>",
		Short: "List games exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(gamesPlugin) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			games, err := app.MiniGameCLI.Games(context.Background(), gamesPlugin)
			if err != nil {
				return err
			}
			if len(games) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no games")
				return nil
			}
			for _, game := range games {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s default_minutes=%d title=%q\n", game.ID, game.Kind, game.DefaultMinutes, game.Title)
			}
			return nil
		},
	}
	gamesCmd.Flags().StringVar(&gamesPlugin, "plugin", "", "plugin name")
	minigame.AddCommand(gamesCmd)

	var playPlugin, playGame, playInputJSON, playPlayer string
	playCmd := &cobra.Command{
		Use:   "play --plugin <name> --game <id>",
		Short: "Play one round and log the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(playPlugin) == "" || strings.TrimSpace(playGame) == "" {
				return fmt.Errorf("--plugin and --game are required")
			}
			if err := validateJSONInput(playInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.MiniGameCLI.Play(context.Background(), minigamedto.PlayInput{
				PluginName: playPlugin,
				GameID:     playGame,
				InputJSON:  playInputJSON,
				Player:     playPlayer,
				DataDir:    cfg.DataDir,
				Cwd:        cfg.DataDir,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: score=%d %dmin logged as %s\n", out.Kind, out.Score, out.Minutes, out.LoggedAs)
			if strings.TrimSpace(out.OutputJSON) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			}
			return nil
		},
	}
	playCmd.Flags().StringVar(&playPlugin, "plugin", "", "plugin name")
	playCmd.Flags().StringVar(&playGame, "game", "", "game id")
	playCmd.Flags().StringVar(&playInputJSON, "input-json", "", "JSON input payload")
	playCmd.Flags().StringVar(&playPlayer, "player", "", "optional player name")
	minigame.AddCommand(playCmd)

	var reportKind string
	var reportScore, reportMinutes int
	reportCmd := &cobra.Command{
		Use:   "report --kind <kind> --score <n> --minutes <n>",
		Short: "Record a round played without a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(reportKind) == "" {
				return fmt.Errorf("--kind is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.MiniGameCLI.Report(context.Background(), reportKind, reportScore, reportMinutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: score=%d %dmin logged as %s\n", out.Kind, out.Score, out.Minutes, out.LoggedAs)
			return nil
		},
	}
	reportCmd.Flags().StringVar(&reportKind, "kind", "", "jumping_jacks|squats|push_ups|plank|dancing|breathing")
	reportCmd.Flags().IntVar(&reportScore, "score", 0, "round score")
	reportCmd.Flags().IntVar(&reportMinutes, "minutes", 0, "round length in minutes")
	minigame.AddCommand(reportCmd)

	var ttyPlugin, ttyGame, ttyInputJSON string
	ttyCmd := &cobra.Command{
		Use:   "tty --plugin <name> --game <id>",
		Short: "Prepare and run a fullscreen terminal game",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(ttyPlugin) == "" || strings.TrimSpace(ttyGame) == "" {
				return fmt.Errorf("--plugin and --game are required")
			}
			if err := validateJSONInput(ttyInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plan, err := app.MiniGameCLI.PrepareTTY(context.Background(), minigamedto.TTYPrepareInput{
				PluginName: ttyPlugin,
				GameID:     ttyGame,
				InputJSON:  ttyInputJSON,
				DataDir:    cfg.DataDir,
				Cwd:        cfg.DataDir,
			})
			if err != nil {
				return err
			}
			return runTTYPlan(plan)
		},
	}
	ttyCmd.Flags().StringVar(&ttyPlugin, "plugin", "", "plugin name")
	ttyCmd.Flags().StringVar(&ttyGame, "game", "", "game id")
	ttyCmd.Flags().StringVar(&ttyInputJSON, "input-json", "", "JSON input payload")
	minigame.AddCommand(ttyCmd)

	return minigame
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite history projection from snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ActivityCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history projection rebuilt")
			return nil
		},
	}
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}

func runTTYPlan(plan minigamedto.TTYPrepareOutput) error {
	if len(plan.Argv) == 0 {
		return fmt.Errorf("plugin tty plan has empty argv")
	}
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if plan.Cwd != "" {
		cmd.Dir = plan.Cwd
	}
	env := os.Environ()
	for key, value := range plan.Env {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	return cmd.Run()
}
