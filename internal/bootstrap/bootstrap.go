package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	activityinadapter "healthquest/internal/modules/activity/adapter/in"
	activityoutadapter "healthquest/internal/modules/activity/adapter/out"
	activityin "healthquest/internal/modules/activity/port/in"
	activityservice "healthquest/internal/modules/activity/service"
	activityusecase "healthquest/internal/modules/activity/usecase"
	mindfulnessinadapter "healthquest/internal/modules/mindfulness/adapter/in"
	mindfulnessoutadapter "healthquest/internal/modules/mindfulness/adapter/out"
	mindfulnessin "healthquest/internal/modules/mindfulness/port/in"
	mindfulnessservice "healthquest/internal/modules/mindfulness/service"
	mindfulnessusecase "healthquest/internal/modules/mindfulness/usecase"
	minigameinadapter "healthquest/internal/modules/minigame/adapter/in"
	minigameoutadapter "healthquest/internal/modules/minigame/adapter/out"
	minigameservice "healthquest/internal/modules/minigame/service"
	minigameusecase "healthquest/internal/modules/minigame/usecase"
	progressioninadapter "healthquest/internal/modules/progression/adapter/in"
	progressionoutadapter "healthquest/internal/modules/progression/adapter/out"
	progressionin "healthquest/internal/modules/progression/port/in"
	progressionservice "healthquest/internal/modules/progression/service"
	progressionusecase "healthquest/internal/modules/progression/usecase"
	questinadapter "healthquest/internal/modules/quest/adapter/in"
	questoutadapter "healthquest/internal/modules/quest/adapter/out"
	questin "healthquest/internal/modules/quest/port/in"
	questservice "healthquest/internal/modules/quest/service"
	questusecase "healthquest/internal/modules/quest/usecase"
	"healthquest/internal/platform/clock"
	"healthquest/internal/platform/config"
	"healthquest/internal/platform/id"
	"healthquest/internal/platform/observability"
	"healthquest/internal/platform/timer"
	uiapp "healthquest/internal/ui/app"
)

// App holds the wired inbound handlers plus the ports the TUI bridges to
// directly.
type App struct {
	ProfileCLI     progressioninadapter.CLIHandler
	ActivityCLI    activityinadapter.CLIHandler
	QuestCLI       questinadapter.CLIHandler
	MindfulnessCLI mindfulnessinadapter.CLIHandler
	MiniGameCLI    minigameinadapter.CLIHandler

	Progression progressionin.Usecase
	Activity    activityin.Usecase
	Quest       questin.Usecase
	Mindfulness mindfulnessin.Usecase
}

func New(cfg config.Config) (*App, error) {
	ctx := context.Background()
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	profileStore := progressionoutadapter.NewFileProfileStore(cfg.ProfilePath)
	profileSvc, err := progressionservice.NewProfileService(ctx, profileStore, observability.WithComponent("progression"))
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	progressionUC := progressionusecase.NewInteractor(profileSvc)

	ledgerStore := activityoutadapter.NewFileLedgerStore(cfg.LedgerPath)
	historyProjector, err := activityoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	activitySvc, err := activityservice.NewActivityService(ctx, ledgerStore, historyProjector, clk, ids, observability.WithComponent("activity"))
	if err != nil {
		return nil, fmt.Errorf("load activity ledger: %w", err)
	}
	activityUC := activityusecase.NewInteractor(activitySvc, progressionUC)

	seed, err := questoutadapter.SeedCatalog(filepath.Join(cfg.DataDir, "catalog.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	questSvc, err := questservice.NewQuestService(ctx, questoutadapter.NewFileCatalogStore(cfg.LevelsPath), seed, observability.WithComponent("quest"))
	if err != nil {
		return nil, fmt.Errorf("load level catalog: %w", err)
	}
	questUC := questusecase.NewInteractor(questSvc, progressionUC)

	sessionProjector, err := mindfulnessoutadapter.NewSQLiteSessionProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	machine := mindfulnessservice.NewSessionMachine(timer.Wall{}, clk, observability.WithComponent("mindfulness"))
	mindfulnessUC := mindfulnessusecase.NewInteractor(
		machine,
		questUC,
		progressionUC,
		observability.WithComponent("mindfulness"),
		mindfulnessoutadapter.NewJournalArchive(cfg.JournalDir),
		sessionProjector,
	)

	minigameUC := minigameusecase.NewInteractor(minigameservice.NewMiniGameService(
		minigameoutadapter.NewFileManifestStore(cfg.DataDir),
		minigameoutadapter.NewGRPCHost(),
	), activityUC)

	return &App{
		ProfileCLI:     progressioninadapter.NewCLIHandler(progressionUC),
		ActivityCLI:    activityinadapter.NewCLIHandler(activityUC),
		QuestCLI:       questinadapter.NewCLIHandler(questUC),
		MindfulnessCLI: mindfulnessinadapter.NewCLIHandler(mindfulnessUC),
		MiniGameCLI:    minigameinadapter.NewCLIHandler(minigameUC),

		Progression: progressionUC,
		Activity:    activityUC,
		Quest:       questUC,
		Mindfulness: mindfulnessUC,
	}, nil
}

func RunTUI(dataDir string, app *App) error {
	model := uiapp.NewModel(dataDir, app.Activity, app.Quest, app.Mindfulness, app.Progression)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
