package bootstrap

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	eventsinadapter "mindgate/internal/modules/events/adapter/in"
	eventsoutadapter "mindgate/internal/modules/events/adapter/out"
	eventsusecase "mindgate/internal/modules/events/usecase"
	hostinadapter "mindgate/internal/modules/host/adapter/in"
	hostoutadapter "mindgate/internal/modules/host/adapter/out"
	hostservice "mindgate/internal/modules/host/service"
	hostusecase "mindgate/internal/modules/host/usecase"
	intentioninadapter "mindgate/internal/modules/intention/adapter/in"
	intentionoutadapter "mindgate/internal/modules/intention/adapter/out"
	intentionusecase "mindgate/internal/modules/intention/usecase"
	interceptinadapter "mindgate/internal/modules/intercept/adapter/in"
	interceptusecase "mindgate/internal/modules/intercept/usecase"
	metadataoutadapter "mindgate/internal/modules/metadata/adapter/out"
	metadatausecase "mindgate/internal/modules/metadata/usecase"
	notifyoutadapter "mindgate/internal/modules/notify/adapter/out"
	notifyusecase "mindgate/internal/modules/notify/usecase"
	restrictioninadapter "mindgate/internal/modules/restriction/adapter/in"
	restrictionoutadapter "mindgate/internal/modules/restriction/adapter/out"
	restrictionout "mindgate/internal/modules/restriction/port/out"
	restrictionservice "mindgate/internal/modules/restriction/service"
	restrictionusecase "mindgate/internal/modules/restriction/usecase"
	scheduleinadapter "mindgate/internal/modules/schedule/adapter/in"
	scheduleoutadapter "mindgate/internal/modules/schedule/adapter/out"
	scheduleservice "mindgate/internal/modules/schedule/service"
	scheduleusecase "mindgate/internal/modules/schedule/usecase"
	sessionservice "mindgate/internal/modules/session/service"
	sessionusecase "mindgate/internal/modules/session/usecase"
	"mindgate/internal/platform/clock"
	"mindgate/internal/platform/config"
	"mindgate/internal/platform/id"
)

type App struct {
	ScheduleCLI    scheduleinadapter.CLIHandler
	RestrictionCLI restrictioninadapter.CLIHandler
	IntentionCLI   intentioninadapter.CLIHandler
	InterceptCLI   interceptinadapter.CLIHandler
	EventsCLI      eventsinadapter.CLIHandler
	HostCLI        hostinadapter.CLIHandler

	Logger *zap.Logger
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}

	metadataUC := metadatausecase.NewInteractor(
		metadataoutadapter.NewFileRecordStore(cfg.StatePath),
		clk,
		cfg.StaleHorizon,
	)

	intentionUC := intentionusecase.NewInteractor(
		intentionoutadapter.NewYAMLCatalogStore(cfg.CatalogPath),
		intentionoutadapter.NewRandomPicker(time.Now().UnixNano()),
	)

	notifyUC := notifyusecase.NewInteractor(notifyoutadapter.NewFileSpool(cfg.StatePath), clk)

	ledger, err := eventsoutadapter.NewSQLiteLedger(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new event ledger: %w", err)
	}
	eventsUC := eventsusecase.NewInteractor(ledger, clk, logger)

	var enforcer restrictionout.Enforcer
	if cfg.EnforcerPath != "" {
		enforcer = restrictionoutadapter.NewPluginEnforcer(cfg.EnforcerPath)
	} else {
		enforcer = restrictionoutadapter.NewNullEnforcer()
	}
	restrictionUC := restrictionusecase.NewInteractor(
		restrictionservice.NewRegistryService(restrictionoutadapter.NewFileTargetStore(cfg.StatePath)),
		enforcer,
		metadataUC,
		notifyUC,
	)

	scheduleUC := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(
		ids,
		scheduleoutadapter.NewFileScheduleStore(cfg.StatePath),
	))

	interceptUC := interceptusecase.NewInteractor(metadataUC, intentionUC, notifyUC, eventsUC)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewManager(),
		intentionUC,
		metadataUC,
		notifyUC,
		eventsUC,
		clk,
	)

	daemonStore := hostoutadapter.NewFileDaemonStore(cfg.StatePath)
	ipcClient := hostoutadapter.NewJSONRPCClient()
	hostUC := hostusecase.NewInteractor(
		hostservice.NewHostService(
			cfg.HomePath,
			cfg.MonitorInterval,
			cfg.TickInterval,
			scheduleUC,
			restrictionUC,
			sessionUC,
			daemonStore,
			hostoutadapter.NewJSONRPCServer(),
			ipcClient,
			clk,
			logger,
		),
		daemonStore,
		ipcClient,
	)

	return &App{
		ScheduleCLI:    scheduleinadapter.NewCLIHandler(scheduleUC),
		RestrictionCLI: restrictioninadapter.NewCLIHandler(restrictionUC),
		IntentionCLI:   intentioninadapter.NewCLIHandler(intentionUC),
		InterceptCLI:   interceptinadapter.NewCLIHandler(interceptUC),
		EventsCLI:      eventsinadapter.NewCLIHandler(eventsUC),
		HostCLI:        hostinadapter.NewCLIHandler(hostUC),
		Logger:         logger,
	}, nil
}
