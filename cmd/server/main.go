package main

import (
	"context"
	"log"
	mrand "math/rand"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"

	"nationsim/internal/adapter/feed"
	httpadapter "nationsim/internal/adapter/http"
	metricsinmem "nationsim/internal/adapter/metrics/inmemory"
	gormrepo "nationsim/internal/adapter/repo/gorm"
	"nationsim/internal/adapter/repo/memory"
	"nationsim/internal/adapter/worldmap"
	"nationsim/internal/app/action"
	"nationsim/internal/app/diplomacy"
	"nationsim/internal/app/epoch"
	"nationsim/internal/app/leaderboard"
	"nationsim/internal/app/nations"
	"nationsim/internal/app/observe"
	"nationsim/internal/app/ports"
	"nationsim/internal/app/status"
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

type config struct {
	Addr          string        `env:"NATIONSIM_ADDR" envDefault:":8080"`
	EpochDuration time.Duration `env:"NATIONSIM_EPOCH_DURATION" envDefault:"5m"`
	TickInterval  time.Duration `env:"NATIONSIM_TICK_INTERVAL" envDefault:"10s"`
	ArchiveDSN    string        `env:"NATIONSIM_ARCHIVE_DSN"`
	RNGSeed       int64         `env:"NATIONSIM_RNG_SEED"`
	CORSOrigin    string        `env:"NATIONSIM_CORS_ORIGIN" envDefault:"*"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	regions, err := worldmap.Load()
	if err != nil {
		log.Fatalf("load world map: %v", err)
	}

	store := memory.NewStore(world.NewClock(time.Now(), cfg.EpochDuration))
	store.SeedRegions(regions)

	txManager := memory.NewTxManager(store)
	nationRepo := memory.NewNationRepo(store)
	credentialRepo := memory.NewCredentialRepo(store)
	regionRepo := memory.NewRegionRepo(store)
	treatyRepo := memory.NewTreatyRepo(store)
	warRepo := memory.NewWarRepo(store)
	actionLogRepo := memory.NewActionLogRepo(store)
	eventRepo := memory.NewEventRepo(store)
	clockRepo := memory.NewClockRepo(store)

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := mrand.New(mrand.NewSource(seed))

	archive := buildArchiveSink(cfg.ArchiveDSN)
	hub := feed.NewHub()
	kpiRecorder := metricsinmem.NewRecorder()

	tickUC := epoch.TickUseCase{
		TxManager: txManager,
		Regions:   regionRepo,
		Nations:   nationRepo,
		Treaties:  treatyRepo,
		Events:    eventRepo,
		Clock:     clockRepo,
		Publisher: hub,
		Archive:   archive,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		RegisterUC: nations.RegisterUseCase{
			Nations:     nationRepo,
			Regions:     regionRepo,
			Credentials: credentialRepo,
			Events:      eventRepo,
			Clock:       clockRepo,
			TxManager:   txManager,
			Rand:        rng,
			Now:         time.Now,
		},
		ClaimUC: nations.ClaimUseCase{
			Nations:     nationRepo,
			Credentials: credentialRepo,
			TxManager:   txManager,
			Now:         time.Now,
		},
		VerifyUC:  nations.VerifyUseCase{Credentials: credentialRepo},
		ProfileUC: status.ProfileUseCase{Nations: nationRepo, Regions: regionRepo, Treaties: treatyRepo},
		PublicUC:  status.PublicUseCase{Nations: nationRepo},
		ActionUC: action.UseCase{
			TxManager: txManager,
			Nations:   nationRepo,
			Regions:   regionRepo,
			Treaties:  treatyRepo,
			ActionLog: actionLogRepo,
			Events:    eventRepo,
			Clock:     clockRepo,
			Combat:    nation.CombatService{Rand: rng},
			Metrics:   kpiRecorder,
			Publisher: hub,
			Archive:   archive,
			Now:       time.Now,
		},
		HistoryUC:     action.HistoryUseCase{ActionLog: actionLogRepo},
		SnapshotUC:    observe.SnapshotUseCase{Regions: regionRepo, Nations: nationRepo, Treaties: treatyRepo, Wars: warRepo, Clock: clockRepo},
		RegionsUC:     observe.RegionsUseCase{Regions: regionRepo, Nations: nationRepo},
		EventsUC:      observe.EventsUseCase{Events: eventRepo},
		LeaderboardUC: leaderboard.UseCase{Nations: nationRepo},
		TreatiesUC:    diplomacy.TreatiesUseCase{Treaties: treatyRepo, Nations: nationRepo},
		WarsUC:        diplomacy.WarsUseCase{Wars: warRepo},
		TickUC:        tickUC,
		Feed:          hub,
		KPI:           kpiRecorder,
	}

	runner := epoch.Runner{Tick: tickUC, Interval: cfg.TickInterval}
	go runner.Run(context.Background())

	s := server.Default(server.WithHostPorts(cfg.Addr))
	s.Use(httpadapter.CORSMiddleware(cfg.CORSOrigin))
	h.RegisterRoutes(s)

	log.Printf("nationsim server listening on %s (%d regions, epoch %s)", cfg.Addr, len(regions), cfg.EpochDuration)
	s.Spin()
}

func buildArchiveSink(dsn string) ports.ArchiveSink {
	if dsn == "" {
		return nil
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open archive postgres: %v", err)
	}
	sink := gormrepo.NewArchiveSink(db)
	if err := sink.Migrate(); err != nil {
		log.Fatalf("migrate archive tables: %v", err)
	}
	return sink
}
