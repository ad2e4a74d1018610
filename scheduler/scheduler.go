package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leaguestats/fetcher/pipeline"
	"leaguestats/pkg/config"
	"leaguestats/pkg/database"
	"leaguestats/pkg/logger"
	"leaguestats/pkg/redis"
	"leaguestats/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	appLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg, rawDb); err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	p := pipeline.NewPipeline(&pipeline.PipelineDeps{
		Config: cfg,
		DB:     db,
		Cache:  redisClient,
		Logger: appLogger,
	})

	matchSync := jobs.NewMatchSync(&jobs.MatchSyncDeps{
		Summoners:    p.Summoners,
		Synchronizer: p.Synchronizer,
		Details:      p.DetailCache,
		Logger:       appLogger,
		StaleAfter:   cfg.Sync.StaleAfter,
		BatchSize:    cfg.Sync.BatchSize,
		Workers:      cfg.Sync.Workers,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Infof("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register the match list synchronization, runs right away and then on every interval.
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(
			func() {
				runMatchSync(ctx, matchSync, appLogger)
			},
		),
		gocron.WithName("match-list-sync"),
		gocron.WithTags("sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create match list sync job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	appLogger.Infof("Shutting down scheduler...")
	cancel()
}

// Run the job and ship the run log.
func runMatchSync(ctx context.Context, job *jobs.MatchSync, appLogger *logger.NewLogger) error {
	_, err := job.Run(ctx)
	if err != nil {
		appLogger.Errorf("Match list sync failed: %v", err)
	}

	key := fmt.Sprintf("scheduler/match-list-sync-%s.log", time.Now().UTC().Format(time.RFC3339))
	if uploadErr := appLogger.UploadToS3Bucket(ctx, key); uploadErr != nil {
		appLogger.Errorf("Couldn't upload the log: %v", uploadErr)
	}

	return err
}
