package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lpsimplex/internal/config"
	"lpsimplex/internal/scheduler"
	"lpsimplex/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run only the batch solve-job scheduler",
	Long:  `Drain queued solve jobs on a cron tick without starting the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWorker()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if config.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := connectDB()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	repo := store.NewRepository(db)
	sched := scheduler.New(repo, logger, cfg.Scheduler.CronExpr, cfg.Scheduler.BatchSize, cfg.Scheduler.WorkerCount)

	logger.Info("starting standalone solve job worker")
	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down worker")
}
