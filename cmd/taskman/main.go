package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"taskman/internal/config"
	"taskman/internal/notify"
	"taskman/internal/repository"
	"taskman/internal/service"
)

func main() {
	configPath := pflag.String("config", config.DefaultConfigFileName, "path to config file")
	dbPath := pflag.String("db", "", "override database path")
	pflag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	db, err := repository.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		notifier = notify.Multi{notify.NewLogNotifier(), tg}
	}

	taskSvc := service.NewTaskService(taskRepo, tagRepo)
	reminderSvc := service.NewReminderService(taskRepo, notifier)
	reminderSvc.SetUpcomingThreshold(time.Duration(cfg.UpcomingThresholdMinutes) * time.Minute)
	taskSvc.SetInvalidator(reminderSvc)

	scheduler := service.NewSchedulerService(time.Local)
	runner := service.NewReminderRunner(scheduler, reminderSvc,
		time.Duration(cfg.CheckIntervalSeconds)*time.Second)

	if cfg.RemindersEnabled {
		if err := runner.Start(); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		defer runner.Stop()
	}

	log.Println("taskman started.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutdown complete.")
}
