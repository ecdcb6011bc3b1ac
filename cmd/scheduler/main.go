package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/cuota-engine/internal/config"
	"github.com/segyhp/cuota-engine/internal/logger"
	"github.com/segyhp/cuota-engine/internal/repository"
	"github.com/segyhp/cuota-engine/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// overdueJobTimeout bounds a single run of the daily job
const overdueJobTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	log.Info("Starting cuota scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// The scheduler never quotes, so no cache is wired
	billingService := service.NewBillingService(
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewPaymentRepository(db),
		nil,
		cfg,
		log,
	)

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithLogger(cron.PrintfLogger(log)),
	)

	if err := setupCronJobs(c, cfg, billingService, log); err != nil {
		log.WithError(err).Fatal("Error scheduling jobs")
	}

	c.Start()
	log.WithFields(logrus.Fields{
		"overdue_cron": cfg.Scheduler.OverdueCron,
		"timezone":     cfg.Scheduler.Timezone,
	}).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, billingService *service.BillingService, log logrus.FieldLogger) error {
	location := cfg.GetSchedulerLocation()

	// Daily job flagging unpaid cuotas whose due date has passed and closing
	// courses whose last day is over
	_, err := c.AddFunc(cfg.Scheduler.OverdueCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), overdueJobTimeout)
		defer cancel()

		start := time.Now().In(location)
		overdue, err := billingService.MarkOverdueCuotas(ctx, start)
		if err != nil {
			log.WithError(err).Error("overdue cuota job failed")
			return
		}
		closed, err := billingService.CloseEndedCourses(ctx, start)
		if err != nil {
			log.WithError(err).Error("course closing job failed")
			return
		}
		log.WithFields(logrus.Fields{
			"cuotas":   overdue,
			"courses":  closed,
			"duration": time.Since(start).String(),
		}).Info("daily billing job finished")
	})
	return err
}
