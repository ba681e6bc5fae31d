// Package scheduler runs the daily roll-up job: every farm gets yesterday's
// aggregated report persisted, optionally mirrored to Google Sheets and
// pushed to the report webhook.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/config"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/repository/sheets"
	"github.com/mamadbah2/farmtrack/internal/service/reporting"
	"github.com/mamadbah2/farmtrack/pkg/clients/notify"
)

// FarmerDirectory lists every primary account owner. The job iterates all
// farms rather than a hard-coded account.
type FarmerDirectory interface {
	ListFarmerIDs(ctx context.Context) ([]string, error)
}

// ReportStore persists the computed roll-ups.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Scheduler manages the cron-driven roll-up task.
type Scheduler struct {
	cron         *cron.Cron
	farmers      FarmerDirectory
	reportingSvc *reporting.Service
	store        ReportStore
	sheetsRepo   sheets.Repository
	notifier     notify.Client
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. sheetsRepo and notifier
// may be nil when their integrations are not configured.
func NewScheduler(cfg config.ReportingConfig, farmers FarmerDirectory, reportingSvc *reporting.Service, store ReportStore, sheetsRepo sheets.Repository, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:         cron.New(opts...),
		farmers:      farmers,
		reportingSvc: reportingSvc,
		store:        store,
		sheetsRepo:   sheetsRepo,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers and starts the roll-up job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyRollups); err != nil {
		s.logger.Error("failed to schedule daily rollup", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyRollups() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	farmerIDs, err := s.farmers.ListFarmerIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list farmers for rollup", zap.Error(err))
		return
	}
	s.logger.Info("running daily rollups", zap.Int("farms", len(farmerIDs)))

	for _, farmerID := range farmerIDs {
		report, err := s.reportingSvc.DailyRollup(ctx, farmerID, yesterday)
		if err != nil {
			s.logger.Error("rollup failed", zap.String("farmer_id", farmerID), zap.Error(err))
			continue
		}

		if err := s.store.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to save rollup", zap.String("farmer_id", farmerID), zap.Error(err))
			continue
		}

		if s.sheetsRepo != nil {
			if err := s.sheetsRepo.AppendDailyReport(ctx, report); err != nil {
				s.logger.Error("failed to sync rollup to sheets", zap.String("farmer_id", farmerID), zap.Error(err))
			}
		}

		if s.notifier != nil {
			if err := s.notifier.SendDailyReport(ctx, report); err != nil {
				s.logger.Error("failed to push rollup webhook", zap.String("farmer_id", farmerID), zap.Error(err))
			}
		}
	}
}
