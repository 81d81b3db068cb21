package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/config"
	"github.com/mamadbah2/shopdesk/internal/repository/mongodb"
	"github.com/mamadbah2/shopdesk/internal/service/reporting"
)

// Scheduler runs the end-of-day snapshot job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	archive      mongodb.Archiver
	cfg          config.SnapshotConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SnapshotConfig, reportingSvc *reporting.Service, archive mongodb.Archiver, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		archive:      archive,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.archiveYesterday)
	if err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) archiveYesterday() {
	s.logger.Info("archiving daily snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The job runs shortly after midnight, so the completed day is yesterday.
	snapshot, err := s.reportingSvc.SnapshotDay(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		s.logger.Error("failed to build daily snapshot", zap.Error(err))
		return
	}

	if err := s.archive.SaveDailySnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive daily snapshot", zap.Error(err))
		return
	}

	s.logger.Info("daily snapshot archived",
		zap.Time("date", snapshot.Date),
		zap.Float64("total_sales", snapshot.TotalSales),
		zap.Int("sale_count", snapshot.SaleCount))
}
