package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/reporting"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/pkg/clients/webhook"
)

// Reporter is what the scheduled job needs from the reporting service.
type Reporter interface {
	Summary(ctx context.Context) (reporting.Report, error)
	ExportSnapshot(ctx context.Context) (int, error)
}

// Scheduler runs the low-stock report on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reporter Reporter
	notifier webhook.Client
	logger   *zap.Logger
}

// NewScheduler validates the schedule and timezone. notifier may be nil, in
// which case the report is only logged.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier webhook.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		return nil, fmt.Errorf("parse report schedule %q: %w", cfg.CronSchedule, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		reporter: reporter,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	_, err := s.cron.AddFunc(s.schedule, s.runScheduled)
	if err != nil {
		s.logger.Error("failed to schedule stock report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunReport(ctx); err != nil {
		s.logger.Error("stock report failed", zap.Error(err))
	}
}

// RunReport builds the summary, delivers it and exports a snapshot.
// Delivery and export failures are logged; only a failed summary is returned.
func (s *Scheduler) RunReport(ctx context.Context) error {
	s.logger.Info("generating stock report")

	report, err := s.reporter.Summary(ctx)
	if err != nil {
		return fmt.Errorf("build stock report: %w", err)
	}

	if s.notifier == nil {
		s.logger.Info("stock report", zap.String("text", report.Text))
	} else if _, err := s.notifier.SendReport(ctx, toRequest(report)); err != nil {
		s.logger.Error("failed to send stock report", zap.Error(err))
	} else {
		s.logger.Info("stock report sent successfully", zap.Int("low", report.Low), zap.Int("out", report.Out))
	}

	if n, err := s.reporter.ExportSnapshot(ctx); err != nil {
		if !errors.Is(err, reporting.ErrExportDisabled) {
			s.logger.Error("failed to export inventory snapshot", zap.Error(err))
		}
	} else {
		s.logger.Info("inventory snapshot exported", zap.Int("rows", n))
	}

	return nil
}

func toRequest(report reporting.Report) webhook.ReportRequest {
	lines := make([]webhook.ReportLine, 0, len(report.Lines))
	for _, line := range report.Lines {
		lines = append(lines, webhook.ReportLine{
			ItemID:         line.Item.ID,
			Name:           line.Item.Name,
			Quantity:       line.Item.Quantity,
			Threshold:      line.Item.Threshold,
			Status:         string(line.Item.Status),
			SuggestedOrder: line.SuggestedOrder,
		})
	}
	return webhook.ReportRequest{
		Text:        report.Text,
		GeneratedAt: report.GeneratedAt,
		LowStock:    lines,
	}
}
