package report

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the end-of-day rollup on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	service Service
	logger  *zap.Logger
}

// NewScheduler registers the daily rollup job. The schedule is a standard
// five-field cron expression, normally a few minutes past midnight.
func NewScheduler(service Service, schedule string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.runYesterday); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day := time.Now().AddDate(0, 0, -1)
	rep, err := s.service.RunDailyReport(ctx, day)
	if err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
		return
	}
	s.logger.Info("daily report saved",
		zap.String("date", rep.Date.Format("2006-01-02")),
		zap.Int("orders", rep.OrderCount),
		zap.String("revenue", rep.Revenue.String()))
}
