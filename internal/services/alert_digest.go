package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertDigest evaluates all alerts on a schedule and logs how many of each
// kind are open.
type AlertDigest struct {
	alertService AlertServiceInterface
	logger       *zap.Logger
	timeout      time.Duration
}

func NewAlertDigest(alertService AlertServiceInterface, logger *zap.Logger) *AlertDigest {
	return &AlertDigest{alertService: alertService, logger: logger, timeout: time.Minute}
}

// Run evaluates once.
func (d *AlertDigest) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.alertService.Evaluate(ctx)
	if err != nil {
		d.logger.Error("alert digest failed", zap.Error(err))
		return err
	}
	d.logger.Info("alert digest",
		zap.Int("calibration_due", len(res.CalibrationDue)),
		zap.Int("document_expired", len(res.DocumentExpired)),
		zap.Int("calibration_stale", len(res.CalibrationStale)),
	)
	return nil
}

// Schedule returns a started cron running the digest at spec. An empty spec
// disables the digest and returns nil. A run still in progress makes the next
// one skip.
func (d *AlertDigest) Schedule(spec string, loc *time.Location) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	cronLogger := cron.PrintfLogger(zap.NewStdLog(d.logger))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(spec, func() { _ = d.Run(context.Background()) }); err != nil {
		return nil, err
	}
	c.Start()
	d.logger.Info("alert digest scheduled", zap.String("spec", spec), zap.String("timezone", loc.String()))
	return c, nil
}
