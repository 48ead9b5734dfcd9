package jobs

import (
	"context"
	"time"

	"commerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrderExpiryJob manages the scheduled expiry of stale pending orders.
// Runs every minute to cancel orders whose payment window has elapsed.
type OrderExpiryJob struct {
	handler commands.ExpirePendingOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewOrderExpiryJob creates a job that cancels pending orders older than ttl.
func NewOrderExpiryJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	ttl time.Duration,
	logger *zap.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "order_expiry_job")),
	}
}

// Start begins the expiry job to run every minute.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpirePendingOrdersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.Error("order expiry command construction failed", zap.Error(cmdErr))
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.Error("order expiry run failed", zap.Error(handleErr))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order expiry job started", zap.Duration("ttl", j.ttl))
	return nil
}

// Stop stops the expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.Info("order expiry job stopped")
}
