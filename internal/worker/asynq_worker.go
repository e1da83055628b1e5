package worker

import (
	"context"
	"fmt"

	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/provider"
	"github.com/affiliate-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAffiliateCouponEvent, c.handleAffiliateCouponEvent)
}

func (c *Consumer) handleAffiliateCouponEvent(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.AffiliateCouponEventService == nil {
		logger.Debugw("worker_affiliate_coupon_event_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseAffiliateCouponEventPayload(task)
	if err != nil {
		logger.Warnw("worker_affiliate_coupon_event_unmarshal_failed", "error", err)
		// 载荷损坏重试无意义
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.AffiliateCouponID == 0 || payload.Action == "" {
		logger.Debugw("worker_affiliate_coupon_event_skip_invalid_payload",
			"affiliate_coupon_id", payload.AffiliateCouponID,
			"action", payload.Action,
		)
		return nil
	}
	if err := c.AffiliateCouponEventService.Record(payload); err != nil {
		logger.Warnw("worker_affiliate_coupon_event_record_failed",
			"affiliate_coupon_id", payload.AffiliateCouponID,
			"action", payload.Action,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_affiliate_coupon_event_recorded",
		"affiliate_coupon_id", payload.AffiliateCouponID,
		"action", payload.Action,
	)
	return nil
}
