package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/queue"
	"github.com/affiliate-next/internal/repository"
)

// AffiliateCouponEventService 推广优惠券生命周期审计
// 队列可用时异步入队，由 worker 落库；否则同步写入
type AffiliateCouponEventService struct {
	repo        repository.AffiliateCouponEventRepository
	queueClient *queue.Client
}

// NewAffiliateCouponEventService 创建审计服务
func NewAffiliateCouponEventService(repo repository.AffiliateCouponEventRepository, queueClient *queue.Client) *AffiliateCouponEventService {
	return &AffiliateCouponEventService{repo: repo, queueClient: queueClient}
}

// Emit 记录一次生命周期动作，失败只记日志，不影响主流程
func (s *AffiliateCouponEventService) Emit(ctx context.Context, coupon *models.AffiliateCoupon, action string, occurredAt time.Time) {
	if s == nil || coupon == nil || coupon.ID == 0 {
		return
	}
	payload := queue.AffiliateCouponEventPayload{
		AffiliateCouponID:  coupon.ID,
		AffiliateProfileID: coupon.AffiliateProfileID,
		Action:             action,
		CustomCode:         coupon.CustomCode,
		OccurredAt:         occurredAt,
	}
	log := logger.FromContext(ctx)

	if s.queueClient != nil {
		err := s.queueClient.EnqueueAffiliateCouponEvent(ctx, payload)
		if err == nil {
			return
		}
		if !errors.Is(err, queue.ErrQueueDisabled) {
			log.Warnw("affiliate_coupon_event_enqueue_failed",
				"affiliate_coupon_id", coupon.ID,
				"action", action,
				"error", err,
			)
		}
	}
	if err := s.Record(payload); err != nil {
		log.Errorw("affiliate_coupon_event_record_failed",
			"affiliate_coupon_id", coupon.ID,
			"action", action,
			"error", err,
		)
	}
}

// Record 写入审计记录（worker 与同步降级共用）
func (s *AffiliateCouponEventService) Record(payload queue.AffiliateCouponEventPayload) error {
	if payload.AffiliateCouponID == 0 || strings.TrimSpace(payload.Action) == "" {
		return nil
	}
	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return s.repo.Create(&models.AffiliateCouponEvent{
		AffiliateCouponID:  payload.AffiliateCouponID,
		AffiliateProfileID: payload.AffiliateProfileID,
		Action:             strings.TrimSpace(payload.Action),
		CustomCode:         payload.CustomCode,
		OccurredAt:         occurredAt,
	})
}

// List 审计记录列表
func (s *AffiliateCouponEventService) List(filter repository.AffiliateCouponEventListFilter) ([]models.AffiliateCouponEvent, int64, error) {
	events, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, storageError(err)
	}
	return events, total, nil
}
