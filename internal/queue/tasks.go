package queue

import (
	"encoding/json"
	"time"

	"github.com/affiliate-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAffiliateCouponEvent 推广优惠券生命周期审计任务
	TaskAffiliateCouponEvent = constants.TaskAffiliateCouponEvent
)

// AffiliateCouponEventPayload 推广优惠券审计任务载荷
type AffiliateCouponEventPayload struct {
	AffiliateCouponID  uint      `json:"affiliate_coupon_id"`
	AffiliateProfileID uint      `json:"affiliate_profile_id"`
	Action             string    `json:"action"`
	CustomCode         string    `json:"custom_code"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// NewAffiliateCouponEventTask 创建推广优惠券审计任务
func NewAffiliateCouponEventTask(payload AffiliateCouponEventPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAffiliateCouponEvent, body), nil
}

// ParseAffiliateCouponEventPayload 解析审计任务载荷
func ParseAffiliateCouponEventPayload(task *asynq.Task) (AffiliateCouponEventPayload, error) {
	var payload AffiliateCouponEventPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
