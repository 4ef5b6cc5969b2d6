package queue

import (
	"encoding/json"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderExpire cancels unpaid online-payment orders after the payment
// window closes.
const TaskOrderExpire = constants.TaskOrderExpire

// OrderExpirePayload carries the order to reclaim.
type OrderExpirePayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderExpireTask builds the expiry task.
func NewOrderExpireTask(payload OrderExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderExpire, body), nil
}
