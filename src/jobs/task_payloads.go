package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypePruneQuota = "quota:prune"

type PruneQuotaPayload struct {
	KeepDays int `json:"keep_days"`
}

func NewPruneQuotaTask(keepDays int) (*asynq.Task, error) {
	payload, err := json.Marshal(PruneQuotaPayload{KeepDays: keepDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePruneQuota, payload), nil
}
