package queue

import (
	"encoding/json"

	"github.com/tradeboard/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskPurgeRecord 软删除记录的延迟物理清理任务
const TaskPurgeRecord = constants.TaskPurgeRecord

// PurgeRecordPayload 清理任务载荷
type PurgeRecordPayload struct {
	Table string `json:"table"`
	ID    string `json:"id"`
}

// NewPurgeRecordTask 创建清理任务
func NewPurgeRecordTask(payload PurgeRecordPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPurgeRecord, body), nil
}
