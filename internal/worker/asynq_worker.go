package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/provider"
	"github.com/tradeboard/internal/queue"
	"github.com/tradeboard/internal/service"

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
	mux.HandleFunc(queue.TaskPurgeRecord, c.handlePurgeRecord)
}

// handlePurgeRecord 物理删除保留期已过的软删除记录。
// 记录可能在等待期间被恢复（deleted_at 清空），此时删除条件不命中即可。
func (c *Consumer) handlePurgeRecord(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_purge_record_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PurgeRecordPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_purge_record_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Table) == "" || strings.TrimSpace(payload.ID) == "" {
		logger.Debugw("worker_purge_record_skip_invalid_payload",
			"table", payload.Table,
			"record_id", payload.ID,
		)
		return nil
	}

	affected, err := c.TableService.PurgeRecord(payload.Table, payload.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownTable) {
			logger.Warnw("worker_purge_record_unknown_table", "table", payload.Table)
			return nil
		}
		logger.Warnw("worker_purge_record_failed",
			"table", payload.Table,
			"record_id", payload.ID,
			"error", err,
		)
		return err
	}
	if affected > 0 {
		logger.Infow("worker_purge_record_done",
			"table", payload.Table,
			"record_id", payload.ID,
		)
	}
	return nil
}
