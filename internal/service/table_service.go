package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tradeboard/internal/constants"
	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/queue"
	"github.com/tradeboard/internal/repository"

	"github.com/google/uuid"
)

// TableService 通用表 CRUD 业务服务。
// 表名先经注册白名单解析为描述符，请求体的键集合再按描述符的列集合过滤，
// 之后才会交给仓库层拼 SQL。
type TableService struct {
	registry    *repository.TableRegistry
	repo        repository.TableRepository
	queueClient *queue.Client
	retention   time.Duration
}

// NewTableService 创建通用表服务；retention 为软删除数据的保留期，
// queueClient 可为 nil（此时只靠 worker 的周期清扫做物理清理）。
func NewTableService(
	registry *repository.TableRegistry,
	repo repository.TableRepository,
	queueClient *queue.Client,
	retention time.Duration,
) *TableService {
	return &TableService{
		registry:    registry,
		repo:        repo,
		queueClient: queueClient,
		retention:   retention,
	}
}

// List 分页列表，total 与列表同一过滤口径
func (s *TableService) List(table string, page, pageSize int, search string) ([]map[string]interface{}, int64, error) {
	desc, err := s.lookup(table)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(desc, repository.TableListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	})
}

// Get 获取单条存活记录
func (s *TableService) Get(table, id string) (map[string]interface{}, error) {
	desc, err := s.lookup(table)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.Get(desc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

// Create 创建记录：调用方没给 id 就生成 UUID，created_at 尊重调用方，
// updated_at 一律取当前时间，键集合按列白名单过滤后原样入库。
func (s *TableService) Create(table string, body map[string]interface{}) (map[string]interface{}, error) {
	desc, err := s.lookup(table)
	if err != nil {
		return nil, err
	}

	row := s.sanitizeBody(desc, body)
	row["id"] = resolveRowID(row)
	now := time.Now().UnixMilli()
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	row["updated_at"] = now
	normalizeRowStatus(desc, row)

	if err := s.repo.Insert(desc, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Update 更新记录：id 与 created_at 创建后不可变，先从请求体剥掉；
// 空请求体退化为只触碰 updated_at。PUT 与 PATCH 共用该语义。
func (s *TableService) Update(table, id string, body map[string]interface{}) (map[string]interface{}, error) {
	desc, err := s.lookup(table)
	if err != nil {
		return nil, err
	}

	values := s.sanitizeBody(desc, body)
	delete(values, "id")
	delete(values, "created_at")
	values["updated_at"] = time.Now().UnixMilli()
	normalizeRowStatus(desc, values)

	if err := s.repo.Update(desc, id, values); err != nil {
		return nil, err
	}

	row, err := s.repo.GetAny(desc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

// Delete 软删除：只打 deleted_at 标记，物理删除交给保留期清理。
// 启用队列时顺手投递一个延迟到保留期之后的清理任务。
func (s *TableService) Delete(table, id string) error {
	desc, err := s.lookup(table)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(desc, id, time.Now().UnixMilli()); err != nil {
		return err
	}

	if s.queueClient.Enabled() && s.retention > 0 {
		payload := queue.PurgeRecordPayload{Table: desc.Name, ID: id}
		if err := s.queueClient.EnqueuePurgeRecord(payload, s.retention); err != nil {
			logger.Warnw("table_purge_enqueue_failed",
				"table", desc.Name,
				"record_id", id,
				"error", err,
			)
		}
	}
	return nil
}

// PurgeRecord 物理删除一条已软删除的记录（worker 任务回调）
func (s *TableService) PurgeRecord(table, id string) (int64, error) {
	desc, err := s.lookup(table)
	if err != nil {
		return 0, err
	}
	return s.repo.PurgeRecord(desc, id)
}

// PurgeExpired 清扫所有表中软删除超过保留期的记录，返回清理条数
func (s *TableService) PurgeExpired() int64 {
	if s.retention <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.retention).UnixMilli()
	var purged int64
	for _, desc := range s.registry.Descriptors() {
		affected, err := s.repo.PurgeDeletedBefore(desc, cutoff)
		if err != nil {
			logger.Warnw("table_purge_sweep_failed", "table", desc.Name, "error", err)
			continue
		}
		if affected > 0 {
			logger.Infow("table_purge_sweep", "table", desc.Name, "purged", affected)
		}
		purged += affected
	}
	return purged
}

func (s *TableService) lookup(table string) (*repository.TableDescriptor, error) {
	desc, ok := s.registry.Lookup(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return desc, nil
}

// sanitizeBody 过滤掉列白名单之外的键，并做 JSON 数值整型回正
func (s *TableService) sanitizeBody(desc *repository.TableDescriptor, body map[string]interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(body)+3)
	for key, value := range body {
		if !desc.HasColumn(key) {
			logger.Debugw("table_body_key_dropped", "table", desc.Name, "key", key)
			continue
		}
		row[key] = coerceValue(value)
	}
	return row
}

// coerceValue JSON 数字统一解析成 float64，整值回正为 int64，
// 避免整型列（浏览量、金额、毫秒时间戳）在 postgres 上绑定失败。
func coerceValue(value interface{}) interface{} {
	f, ok := value.(float64)
	if !ok {
		return value
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return value
}

// normalizeRowStatus 交易申请表的 status 归一到规范枚举
func normalizeRowStatus(desc *repository.TableDescriptor, row map[string]interface{}) {
	if desc.Name != constants.TableTradeRequests {
		return
	}
	raw, ok := row["status"]
	if !ok {
		return
	}
	if status, ok := raw.(string); ok {
		row["status"] = NormalizeTradeStatus(status)
	}
}

func resolveRowID(row map[string]interface{}) string {
	if raw, ok := row["id"]; ok {
		if id, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				return trimmed
			}
		}
	}
	return uuid.NewString()
}
