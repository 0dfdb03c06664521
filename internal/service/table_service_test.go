package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tradeboard/internal/constants"
	"github.com/tradeboard/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTableServiceTest(t *testing.T) (*TableService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:table_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	registry := repository.DefaultRegistry()
	for _, desc := range registry.Descriptors() {
		if err := db.AutoMigrate(desc.Model); err != nil {
			t.Fatalf("migrate %s failed: %v", desc.Name, err)
		}
	}
	svc := NewTableService(registry, repository.NewTableRepository(db), nil, time.Hour)
	return svc, db
}

func asInt64(t *testing.T, value interface{}) int64 {
	t.Helper()
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		t.Fatalf("value %v (%T) is not numeric", value, value)
		return 0
	}
}

func TestCreateFillsIDAndTimestamps(t *testing.T) {
	svc, _ := setupTableServiceTest(t)
	before := time.Now().UnixMilli()

	row, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"board_type": constants.BoardTypeFree,
		"title":      "hello",
		"author":     "alice",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	id, ok := row["id"].(string)
	if !ok || id == "" {
		t.Fatalf("create should assign a non-empty id, got %v", row["id"])
	}
	if asInt64(t, row["created_at"]) < before {
		t.Fatalf("created_at should be filled with current time")
	}
	if asInt64(t, row["updated_at"]) < before {
		t.Fatalf("updated_at should be filled with current time")
	}

	got, err := svc.Get(constants.TablePosts, id)
	if err != nil {
		t.Fatalf("get created row failed: %v", err)
	}
	if got["title"] != "hello" {
		t.Fatalf("title want hello got %v", got["title"])
	}
}

func TestCreateKeepsCallerIDAndCreatedAt(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	row, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"id":         "  caller-id  ",
		"board_type": constants.BoardTypeTrade,
		"title":      "imported",
		"created_at": float64(1234),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row["id"] != "caller-id" {
		t.Fatalf("id want caller-id got %v", row["id"])
	}
	if asInt64(t, row["created_at"]) != 1234 {
		t.Fatalf("created_at want 1234 got %v", row["created_at"])
	}
	if asInt64(t, row["updated_at"]) == 1234 {
		t.Fatalf("updated_at should not inherit caller created_at")
	}
}

func TestCreateDropsUnknownColumns(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	row, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"title":             "safe",
		"board_type":        constants.BoardTypeFree,
		"not_a_column":      "ignored",
		"id; DROP TABLE xx": "ignored",
		"views":             float64(7),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok := row["not_a_column"]; ok {
		t.Fatalf("unknown column should be dropped before insert")
	}
	if _, ok := row["id; DROP TABLE xx"]; ok {
		t.Fatalf("hostile key should be dropped before insert")
	}
	if v, ok := row["views"].(int64); !ok || v != 7 {
		t.Fatalf("whole JSON number should be stored as int64, got %v (%T)", row["views"], row["views"])
	}
}

func TestUpdateProtectsImmutableColumns(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	created, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"board_type": constants.BoardTypeFree,
		"title":      "original",
		"created_at": float64(1000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created["id"].(string)

	updated, err := svc.Update(constants.TablePosts, id, map[string]interface{}{
		"id":         "hijacked",
		"created_at": float64(9999),
		"title":      "edited",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated["id"] != id {
		t.Fatalf("id must stay %s got %v", id, updated["id"])
	}
	if asInt64(t, updated["created_at"]) != 1000 {
		t.Fatalf("created_at must stay 1000 got %v", updated["created_at"])
	}
	if updated["title"] != "edited" {
		t.Fatalf("title want edited got %v", updated["title"])
	}
}

func TestUpdateEmptyBodyOnlyTouchesUpdatedAt(t *testing.T) {
	svc, db := setupTableServiceTest(t)

	created, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"board_type": constants.BoardTypeFree,
		"title":      "untouched",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created["id"].(string)

	// 先把 updated_at 拨回过去，便于观察触碰语义
	if err := db.Table(constants.TablePosts).Where("id = ?", id).
		Update("updated_at", int64(1000)).Error; err != nil {
		t.Fatalf("rewind updated_at failed: %v", err)
	}

	updated, err := svc.Update(constants.TablePosts, id, map[string]interface{}{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if updated["title"] != "untouched" {
		t.Fatalf("empty update must not change title, got %v", updated["title"])
	}
	if asInt64(t, updated["updated_at"]) <= 1000 {
		t.Fatalf("empty update should refresh updated_at, got %v", updated["updated_at"])
	}
}

func TestUpdateMissingRecordReturnsNotFound(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	_, err := svc.Update(constants.TablePosts, "no-such-id", map[string]interface{}{"title": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestDeleteHidesRecordFromReads(t *testing.T) {
	svc, db := setupTableServiceTest(t)

	created, err := svc.Create(constants.TablePosts, map[string]interface{}{
		"board_type": constants.BoardTypeFree,
		"title":      "doomed",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created["id"].(string)

	if err := svc.Delete(constants.TablePosts, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.Get(constants.TablePosts, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete want ErrNotFound got %v", err)
	}

	rows, total, err := svc.List(constants.TablePosts, 1, 20, "")
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("deleted row must not appear in list, total=%d rows=%d", total, len(rows))
	}

	// 行还在库里，只是打了标记
	var count int64
	if err := db.Table(constants.TablePosts).Where("id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count after delete failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("soft deleted row should remain in table, count=%d", count)
	}
}

func TestUnknownTableRejectedOnEveryOperation(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	if _, _, err := svc.List("users", 1, 20, ""); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("list want ErrUnknownTable got %v", err)
	}
	if _, err := svc.Get("users", "x"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("get want ErrUnknownTable got %v", err)
	}
	if _, err := svc.Create("users", map[string]interface{}{}); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("create want ErrUnknownTable got %v", err)
	}
	if _, err := svc.Update("users", "x", map[string]interface{}{}); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("update want ErrUnknownTable got %v", err)
	}
	if err := svc.Delete("users", "x"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("delete want ErrUnknownTable got %v", err)
	}
}

func TestTradeStatusNormalizedOnWrite(t *testing.T) {
	svc, _ := setupTableServiceTest(t)

	created, err := svc.Create(constants.TableTradeRequests, map[string]interface{}{
		"name":   "tester",
		"status": constants.TradeStatusCompletedKo,
	})
	if err != nil {
		t.Fatalf("create trade request failed: %v", err)
	}
	if created["status"] != constants.TradeStatusCompleted {
		t.Fatalf("status want %s got %v", constants.TradeStatusCompleted, created["status"])
	}

	id := created["id"].(string)
	updated, err := svc.Update(constants.TableTradeRequests, id, map[string]interface{}{
		"status": constants.TradeStatusPendingKo,
	})
	if err != nil {
		t.Fatalf("update trade request failed: %v", err)
	}
	if updated["status"] != constants.TradeStatusPending {
		t.Fatalf("status want %s got %v", constants.TradeStatusPending, updated["status"])
	}
}

func TestPurgeExpiredRemovesOnlyStaleDeletes(t *testing.T) {
	svc, db := setupTableServiceTest(t)

	stale, err := svc.Create(constants.TablePosts, map[string]interface{}{"title": "stale"})
	if err != nil {
		t.Fatalf("create stale failed: %v", err)
	}
	fresh, err := svc.Create(constants.TablePosts, map[string]interface{}{"title": "fresh"})
	if err != nil {
		t.Fatalf("create fresh failed: %v", err)
	}

	staleID := stale["id"].(string)
	freshID := fresh["id"].(string)

	// stale 删除时间早于保留期（一小时），fresh 刚刚删除
	staleDeletedAt := time.Now().Add(-2 * time.Hour).UnixMilli()
	if err := db.Table(constants.TablePosts).Where("id = ?", staleID).
		Update("deleted_at", staleDeletedAt).Error; err != nil {
		t.Fatalf("mark stale deleted failed: %v", err)
	}
	if err := svc.Delete(constants.TablePosts, freshID); err != nil {
		t.Fatalf("delete fresh failed: %v", err)
	}

	purged := svc.PurgeExpired()
	if purged != 1 {
		t.Fatalf("purged want 1 got %d", purged)
	}

	var count int64
	if err := db.Table(constants.TablePosts).Where("id = ?", staleID).Count(&count).Error; err != nil {
		t.Fatalf("count stale failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("stale delete should be purged")
	}
	if err := db.Table(constants.TablePosts).Where("id = ?", freshID).Count(&count).Error; err != nil {
		t.Fatalf("count fresh failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("fresh delete should survive the sweep")
	}
}
