package tables

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tradeboard/internal/http/handlers/shared"
	"github.com/tradeboard/internal/http/response"
	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/provider"
	"github.com/tradeboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 通用表 API 处理器
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// ListRecords 列表查询（分页 + 检索）
func (h *Handler) ListRecords(c *gin.Context) {
	table := c.Param("table")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = shared.NormalizePagination(page, limit)
	search := strings.TrimSpace(c.Query("search"))

	rows, total, err := h.TableService.List(table, page, limit, search)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.List(c, rows, total, page, limit)
}

// GetRecord 单条查询
func (h *Handler) GetRecord(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")

	row, err := h.TableService.Get(table, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Row(c, row)
}

// CreateRecord 创建记录
func (h *Handler) CreateRecord(c *gin.Context) {
	table := c.Param("table")
	body, err := bindBody(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	row, err := h.TableService.Create(table, body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, row)
}

// UpdateRecord 更新记录，PUT 与 PATCH 共用
func (h *Handler) UpdateRecord(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")
	body, err := bindBody(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	row, err := h.TableService.Update(table, id, body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Row(c, row)
}

// DeleteRecord 软删除记录
func (h *Handler) DeleteRecord(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")

	if err := h.TableService.Delete(table, id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Deleted(c)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().UnixMilli()})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c)
		return
	}
	logger.Errorw("table_request_failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	response.InternalError(c, err)
}

// bindBody 解析 JSON 请求体；空请求体按空对象处理（PATCH 触碰语义）
func bindBody(c *gin.Context) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}
	return body, nil
}
