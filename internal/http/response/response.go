package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse 列表响应结构，字段名即线上契约，调用方用 total 自行算页数
type ListResponse struct {
	Data  []map[string]interface{} `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// List 分页列表响应
func List(c *gin.Context, data []map[string]interface{}, total int64, page, limit int) {
	if data == nil {
		data = []map[string]interface{}{}
	}
	c.JSON(http.StatusOK, ListResponse{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Row 单条记录响应
func Row(c *gin.Context, row map[string]interface{}) {
	c.JSON(http.StatusOK, row)
}

// Created 创建成功响应
func Created(c *gin.Context, row map[string]interface{}) {
	c.JSON(http.StatusCreated, row)
}

// Deleted 删除成功响应
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// NotFound 404 响应
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

// TooManyRequests 429 响应
func TooManyRequests(c *gin.Context, message string) {
	c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: message})
}

// InternalError 500 响应，错误信息按契约原样透出
func InternalError(c *gin.Context, err error) {
	message := "internal error"
	if err != nil {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
