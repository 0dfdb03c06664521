package repository

import (
	"github.com/tradeboard/internal/constants"
	"github.com/tradeboard/internal/models"
)

// TableDescriptor 表描述符：表名、建表模型、列集合与可检索列。
// 路由里的表名只允许命中这里登记过的描述符，列名同样只来自这里，
// 请求文本永远不会被拼进 SQL 标识符。
type TableDescriptor struct {
	Name          string
	Model         interface{}
	Columns       map[string]struct{}
	SearchColumns []string
}

// HasColumn 判断列是否存在
func (d *TableDescriptor) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.Columns[name]
	return ok
}

// TableRegistry 表注册中心（封闭白名单）
type TableRegistry struct {
	tables map[string]*TableDescriptor
}

// NewTableRegistry 创建注册中心
func NewTableRegistry(descriptors ...*TableDescriptor) *TableRegistry {
	tables := make(map[string]*TableDescriptor, len(descriptors))
	for _, desc := range descriptors {
		if desc == nil || desc.Name == "" {
			continue
		}
		tables[desc.Name] = desc
	}
	return &TableRegistry{tables: tables}
}

// Lookup 查找表描述符
func (r *TableRegistry) Lookup(name string) (*TableDescriptor, bool) {
	if r == nil {
		return nil, false
	}
	desc, ok := r.tables[name]
	return desc, ok
}

// Descriptors 返回全部描述符（保留期清理时遍历用）
func (r *TableRegistry) Descriptors() []*TableDescriptor {
	if r == nil {
		return nil
	}
	result := make([]*TableDescriptor, 0, len(r.tables))
	for _, desc := range r.tables {
		result = append(result, desc)
	}
	return result
}

// DefaultRegistry 板块四张表的注册中心
func DefaultRegistry() *TableRegistry {
	return NewTableRegistry(
		&TableDescriptor{
			Name:  constants.TablePosts,
			Model: models.Post{},
			Columns: columnSet(
				"id", "board_type", "title", "content", "author",
				"item_name", "price", "views", "is_admin",
				"created_at", "updated_at", "deleted_at",
			),
			SearchColumns: []string{"title", "content", "author"},
		},
		&TableDescriptor{
			Name:  constants.TableMembers,
			Model: models.Member{},
			Columns: columnSet(
				"id", "username", "password_hash", "email", "status",
				"is_admin", "created_at", "updated_at", "deleted_at",
			),
		},
		&TableDescriptor{
			Name:  constants.TableTradeRequests,
			Model: models.TradeRequest{},
			Columns: columnSet(
				"id", "post_id", "post_title", "name", "id_number", "phone",
				"game_id", "sell_amount", "buy_amount", "status", "custom_date",
				"created_at", "updated_at", "deleted_at",
			),
		},
		&TableDescriptor{
			Name:  constants.TableComments,
			Model: models.Comment{},
			Columns: columnSet(
				"id", "post_id", "author", "content",
				"created_at", "updated_at", "deleted_at",
			),
			SearchColumns: []string{"content", "author"},
		},
	)
}

func columnSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
