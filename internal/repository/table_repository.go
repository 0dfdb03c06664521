package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// TableRepository 通用表数据访问接口，行以 map 形式进出。
type TableRepository interface {
	List(desc *TableDescriptor, filter TableListFilter) ([]map[string]interface{}, int64, error)
	Get(desc *TableDescriptor, id string) (map[string]interface{}, error)
	GetAny(desc *TableDescriptor, id string) (map[string]interface{}, error)
	Insert(desc *TableDescriptor, row map[string]interface{}) error
	Update(desc *TableDescriptor, id string, values map[string]interface{}) error
	SoftDelete(desc *TableDescriptor, id string, deletedAt int64) error
	PurgeRecord(desc *TableDescriptor, id string) (int64, error)
	PurgeDeletedBefore(desc *TableDescriptor, cutoff int64) (int64, error)
}

// GormTableRepository GORM 实现
type GormTableRepository struct {
	db *gorm.DB
}

// NewTableRepository 创建通用表仓库
func NewTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// List 按 created_at 倒序返回存活记录，total 与列表使用同一过滤条件
func (r *GormTableRepository) List(desc *TableDescriptor, filter TableListFilter) ([]map[string]interface{}, int64, error) {
	search := strings.TrimSpace(filter.Search)
	if search != "" && len(desc.SearchColumns) == 0 {
		// 该表没有任何可检索列，非空检索视为无匹配
		return []map[string]interface{}{}, 0, nil
	}

	query := r.db.Table(desc.Name).Where("deleted_at IS NULL")
	if search != "" {
		condition, args := buildSearchCondition(desc.SearchColumns, search)
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	rows := make([]map[string]interface{}, 0)
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Get 获取单条存活记录，不存在返回 nil
func (r *GormTableRepository) Get(desc *TableDescriptor, id string) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := r.db.Table(desc.Name).
		Where("id = ? AND deleted_at IS NULL", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// GetAny 获取单条记录，不排除软删除行（更新后的回读用）
func (r *GormTableRepository) GetAny(desc *TableDescriptor, id string) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := r.db.Table(desc.Name).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// Insert 插入一行，键集合由调用方（service 层白名单过滤后）决定
func (r *GormTableRepository) Insert(desc *TableDescriptor, row map[string]interface{}) error {
	return r.db.Table(desc.Name).Create(&row).Error
}

// Update 更新指定键集合
func (r *GormTableRepository) Update(desc *TableDescriptor, id string, values map[string]interface{}) error {
	return r.db.Table(desc.Name).Where("id = ?", id).Updates(values).Error
}

// SoftDelete 打上软删除标记
func (r *GormTableRepository) SoftDelete(desc *TableDescriptor, id string, deletedAt int64) error {
	return r.db.Table(desc.Name).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": deletedAt}).Error
}

// PurgeRecord 物理删除一条已软删除的记录
func (r *GormTableRepository) PurgeRecord(desc *TableDescriptor, id string) (int64, error) {
	result := r.db.Table(desc.Name).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Delete(desc.Model)
	return result.RowsAffected, result.Error
}

// PurgeDeletedBefore 物理删除软删除时间早于 cutoff 的记录
func (r *GormTableRepository) PurgeDeletedBefore(desc *TableDescriptor, cutoff int64) (int64, error) {
	result := r.db.Table(desc.Name).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(desc.Model)
	return result.RowsAffected, result.Error
}

// buildSearchCondition 由描述符内登记的列名拼接 LIKE 条件，检索词只作为绑定参数
func buildSearchCondition(columns []string, search string) (string, []interface{}) {
	like := "%" + search + "%"
	conditions := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		conditions = append(conditions, column+" LIKE ?")
		args = append(args, like)
	}
	return "(" + strings.Join(conditions, " OR ") + ")", args
}
