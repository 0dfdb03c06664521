package repository

// TableListFilter 查询表记录列表的过滤条件
type TableListFilter struct {
	Page     int
	PageSize int
	Search   string
}
