package shared

// NormalizePagination 归一化分页参数。
// limit 不设上限：管理端拉评论时会一次请求 limit=1000。
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}
