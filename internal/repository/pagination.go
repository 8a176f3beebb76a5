package repository

import "gorm.io/gorm"

const maxQueryPageSize = 100

// applyPagination 应用分页参数，统一处理非法页码与超限页宽。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxQueryPageSize {
		pageSize = maxQueryPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
