package delivery

import (
	"strconv"

	"logistics/internal/entities"
	"logistics/internal/service/filters"
)

const (
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

const (
	defaultPageSize uint64 = 20
	maxPageSize     uint64 = 100
)

type PaginationConfig struct {
	DefaultPageSize uint64
	MaxPageSize     uint64
}

func (c PaginationConfig) withDefaults() PaginationConfig {
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = defaultPageSize
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = maxPageSize
	}
	if c.DefaultPageSize > c.MaxPageSize {
		c.DefaultPageSize = c.MaxPageSize
	}
	return c
}

// paginate разбирает page и page_size так же терпимо, как фильтры:
// некорректное значение заменяется значением по умолчанию.
func (c PaginationConfig) paginate(p filters.Params) entities.Pagination {
	page := entities.Pagination{Page: 1, PageSize: c.DefaultPageSize}

	if n, ok := positive(p[ParamPage]); ok {
		page.Page = n
	}
	if n, ok := positive(p[ParamPageSize]); ok {
		page.PageSize = min(n, c.MaxPageSize)
	}
	return page
}

func positive(raw string) (uint64, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
