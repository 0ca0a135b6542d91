package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stashbox/core/internal/pkg/response"
)

// Defaults sized for stash browsing; item lists are skimmed in small pages.
const (
	defaultSize = 10
	maxSize     = 100
)

// Query holds a validated page request.
type Query struct {
	Page int
	Size int
}

// FromContext reads page/size from the query string. Missing or malformed
// values fall back to the first page at default size; size is clamped.
func FromContext(c *gin.Context) Query {
	page := atoi(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	return Query{
		Page: page,
		Size: clamp(atoi(c.Query("size"), defaultSize), 1, maxSize),
	}
}

func (q Query) offset() int { return (q.Page - 1) * q.Size }

// meta derives the list envelope metadata from the filtered row count.
func (q Query) meta(total int64) response.Pagination {
	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}
}

// Paginate counts the filtered rows, loads the requested page into dest and
// returns the metadata response.Paged expects alongside it.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	return q.meta(total), nil
}

func atoi(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
