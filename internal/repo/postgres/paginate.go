package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/repo"
)

// maxLimit bounds a single page so a client cannot request the whole table.
const maxLimit = 100

// Join describes one inner join off the root table. LocalKey is a column on
// the root table, ForeignKey a column on the joined table. On, when set,
// replaces the generated condition; use it to chain a join off a previously
// joined table instead of the root.
type Join struct {
	Table      string
	LocalKey   string
	ForeignKey string
	On         string
}

// ListQuery is an ephemeral description of a paginated, joined listing:
// root table, filter, joins, projection and page window.
type ListQuery struct {
	From   string
	Select string
	Joins  []Join
	Where  string
	Args   []any
	Order  string
	Page   int
	Limit  int
}

func clampPage(p int) int {
	if p < 1 {
		return 1
	}
	return p
}

func clampLimit(l int) int {
	if l < 1 {
		return 1
	}
	if l > maxLimit {
		return maxLimit
	}
	return l
}

// List runs q and returns one page plus the total count of matching rows.
// Total and items are computed against the same filtered and joined set, so
// they agree with each other at the time of the call; there is no snapshot
// isolation across concurrent writes. An out-of-range page yields an empty
// item slice and the correct total.
func List[T any](ctx context.Context, db *gorm.DB, q ListQuery) (repo.Page[T], error) {
	page := clampPage(q.Page)
	limit := clampLimit(q.Limit)

	base := db.WithContext(ctx).Table(q.From)
	for _, j := range q.Joins {
		on := j.On
		if on == "" {
			on = fmt.Sprintf("%s.%s = %s.%s", j.Table, j.ForeignKey, q.From, j.LocalKey)
		}
		base = base.Joins(fmt.Sprintf("JOIN %s ON %s", j.Table, on))
	}
	if q.Where != "" {
		base = base.Where(q.Where, q.Args...)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return repo.Page[T]{}, apperr.WrapInternal(err, "count "+q.From)
	}

	order := q.Order
	if order == "" {
		order = q.From + ".created_at DESC"
	}

	items := make([]T, 0, limit)
	err := base.
		Select(q.Select).
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return repo.Page[T]{}, apperr.WrapInternal(err, "list "+q.From)
	}

	return repo.Page[T]{Total: total, Page: page, Limit: limit, Items: items}, nil
}
