// Package pagination parses list requests and implements keyset (cursor) and
// offset windows over rows sorted newest first.
package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

const (
	// MaxLimit caps the page size a client may ask for.
	MaxLimit = 100

	SortCreatedAt = "created_at"

	fallbackSize = 10
	fallbackPage = 1
)

// sortColumns maps accepted sort keys to the column they order by.
var sortColumns = map[string]string{
	"created_at": SortCreatedAt,
	"createdAt":  SortCreatedAt,
}

// Cursor selects up to Limit rows of OwnerID strictly older than LastCursor,
// or the newest rows when LastCursor is nil. The cursor is a bare timestamp,
// so rows sharing the created_at of a page's last row are not repeated on
// the next page; stores keep created_at at microsecond precision to make
// such ties rare.
type Cursor struct {
	OwnerID    string
	Limit      int
	LastCursor *time.Time
	SortBy     string
}

// Offset selects the rows [(Page-1)*Limit, Page*Limit) of OwnerID.
type Offset struct {
	OwnerID string
	Page    int
	Limit   int
	SortBy  string
}

// Skip is the number of rows before the page. It saturates at math.MaxInt
// for pages too far out to count, which selects nothing.
func (o Offset) Skip() int {
	return skip(o.Page, o.Limit)
}

func skip(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Defaults supplies the page size and first page used when a request omits
// them or sends values below 1.
type Defaults struct {
	Size int
	Page int
}

// SortColumn resolves a sort key to its column. An empty key sorts by
// creation time.
func SortColumn(key string) (string, error) {
	if key == "" {
		return SortCreatedAt, nil
	}
	col, ok := sortColumns[key]
	if !ok {
		return "", fmt.Errorf("%w: sort key %q is not allowed", common.ErrorValidation, key)
	}
	return col, nil
}

// ParseCursor reads limit, lastCursor and sort from q.
func (d Defaults) ParseCursor(ownerID string, q url.Values) (Cursor, error) {
	col, err := SortColumn(q.Get("sort"))
	if err != nil {
		return Cursor{}, err
	}

	c := Cursor{OwnerID: ownerID, Limit: d.limit(q.Get("limit")), SortBy: col}

	if raw := q.Get("lastCursor"); raw != "" {
		ts, err := ParseTime(raw)
		if err != nil {
			return Cursor{}, err
		}
		c.LastCursor = &ts
	}
	return c, nil
}

// ParseOffset reads page, limit and sort from q.
func (d Defaults) ParseOffset(ownerID string, q url.Values) (Offset, error) {
	col, err := SortColumn(q.Get("sort"))
	if err != nil {
		return Offset{}, err
	}

	return Offset{
		OwnerID: ownerID,
		Page:    positiveOr(q.Get("page"), d.page()),
		Limit:   d.limit(q.Get("limit")),
		SortBy:  col,
	}, nil
}

// ParseTime accepts RFC 3339 timestamps with optional fractional seconds.
func ParseTime(raw string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: lastCursor must be an RFC 3339 timestamp", common.ErrorValidation)
	}
	return ts.UTC(), nil
}

// FormatTime renders a cursor the way ParseTime reads it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (d Defaults) limit(raw string) int {
	size := d.Size
	if size < 1 {
		size = fallbackSize
	}
	return min(positiveOr(raw, size), MaxLimit)
}

func (d Defaults) page() int {
	if d.Page < 1 {
		return fallbackPage
	}
	return d.Page
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
