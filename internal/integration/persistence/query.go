package persistence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acquisitions-finance/backend/internal/application/cql"
)

type columnKind int

const (
	kindString columnKind = iota
	kindUUID
	kindDecimal
	kindBool
	kindTime
)

type column struct {
	name string
	kind columnKind
}

// fieldMap translates query indexes into table columns.
type fieldMap struct {
	columns      map[string]column
	defaultOrder string
}

func (f fieldMap) lookup(index string) (column, error) {
	col, ok := f.columns[index]
	if !ok {
		return column{}, fmt.Errorf("%w: unknown index %q", cql.ErrInvalidQuery, index)
	}
	return col, nil
}

// page runs a query against the model's table and returns one page of rows and the
// total number of matching rows. A zero limit only counts.
func page[M any](ctx context.Context, db *gorm.DB, fields fieldMap, query string, offset, limit int) ([]M, int, error) {
	parsed, err := cql.Parse(query)
	if err != nil {
		return nil, 0, err
	}

	where, args, err := fields.where(parsed.Where)
	if err != nil {
		return nil, 0, err
	}

	scoped := db.WithContext(ctx).Model(new(M)).Where(where, args...)

	var total int64
	if err := scoped.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]M, 0)
	if limit <= 0 || total == 0 {
		return rows, int(total), nil
	}

	ordered := scoped
	for _, key := range parsed.Sort {
		col, err := fields.lookup(key.Index)
		if err != nil {
			return nil, 0, err
		}
		ordered = ordered.Order(clause.OrderByColumn{Column: clause.Column{Name: col.name}, Desc: key.Descending})
	}
	if len(parsed.Sort) == 0 && fields.defaultOrder != "" {
		ordered = ordered.Order(fields.defaultOrder)
	}

	if err := ordered.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

// where renders the parsed expression as a parameterized SQL condition.
func (f fieldMap) where(node cql.Node) (string, []interface{}, error) {
	switch n := node.(type) {
	case cql.MatchAll:
		return "1 = 1", nil, nil
	case cql.Clause:
		return f.clause(n)
	case cql.Boolean:
		right, rightArgs, err := f.where(n.Right)
		if err != nil {
			return "", nil, err
		}
		if n.Left == nil {
			return "NOT (" + right + ")", rightArgs, nil
		}
		left, leftArgs, err := f.where(n.Left)
		if err != nil {
			return "", nil, err
		}
		args := append(leftArgs, rightArgs...)
		switch n.Op {
		case cql.OpAnd:
			return "(" + left + " AND " + right + ")", args, nil
		case cql.OpOr:
			return "(" + left + " OR " + right + ")", args, nil
		case cql.OpNot:
			return "(" + left + " AND NOT (" + right + "))", args, nil
		}
		return "", nil, fmt.Errorf("%w: unknown operator %q", cql.ErrInvalidQuery, n.Op)
	}
	return "", nil, fmt.Errorf("%w: unsupported expression", cql.ErrInvalidQuery)
}

func (f fieldMap) clause(c cql.Clause) (string, []interface{}, error) {
	col, err := f.lookup(c.Index)
	if err != nil {
		return "", nil, err
	}

	values := make([]interface{}, len(c.Values))
	for i, raw := range c.Values {
		if values[i], err = convert(col.kind, raw); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", cql.ErrInvalidQuery, c.Index, err)
		}
	}

	name := quoteColumn(col.name)
	switch c.Relation {
	case "==", "=":
		if len(values) == 1 && col.kind == kindString && strings.Contains(c.Values[0], "*") {
			return name + " LIKE ?", []interface{}{strings.ReplaceAll(c.Values[0], "*", "%")}, nil
		}
		if len(values) > 1 {
			return name + " IN ?", []interface{}{values}, nil
		}
		return name + " = ?", values, nil
	case "<>", "!=":
		if len(values) > 1 {
			return name + " NOT IN ?", []interface{}{values}, nil
		}
		return name + " <> ?", values, nil
	case "<", ">", "<=", ">=":
		if len(values) != 1 {
			return "", nil, fmt.Errorf("%w: %s accepts one value", cql.ErrInvalidQuery, c.Relation)
		}
		return name + " " + c.Relation + " ?", values, nil
	}
	return "", nil, fmt.Errorf("%w: unsupported relation %q", cql.ErrInvalidQuery, c.Relation)
}

func convert(kind columnKind, raw string) (interface{}, error) {
	switch kind {
	case kindUUID:
		return uuid.Parse(raw)
	case kindDecimal:
		return decimal.NewFromString(raw)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindTime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse(time.DateOnly, raw)
	}
	return raw, nil
}

func quoteColumn(name string) string {
	return `"` + name + `"`
}
