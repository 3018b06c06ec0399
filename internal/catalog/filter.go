// internal/catalog/filter.go
package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Translates a query-parameter bag into database conditions:
// comparison-operator suffixes (price[gte]=10, stock[gt]=0,
// genre[in]=rpg,indie) are rewritten to SQL operators, enumerable
// fields match case-insensitively against the whole value, and the
// search key becomes an unanchored case-insensitive substring match.
// Pagination, sort and field-selection keys are stripped before
// translation.

var reservedKeys = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"order":  true,
	"select": true,
	"search": true,
}

var operatorSQL = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

var keyWithOperator = regexp.MustCompile(`^([a-z_]+)\[(gt|gte|lt|lte|in)\]$`)

// Condition is one translated WHERE clause.
type Condition struct {
	Expr string
	Args []interface{}
}

// Options declares which query keys a listing endpoint accepts and how
// each one matches. Unknown keys are dropped, never passed through.
type Options struct {
	// Fields maps a plain query key to its column for equality and
	// comparison-operator matching.
	Fields map[string]string
	// SetFields maps a query key to a scalar column matched as a
	// case-insensitive exact value (scalar-or-CSV input becomes a set).
	SetFields map[string]string
	// ArraySetFields is SetFields for text[] columns: any element of
	// the array may match.
	ArraySetFields map[string]string
	// SearchColumns are matched by unanchored case-insensitive
	// substring when the search key is present. Array columns must be
	// pre-wrapped, e.g. "array_to_string(tags, ' ')".
	SearchColumns []string
}

// Translate converts the query bag into conditions. Keys are
// processed in sorted order so output is deterministic.
func Translate(values url.Values, opts Options) []Condition {
	var conds []Condition

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}

		field, op := splitOperator(key)

		if column, ok := opts.Fields[field]; ok {
			if cond, ok := fieldCondition(column, op, vals[0]); ok {
				conds = append(conds, cond)
			}
			continue
		}

		if column, ok := opts.SetFields[field]; ok {
			conds = append(conds, setCondition(column, collectValues(vals), false))
			continue
		}

		if column, ok := opts.ArraySetFields[field]; ok {
			conds = append(conds, setCondition(column, collectValues(vals), true))
		}
	}

	if search := strings.TrimSpace(values.Get("search")); search != "" && len(opts.SearchColumns) > 0 {
		conds = append(conds, searchCondition(opts.SearchColumns, search))
	}

	return conds
}

// Apply attaches every translated condition to the query.
func Apply(db *gorm.DB, values url.Values, opts Options) *gorm.DB {
	for _, cond := range Translate(values, opts) {
		db = db.Where(cond.Expr, cond.Args...)
	}
	return db
}

func splitOperator(key string) (field, op string) {
	if m := keyWithOperator.FindStringSubmatch(key); m != nil {
		return m[1], m[2]
	}
	return key, ""
}

func fieldCondition(column, op, value string) (Condition, bool) {
	switch op {
	case "":
		return Condition{Expr: column + " = ?", Args: []interface{}{value}}, true
	case "in":
		return Condition{
			Expr: column + " IN ?",
			Args: []interface{}{splitCSV(value)},
		}, true
	default:
		sqlOp, ok := operatorSQL[op]
		if !ok {
			return Condition{}, false
		}
		return Condition{
			Expr: fmt.Sprintf("%s %s ?", column, sqlOp),
			Args: []interface{}{value},
		}, true
	}
}

// setCondition matches each candidate value whole and
// case-insensitively: every value becomes an anchored pattern, so
// "Action" matches "action" but never "action-adventure".
func setCondition(column string, values []string, isArray bool) Condition {
	patterns := make([]string, 0, len(values))
	for _, v := range values {
		patterns = append(patterns, "^"+regexp.QuoteMeta(v)+"$")
	}

	if isArray {
		return Condition{
			Expr: fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS elem WHERE elem ~* ANY(?))", column),
			Args: []interface{}{pq.Array(patterns)},
		}
	}
	return Condition{
		Expr: column + " ~* ANY(?)",
		Args: []interface{}{pq.Array(patterns)},
	}
}

func searchCondition(columns []string, term string) Condition {
	pattern := "%" + escapeLike(term) + "%"
	exprs := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		exprs = append(exprs, col+" ILIKE ?")
		args = append(args, pattern)
	}
	return Condition{
		Expr: "(" + strings.Join(exprs, " OR ") + ")",
		Args: args,
	}
}

// collectValues flattens repeated keys and CSV values into one set.
func collectValues(vals []string) []string {
	var out []string
	for _, v := range vals {
		out = append(out, splitCSV(v)...)
	}
	return out
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
