package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction is an ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Builder assembles parameterised Spanner SELECT statements. Every method returns a new Builder,
// so a base query can be shared and specialised.
type Builder struct {
	table      string
	columns    []string
	conditions []Condition
	groupBy    []string
	orderCol   string
	orderDir   Direction
	limit      int64
}

// From starts a query on table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns (or expressions) to the projection.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.columns = append(nb.columns, columns...)
	return nb
}

// Where ANDs a condition onto the query.
func (b *Builder) Where(c Condition) *Builder {
	nb := b.clone()
	nb.conditions = append(nb.conditions, c)
	return nb
}

// GroupBy sets the GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	nb := b.clone()
	nb.groupBy = append([]string(nil), columns...)
	return nb
}

// OrderBy sets the sort column and direction.
func (b *Builder) OrderBy(column string, dir Direction) *Builder {
	nb := b.clone()
	nb.orderCol = column
	nb.orderDir = dir
	return nb
}

// Limit caps the number of returned rows. Zero means no limit.
func (b *Builder) Limit(n int64) *Builder {
	nb := b.clone()
	nb.limit = n
	return nb
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sb strings.Builder
	params := make(map[string]interface{})

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.conditions) > 0 {
		parts := make([]string, 0, len(b.conditions))
		next := 0
		for _, c := range b.conditions {
			fragment, cp := c.SQL(next)
			parts = append(parts, fragment)
			for k, v := range cp {
				params[k] = v
			}
			next += len(cp)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if b.orderCol != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderCol)
		if b.orderDir == Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	if b.limit > 0 {
		sb.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}

	return spanner.Statement{SQL: sb.String(), Params: params}
}

// String renders the statement for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:      b.table,
		columns:    append([]string(nil), b.columns...),
		conditions: append([]Condition(nil), b.conditions...),
		groupBy:    append([]string(nil), b.groupBy...),
		orderCol:   b.orderCol,
		orderDir:   b.orderDir,
		limit:      b.limit,
	}
}
