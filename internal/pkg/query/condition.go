package query

import "fmt"

// Condition renders one WHERE predicate. paramIndex is the next free positional parameter number;
// implementations name their parameters @p<paramIndex>, @p<paramIndex+1>, ...
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type comparison struct {
	field string
	op    string
	value interface{}
}

func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

// Eq renders "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Lt renders "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<", value: value}
}

// Gte renders "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

type nullCheck struct {
	field string
	not   bool
}

func (c *nullCheck) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return c.field + " IS NOT NULL", map[string]interface{}{}
	}
	return c.field + " IS NULL", map[string]interface{}{}
}

// IsNull renders "field IS NULL".
func IsNull(field string) Condition {
	return &nullCheck{field: field}
}

// IsNotNull renders "field IS NOT NULL".
func IsNotNull(field string) Condition {
	return &nullCheck{field: field, not: true}
}
