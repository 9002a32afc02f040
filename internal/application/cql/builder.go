// Package cql builds and parses the CQL-like query strings used against the storage layer.
//
// The grammar is deliberately small:
//
//	field==value
//	field==(v1 or v2 or v3)
//	clause AND clause, clause OR clause, clause NOT clause, NOT clause
//	( ... )
//	cql.allRecords=1
//	... sortBy field/sort.ascending
package cql

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AllRecords matches every record.
const AllRecords = "cql.allRecords=1"

// Eq renders field==value, quoting the value when needed.
func Eq(field, value string) string {
	return field + "==" + quote(value)
}

// NotEq renders field<>value.
func NotEq(field, value string) string {
	return field + "<>" + quote(value)
}

// EqID renders field==id.
func EqID(field string, id uuid.UUID) string {
	return field + "==" + id.String()
}

// In renders field==(v1 or v2 ...); a single value collapses to field==value.
func In(field string, values []string) string {
	if len(values) == 1 {
		return Eq(field, values[0])
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return fmt.Sprintf("%s==(%s)", field, strings.Join(quoted, " or "))
}

// InIDs renders field==(id1 or id2 ...).
func InIDs(field string, ids []uuid.UUID) string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return In(field, values)
}

// And joins non-empty clauses with AND, parenthesizing compound operands.
func And(clauses ...string) string {
	return join("AND", clauses)
}

// Or joins non-empty clauses with OR, parenthesizing compound operands.
func Or(clauses ...string) string {
	return join("OR", clauses)
}

// SortBy appends a sort clause.
func SortBy(query, field string, ascending bool) string {
	direction := "sort.descending"
	if ascending {
		direction = "sort.ascending"
	}
	if query == "" {
		query = AllRecords
	}
	return fmt.Sprintf("%s sortBy %s/%s", query, field, direction)
}

// ChunkIDs splits ids into groups of at most size elements.
func ChunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// DistinctIDs returns the ids without duplicates, keeping first-seen order.
func DistinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func join(op string, clauses []string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c == "" {
			continue
		}
		parts = append(parts, c)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	for i, p := range parts {
		if isCompound(p) {
			parts[i] = "(" + p + ")"
		}
	}
	return strings.Join(parts, " "+op+" ")
}

func isCompound(clause string) bool {
	upper := strings.ToUpper(clause)
	return strings.Contains(upper, " AND ") || strings.Contains(upper, " OR ") || strings.Contains(upper, " NOT ")
}

func quote(value string) string {
	if value == "" || strings.ContainsAny(value, " ()\"=<>") {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}
