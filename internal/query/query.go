// Package query defines a small closed expression type for store
// queries. The builder constructs expressions from flexible key/value
// filter input; translation to the store's wire format happens in the
// store adapter, so the rest of the code never sees BSON.
package query

import "strings"

// OperatorPrefix marks a filter key as a raw structured sub-query
// ($or, $and, ...) passed through to the store unmodified.
const OperatorPrefix = "$"

// RegexMarker marks a string filter value as a case-insensitive
// pattern match; the marker is stripped before use.
const RegexMarker = "regex:"

// Expr is one clause of a query. The set of implementations is closed:
// Equals, AnyOf, Regex, And, Or, Raw.
type Expr interface {
	isExpr()
}

// Equals matches documents whose field equals the value exactly.
type Equals struct {
	Field string
	Value any
}

// AnyOf matches documents whose field equals any of the values.
type AnyOf struct {
	Field  string
	Values []any
}

// Regex matches documents whose field matches the pattern,
// case-insensitively.
type Regex struct {
	Field   string
	Pattern string
}

// And matches documents satisfying every sub-expression.
type And struct {
	Exprs []Expr
}

// Or matches documents satisfying at least one sub-expression.
type Or struct {
	Exprs []Expr
}

// Raw is a caller-supplied structured sub-query forwarded to the store
// verbatim under the given operator key. It exists so advanced callers
// can compose store-native logic without the builder understanding it.
type Raw struct {
	Operator string
	Value    any
}

func (Equals) isExpr() {}
func (AnyOf) isExpr()  {}
func (Regex) isExpr()  {}
func (And) isExpr()    {}
func (Or) isExpr()     {}
func (Raw) isExpr()    {}

// Query is an implicit conjunction of clauses.
type Query []Expr

// BuildSearch translates flexible filter input into a Query. Precedence
// per key:
//  1. keys starting with the operator prefix pass through as Raw
//  2. list values become AnyOf
//  3. string values with the regex marker become Regex (marker stripped)
//  4. anything else becomes Equals
//
// An empty filter map yields an empty Query, which matches everything.
func BuildSearch(filters map[string]any) Query {
	q := make(Query, 0, len(filters))
	for key, value := range filters {
		switch {
		case strings.HasPrefix(key, OperatorPrefix):
			q = append(q, Raw{Operator: key, Value: value})
		default:
			q = append(q, buildValue(key, value))
		}
	}
	return q
}

func buildValue(key string, value any) Expr {
	switch v := value.(type) {
	case []any:
		return AnyOf{Field: key, Values: v}
	case []string:
		vals := make([]any, len(v))
		for i, s := range v {
			vals[i] = s
		}
		return AnyOf{Field: key, Values: vals}
	case string:
		if strings.HasPrefix(v, RegexMarker) {
			return Regex{Field: key, Pattern: strings.TrimPrefix(v, RegexMarker)}
		}
		return Equals{Field: key, Value: v}
	default:
		return Equals{Field: key, Value: value}
	}
}
