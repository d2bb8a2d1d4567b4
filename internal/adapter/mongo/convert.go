package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/picotan/picotan-backend/internal/domain"
	"github.com/picotan/picotan-backend/internal/query"
)

// toBSON translates a query expression list into a driver filter.
// Clauses are combined as an implicit conjunction on the top-level map.
func toBSON(q query.Query) bson.M {
	out := bson.M{}
	for _, e := range q {
		applyExpr(out, e)
	}
	return out
}

func applyExpr(m bson.M, e query.Expr) {
	switch t := e.(type) {
	case query.Equals:
		m[t.Field] = t.Value
	case query.AnyOf:
		m[t.Field] = bson.M{"$in": t.Values}
	case query.Regex:
		m[t.Field] = bson.Regex{Pattern: t.Pattern, Options: "i"}
	case query.And:
		m["$and"] = exprList(t.Exprs)
	case query.Or:
		m["$or"] = exprList(t.Exprs)
	case query.Raw:
		m[t.Operator] = t.Value
	}
}

func exprList(exprs []query.Expr) bson.A {
	out := make(bson.A, 0, len(exprs))
	for _, e := range exprs {
		sub := bson.M{}
		applyExpr(sub, e)
		out = append(out, sub)
	}
	return out
}

// normalizeDoc converts a decoded BSON document into the neutral
// Document shape: object ids become hex strings, bson.M/bson.A become
// plain maps and slices. Documents cross the validator on the edit
// path, so driver types must not leak out of this package.
func normalizeDoc(m bson.M) domain.Document {
	out := make(domain.Document, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.ObjectID:
		return t.Hex()
	case bson.M:
		return map[string]any(normalizeDoc(t))
	case bson.D:
		sub := make(map[string]any, len(t))
		for _, e := range t {
			sub[e.Key] = normalizeValue(e.Value)
		}
		return sub
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
