// internal/query/filter.go
package query

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is a store filter expression. BSON renders it for MongoDB and
// Match evaluates it against a decoded document, with the same semantics
// for the operators supported here.
type Filter interface {
	BSON() bson.M
	Match(doc bson.M) bool
}

// Eq requires Field to equal Value. A list-valued field matches if any
// element equals Value.
type Eq struct {
	Field string
	Value interface{}
}

// Ne requires Field to differ from Value. Documents without the field match.
type Ne struct {
	Field string
	Value interface{}
}

// Regex matches string fields (or any element of a list field) against
// Pattern, case-insensitively.
type Regex struct {
	Field   string
	Pattern string
}

// And requires every clause to match. An empty And matches everything.
type And []Filter

// Or requires at least one clause to match.
type Or []Filter

func (f Eq) BSON() bson.M {
	return bson.M{f.Field: f.Value}
}

func (f Eq) Match(doc bson.M) bool {
	v, ok := lookup(doc, f.Field)
	if !ok {
		return f.Value == nil
	}
	return anyElement(v, func(el interface{}) bool { return equal(el, f.Value) })
}

func (f Ne) BSON() bson.M {
	return bson.M{f.Field: bson.M{"$ne": f.Value}}
}

func (f Ne) Match(doc bson.M) bool {
	return !Eq(f).Match(doc)
}

func (f Regex) BSON() bson.M {
	return bson.M{f.Field: bson.M{"$regex": f.Pattern, "$options": "i"}}
}

func (f Regex) Match(doc bson.M) bool {
	v, ok := lookup(doc, f.Field)
	if !ok {
		return false
	}
	re, err := regexp.Compile("(?i)" + f.Pattern)
	if err != nil {
		return false
	}
	return anyElement(v, func(el interface{}) bool {
		s, ok := el.(string)
		return ok && re.MatchString(s)
	})
}

func (f And) BSON() bson.M {
	if len(f) == 0 {
		return bson.M{}
	}
	if len(f) == 1 {
		return f[0].BSON()
	}
	clauses := make(bson.A, 0, len(f))
	for _, c := range f {
		clauses = append(clauses, c.BSON())
	}
	return bson.M{"$and": clauses}
}

func (f And) Match(doc bson.M) bool {
	for _, c := range f {
		if !c.Match(doc) {
			return false
		}
	}
	return true
}

func (f Or) BSON() bson.M {
	clauses := make(bson.A, 0, len(f))
	for _, c := range f {
		clauses = append(clauses, c.BSON())
	}
	return bson.M{"$or": clauses}
}

func (f Or) Match(doc bson.M) bool {
	for _, c := range f {
		if c.Match(doc) {
			return true
		}
	}
	return false
}

// String renders the filter for log fields.
func String(f Filter) string {
	if f == nil {
		return "{}"
	}
	return fmt.Sprintf("%v", f.BSON())
}

// lookup resolves a dotted path through nested documents.
func lookup(doc bson.M, path string) (interface{}, bool) {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return m, true
	case primitive.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

func anyElement(v interface{}, fn func(interface{}) bool) bool {
	switch list := v.(type) {
	case []string:
		for _, el := range list {
			if fn(el) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, el := range list {
			if fn(el) {
				return true
			}
		}
		return false
	case primitive.A:
		for _, el := range list {
			if fn(el) {
				return true
			}
		}
		return false
	}
	return fn(v)
}

func equal(a, b interface{}) bool {
	if af, ok := number(a); ok {
		bf, ok := number(b)
		return ok && af == bf
	}
	if at, ok := a.(primitive.DateTime); ok {
		a = at.Time()
	}
	if bt, ok := b.(primitive.DateTime); ok {
		b = bt.Time()
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Compare orders the values stored at path in two documents the way a
// single-field sort does for numbers, dates and strings. Missing values
// sort first; values of unlike kinds compare equal.
func Compare(a, b bson.M, path string) int {
	av, aok := lookup(a, path)
	bv, bok := lookup(b, path)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}

	if af, ok := number(av); ok {
		if bf, ok := number(bv); ok {
			return compareOrdered(af, bf)
		}
		return 0
	}
	if at, ok := timeOf(av); ok {
		if bt, ok := timeOf(bv); ok {
			return at.Compare(bt)
		}
		return 0
	}
	if as, ok := av.(string); ok {
		if bs, ok := bv.(string); ok {
			return strings.Compare(as, bs)
		}
	}
	return 0
}

func timeOf(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

func compareOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
