package rules

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Operator so sánh giá trị fact với giá trị của điều kiện
type Operator string

const (
	OpEqual                Operator = "equal"
	OpNotEqual             Operator = "notEqual"
	OpLessThan             Operator = "lessThan"
	OpLessThanInclusive    Operator = "lessThanInclusive"
	OpGreaterThan          Operator = "greaterThan"
	OpGreaterThanInclusive Operator = "greaterThanInclusive"
	OpIn                   Operator = "in"
	OpNotIn                Operator = "notIn"
	OpContains             Operator = "contains"
	OpDoesNotContain       Operator = "doesNotContain"
)

func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLessThan, OpLessThanInclusive, OpGreaterThan,
		OpGreaterThanInclusive, OpIn, OpNotIn, OpContains, OpDoesNotContain:
		return true
	}
	return false
}

// Apply đánh giá "fact <op> value"
func (o Operator) Apply(fact, value any) (bool, error) {
	switch o {
	case OpEqual:
		return equal(fact, value), nil
	case OpNotEqual:
		return !equal(fact, value), nil
	case OpLessThan, OpLessThanInclusive, OpGreaterThan, OpGreaterThanInclusive:
		a, okA := toFloat(fact)
		b, okB := toFloat(value)
		if !okA || !okB {
			// json-rules-engine trả false khi một vế không phải số
			return false, nil
		}
		switch o {
		case OpLessThan:
			return a < b, nil
		case OpLessThanInclusive:
			return a <= b, nil
		case OpGreaterThan:
			return a > b, nil
		default:
			return a >= b, nil
		}
	case OpIn, OpNotIn:
		list, ok := toSlice(value)
		if !ok {
			return false, fmt.Errorf("%w: %s expects a list value", ErrInvalidCondition, o)
		}
		found := containsValue(list, fact)
		if o == OpIn {
			return found, nil
		}
		return !found, nil
	case OpContains, OpDoesNotContain:
		list, ok := toSlice(fact)
		if !ok {
			return false, nil
		}
		found := containsValue(list, value)
		if o == OpContains {
			return found, nil
		}
		return !found, nil
	}
	return false, fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, o)
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if equal(item, v) {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	list := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}
