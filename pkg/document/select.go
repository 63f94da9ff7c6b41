package document

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/ohler55/ojg/jp"
)

// Select evaluates a JSONPath expression against v and returns the matches
// in query order. Maps in the results have their keys sorted, since the
// query engine works on unordered Go maps.
func Select(v Value, expr string) ([]Value, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}

	results := x.Get(v.Interface())
	out := make([]Value, len(results))
	for i, r := range results {
		out[i] = FromInterface(r)
	}
	return out, nil
}

// FromInterface converts plain Go values into a Value. Unknown types become
// strings via fmt.
func FromInterface(x any) Value {
	switch t := x.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case bool:
		return BoolValue(t)
	case string:
		return StringValue(t)
	case int:
		return NumberValue(strconv.Itoa(t))
	case int64:
		return NumberValue(strconv.FormatInt(t, 10))
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return NumberValue(strconv.FormatInt(int64(t), 10))
		}
		return NumberValue(strconv.FormatFloat(t, 'g', -1, 64))
	case []any:
		items := make([]Value, len(t))
		for i, it := range t {
			items[i] = FromInterface(it)
		}
		return ArrayValue(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: FromInterface(t[k])}
		}
		return MapValue(fields...)
	default:
		return StringValue(fmt.Sprint(t))
	}
}
