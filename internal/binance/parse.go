package binance

import (
	"encoding/json"
	"strconv"
	"strings"
)

// floatFromAny coerces the kline payload's mixed field types: prices and
// volumes are decimal strings, timestamps plain JSON numbers.
func floatFromAny(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
