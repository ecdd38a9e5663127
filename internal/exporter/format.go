package exporter

import (
	"fmt"
	"strconv"
)

// FormatValue renders a record cell for CSV output. Nulls become empty
// cells.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case *float64:
		if x == nil {
			return ""
		}
		return formatFloat(*x)
	case int:
		return formatInt(int64(x))
	case int64:
		return formatInt(x)
	case bool:
		return formatBool(x)
	case *bool:
		if x == nil {
			return ""
		}
		return formatBool(*x)
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
