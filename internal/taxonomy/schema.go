package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// UndeclaredError reports a reference to a column or feature the taxonomy
// does not declare.
type UndeclaredError struct {
	Name string
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("taxonomy: %q is not a declared column", e.Name)
}

// SchemaError reports a table whose header lacks declared columns.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing %d declared column(s): %s",
		e.Table, len(e.Missing), strings.Join(e.Missing, ", "))
}

// ValidateHeader checks that every required column is present in header.
// Extra columns are ignored.
func ValidateHeader(table string, header []string, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &SchemaError{Table: table, Missing: missing}
}
