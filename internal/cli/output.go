package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/martijn/shopadmin/internal/core/domain"
)

// Table columns of each resource, in display order.
var columns = map[string][]string{
	domain.ResourceProducts:    {"id", "name", "sku", "price", "stock", "active"},
	domain.ResourceUsers:       {"id", "email", "full_name", "active", "roles"},
	domain.ResourceRoles:       {"id", "name", "permissions"},
	domain.ResourcePermissions: {"id", "name", "description"},
	domain.ResourceBrands:      {"id", "name", "slug"},
	domain.ResourceCategories:  {"id", "name", "slug", "parent_id"},
	domain.ResourceCoupons:     {"id", "code", "discount_type", "value", "active", "expires_at"},
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecords prints records as a table with the resource's columns.
func writeRecords[T any](out io.Writer, resource string, records []T) error {
	cols := columns[resource]
	w := newTable(out)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = strings.ToUpper(strings.ReplaceAll(col, "_", " "))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, record := range records {
		fields, err := toFields(record)
		if err != nil {
			return err
		}
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = formatValue(fields[col])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func toFields(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return fields, nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case float64:
		return fmt.Sprintf("%.0f", value)
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(value)
	}
}
