package etl

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadRows loads a feed file: a JSON array of flat objects. Non-string
// scalars are rendered back to their literal form so Row accessors can parse
// them uniformly.
func ReadRows(filePath string) ([]Row, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed file %s: %w", filePath, err)
	}

	rows := make([]Row, 0, len(raw))
	for _, record := range raw {
		row := make(Row, len(record))
		for field, value := range record {
			switch v := value.(type) {
			case nil:
				// absent
			case string:
				row[field] = v
			case float64:
				if v == float64(int64(v)) {
					row[field] = fmt.Sprintf("%d", int64(v))
				} else {
					row[field] = fmt.Sprintf("%g", v)
				}
			case bool:
				if v {
					row[field] = "1"
				} else {
					row[field] = "0"
				}
			default:
				row[field] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
