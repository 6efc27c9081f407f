package params

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList parses a comma-separated id list such as "1,2,3". Empty items are skipped.
func ParseIDList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("service_ids must be comma-separated integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
