// Package query содержит разбор общих query-параметров обработчиков.
package query

import (
	"fmt"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDateRange извлекает необязательные параметры start_date и end_date
// (формат 2006-01-02). Отсутствующий параметр возвращается как nil.
func ParseDateRange(r *http.Request) (start, end *time.Time, err error) {
	const op = "query.ParseDateRange"

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: invalid start_date: %w", op, err)
		}
		start = &parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: invalid end_date: %w", op, err)
		}
		end = &parsed
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("%s: end_date before start_date", op)
	}
	return start, end, nil
}
