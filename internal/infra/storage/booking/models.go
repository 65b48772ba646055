package booking

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// encodeWeekdays сериализует набор дней недели в строку "1,3,5"
// Пустой набор хранится как NULL
func encodeWeekdays(days []time.Weekday) *string {
	if len(days) == 0 {
		return nil
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	s := strings.Join(parts, ",")
	return &s
}

// decodeWeekdays разбирает строку "1,3,5" в набор дней недели
func decodeWeekdays(s *string) ([]time.Weekday, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parts := strings.Split(*s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday value %q", p)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

// encodeMetadata сериализует метаданные в JSONB, nil/пустая map хранится как NULL
func encodeMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// decodeMetadata разбирает JSONB колонку в map
func decodeMetadata(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
