package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Сентинел "no constraint" для категориальных фильтров. Отсутствие ключа
// и значение "any" обязаны вести себя одинаково.
const anySentinel = "any"

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// --- Хелперы разбора query-строки. "any" эквивалентно отсутствию ключа. ---

func parseString(q url.Values, key string) string {
	v := strings.TrimSpace(q.Get(key))
	if strings.EqualFold(v, anySentinel) {
		return ""
	}
	return v
}

func parseFloatPtr(q url.Values, key string) *float64 {
	v := strings.TrimSpace(q.Get(key))
	if v == "" || strings.EqualFold(v, anySentinel) {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntPtr(q url.Values, key string) *int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" || strings.EqualFold(v, anySentinel) {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// parseStringSlice — comma-separated список; "any" и пустота — nil.
func parseStringSlice(q url.Values, key string) []string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" || strings.EqualFold(v, anySentinel) {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseUUIDSlice — allow-list id. Невалидные id пропускаются.
func parseUUIDSlice(q url.Values, key string) []uuid.UUID {
	parts := parseStringSlice(q, key)
	if len(parts) == 0 {
		return nil
	}
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		if id, err := uuid.Parse(p); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// parseTimePtr — порог доступности. Невалидная дата молча пропускается,
// ошибкой не является.
func parseTimePtr(q url.Values, key string) *time.Time {
	v := strings.TrimSpace(q.Get(key))
	if v == "" || strings.EqualFold(v, anySentinel) {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
