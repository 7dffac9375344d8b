package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnavailable хранилище не ответило или вернуло ошибку
var ErrUnavailable = errors.New("rtdb: store unavailable")

// Record дочерний узел, найденный запросом
type Record struct {
	Key   string
	Value json.RawMessage
}

// Store контракт документного хранилища (Firebase Realtime Database и совместимые)
//
// Get возвращает nil, если по пути ничего нет.
// Set с nil удаляет узел.
// Update сливает поля в узел, ключи могут быть вложенными путями ("a/b").
// Query возвращает дочерние узлы path, у которых поле orderBy равно equalTo, упорядоченные по ключу.
type Store interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Set(ctx context.Context, path string, value interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Push(ctx context.Context, path string, value interface{}) (string, error)
	Query(ctx context.Context, path, orderBy string, equalTo interface{}) ([]Record, error)
}

// Join склеивает сегменты пути
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Children разбирает объект узла на дочерние записи
func Children(raw json.RawMessage) ([]Record, error) {
	if isNull(raw) {
		return nil, nil
	}
	var nodes map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(nodes))
	for key, value := range nodes {
		if isNull(value) {
			continue
		}
		records = append(records, Record{Key: key, Value: value})
	}
	sortRecords(records)
	return records, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
