package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory потокобезопасная реализация Store в памяти.
// Используется в тестах и в локальном режиме без Firebase.
type Memory struct {
	mu   sync.RWMutex
	root map[string]interface{}
	seq  int64
	fail error
}

// NewMemory создает пустое хранилище
func NewMemory() *Memory {
	return &Memory{root: make(map[string]interface{})}
}

// FailWith заставляет все последующие вызовы возвращать ошибку (nil - отключить)
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Memory) Get(_ context.Context, path string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("get", path); err != nil {
		return nil, err
	}

	node, ok := lookup(m.root, split(path))
	if !ok || node == nil {
		return nil, nil
	}
	return json.Marshal(node)
}

func (m *Memory) Set(_ context.Context, path string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("set", path); err != nil {
		return err
	}

	node, err := normalize(value)
	if err != nil {
		return err
	}
	return m.put(split(path), node)
}

func (m *Memory) Update(_ context.Context, path string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("update", path); err != nil {
		return err
	}

	base := split(path)
	for key, value := range fields {
		node, err := normalize(value)
		if err != nil {
			return err
		}
		full := append(append([]string{}, base...), split(key)...)
		if err := m.put(full, node); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Push(_ context.Context, path string, value interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("push", path); err != nil {
		return "", err
	}

	node, err := normalize(value)
	if err != nil {
		return "", err
	}
	m.seq++
	key := fmt.Sprintf("-M%013d%06d", time.Now().UnixMilli(), m.seq)
	if err := m.put(append(split(path), key), node); err != nil {
		return "", err
	}
	return key, nil
}

func (m *Memory) Query(_ context.Context, path, orderBy string, equalTo interface{}) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("query", path); err != nil {
		return nil, err
	}

	want, err := normalize(equalTo)
	if err != nil {
		return nil, err
	}

	node, ok := lookup(m.root, split(path))
	if !ok {
		return nil, nil
	}
	children, ok := node.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	records := make([]Record, 0)
	for key, child := range children {
		fields, ok := child.(map[string]interface{})
		if !ok {
			continue
		}
		got, ok := lookup(fields, split(orderBy))
		if !ok || !reflect.DeepEqual(got, want) {
			continue
		}
		raw, err := json.Marshal(child)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Key: key, Value: raw})
	}
	sortRecords(records)
	return records, nil
}

func (m *Memory) failure(op, path string) error {
	if m.fail == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, op, path, m.fail)
}

func (m *Memory) put(segments []string, value interface{}) error {
	if len(segments) == 0 {
		obj, ok := value.(map[string]interface{})
		if value != nil && !ok {
			return errors.New("rtdb: root must be an object")
		}
		if obj == nil {
			obj = make(map[string]interface{})
		}
		m.root = obj
		return nil
	}

	parent := m.root
	for _, segment := range segments[:len(segments)-1] {
		next, ok := parent[segment].(map[string]interface{})
		if !ok {
			if value == nil {
				return nil
			}
			next = make(map[string]interface{})
			parent[segment] = next
		}
		parent = next
	}

	last := segments[len(segments)-1]
	if value == nil {
		delete(parent, last)
		return nil
	}
	parent[last] = value
	return nil
}

func lookup(node interface{}, segments []string) (interface{}, bool) {
	current := node
	for _, segment := range segments {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// normalize приводит значение к JSON-представлению (map/[]interface{}/float64/string/bool)
func normalize(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("rtdb: encode value: %w", err)
	}
	var node interface{}
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("rtdb: decode value: %w", err)
	}
	return node, nil
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
}
