package rtdb

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Fields поля документа с поддержкой разных вариантов имён.
// Ключи сравниваются без учёта регистра: "price", "Price" и "PRICE" - одно поле.
type Fields map[string]interface{}

// DecodeFields разбирает документ узла
func DecodeFields(raw json.RawMessage) (Fields, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f map[string]interface{}
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return Fields(f), nil
}

// Lookup возвращает значение первого найденного ключа
func (f Fields) Lookup(keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := f[key]; ok && v != nil {
			return v, true
		}
	}
	for _, key := range keys {
		for k, v := range f {
			if v != nil && strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return nil, false
}

// String возвращает строковое значение первого найденного ключа
func (f Fields) String(keys ...string) string {
	v, ok := f.Lookup(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Number возвращает конечное число первого найденного ключа (числа в строках тоже принимаются)
func (f Fields) Number(keys ...string) (float64, bool) {
	v, ok := f.Lookup(keys...)
	if !ok {
		return 0, false
	}
	return ToNumber(v)
}

// Object возвращает вложенный объект
func (f Fields) Object(keys ...string) Fields {
	v, ok := f.Lookup(keys...)
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return Fields(obj)
}

// Strings возвращает список строк (массив или объект с ключами-значениями true)
func (f Fields) Strings(keys ...string) []string {
	v, ok := f.Lookup(keys...)
	if !ok {
		return nil
	}
	var out []string
	switch list := v.(type) {
	case []interface{}:
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case map[string]interface{}:
		for key, item := range list {
			if b, ok := item.(bool); ok && b {
				out = append(out, key)
			}
		}
	}
	return out
}

// ToNumber приводит значение JSON к конечному числу
func ToNumber(v interface{}) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
