// Package ingest implements the bulk-upload reconciliation engine: it accepts
// loosely-shaped content records from heterogeneous JSON/spreadsheet sources,
// normalizes them to the canonical chapter/question/revision schema, skips
// invalid and duplicate rows without aborting the batch, and supports a
// destructive reset-and-reseed mode.
package ingest

import (
	"strconv"
	"strings"
)

// Record is one untyped upload row. Shapes are author-controlled and never
// trusted: numbers may arrive as strings, fields may be nested bilingual
// objects, arrays, or flat suffixed keys.
type Record map[string]any

// raw returns the first present key from the alias list, skipping nils.
func (r Record) raw(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// str resolves the first alias that yields a non-empty string.
func (r Record) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// num resolves the first alias coercible to a number.
func (r Record) num(keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			if f, ok := asNumber(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// intOr resolves an integer alias chain with a default.
func (r Record) intOr(def int, keys ...string) int {
	if f, ok := r.num(keys...); ok {
		return int(f)
	}
	return def
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// bilingual extracts {en, mr} from a nested bilingual object. ok is false
// when v is not an object, letting callers fall through to flat aliases.
func bilingual(v any) (en, mr string, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return "", "", false
	}
	sub := Record(m)
	return sub.str("en", "english", "eng"), sub.str("mr", "marathi", "mar"), true
}
