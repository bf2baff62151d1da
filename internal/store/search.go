package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// SearchResidents filters by JSON field name. String criteria match
// case-insensitive substrings, anything else must be equal. Empty or nil
// criteria are ignored.
func (s *Store) SearchResidents(criteria map[string]any) []domain.Resident {
	want := map[string]any{}
	for k, v := range criteria {
		nv := normalizeValue(v)
		if nv == nil || nv == "" {
			continue
		}
		want[k] = nv
	}

	out := []domain.Resident{}
	for _, r := range s.Residents() {
		fields, err := fieldsOf(r)
		if err != nil {
			s.logger.Warn("Skipping resident in search", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		if matches(fields, want) {
			out = append(out, r)
		}
	}
	return out
}

// fieldsOf decodes r into its JSON field map.
func fieldsOf(r domain.Resident) (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func matches(fields, want map[string]any) bool {
	for k, v := range want {
		got, ok := fields[k]
		if !ok || got == nil {
			return false
		}
		if str, isStr := v.(string); isStr {
			if !strings.Contains(strings.ToLower(fmt.Sprint(got)), strings.ToLower(str)) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, v) {
			return false
		}
	}
	return true
}

// normalizeValue maps v onto the types encoding/json decodes into.
func normalizeValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
