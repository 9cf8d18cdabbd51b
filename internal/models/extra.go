package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Documents keep whatever fields the client sent. Keys the typed structs do
// not declare travel in an Extra map: inlined into BSON and merged into JSON.

// reservedKeys are managed by the server and never taken from a body.
var reservedKeys = map[string]struct{}{
	"_id":          {},
	FieldCreatedAt: {},
	FieldUpdatedAt: {},
	FieldLastLogin: {},
}

var jsonKeysCache sync.Map

func jsonKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := jsonKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	jsonKeysCache.Store(t, keys)
	return keys
}

// splitExtra returns the keys of the JSON object in data that v's struct
// type does not declare, minus the reserved ones.
func splitExtra(data []byte, v any) (map[string]any, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	known := jsonKeys(reflect.TypeOf(v))
	var extra map[string]any
	for k, val := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if _, ok := reservedKeys[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = normalizeNumbers(val)
	}
	return extra, nil
}

// normalizeNumbers keeps integers integral so they are stored as int64, not double.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

// marshalWithExtra encodes v and adds the extra keys it does not already carry.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := out[k]; ok {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	return json.Marshal(out)
}

// mergeExtra copies extra into set without overwriting typed fields.
func mergeExtra(set, extra map[string]any) {
	for k, v := range extra {
		if _, ok := set[k]; !ok {
			set[k] = v
		}
	}
}
