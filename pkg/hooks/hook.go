package hooks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/sticky/pkg/vdom"
)

// AttrKey is the attribute that carries a hook declaration.
const AttrKey = "v-hook"

// Hook creates a hook attribute for an element.
// The config is serialized to JSON immediately; the value has the form
// "HookName:{...}".
func Hook(name string, config any) vdom.Attr {
	b, err := json.Marshal(config)
	if err != nil {
		b = []byte("null")
	}
	return vdom.Attr{
		Key:   AttrKey,
		Value: name + ":" + string(b),
	}
}

// ParseHook splits a hook attribute value into the hook name and its decoded
// configuration.
func ParseHook(value string) (string, map[string]any, error) {
	name, raw, ok := strings.Cut(value, ":")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("hooks: malformed hook value %q", value)
	}
	var config map[string]any
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		return "", nil, fmt.Errorf("hooks: decode %s config: %w", name, err)
	}
	return name, config, nil
}

// HookEvent represents an event triggered by a client hook.
type HookEvent struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data,omitempty"`
}

// Decode parses a JSON hook event frame.
func Decode(payload []byte) (HookEvent, error) {
	var e HookEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return HookEvent{}, fmt.Errorf("hooks: decode event: %w", err)
	}
	if e.Name == "" {
		return HookEvent{}, fmt.Errorf("hooks: event without name")
	}
	return e, nil
}

// Accessors

func (e HookEvent) Has(key string) bool {
	_, ok := e.Data[key]
	return ok
}

func (e HookEvent) String(key string) string {
	if v, ok := e.Data[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (e HookEvent) Int(key string) int {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

func (e HookEvent) Float(key string) float64 {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		case string:
			f, _ := strconv.ParseFloat(val, 64)
			return f
		}
	}
	return 0.0
}

func (e HookEvent) Bool(key string) bool {
	if v, ok := e.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

func (e HookEvent) Strings(key string) []string {
	if v, ok := e.Data[key]; ok {
		switch list := v.(type) {
		case []any:
			strs := make([]string, len(list))
			for i, item := range list {
				strs[i] = fmt.Sprintf("%v", item)
			}
			return strs
		case []string:
			return list
		}
	}
	return nil
}

// Object returns the nested object under key as an event with the same name,
// so that its fields can be read with the same accessors.
func (e HookEvent) Object(key string) HookEvent {
	nested, _ := e.Data[key].(map[string]any)
	return HookEvent{Name: e.Name, Data: nested}
}

func (e HookEvent) Raw(key string) any {
	return e.Data[key]
}
