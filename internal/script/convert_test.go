package script

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestConvertRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"string", "menu", "menu"},
		{"int", 7, int64(7)},
		{"float", 1.5, 1.5},
		{"strings", []string{"a", "b"}, []any{"a", "b"}},
		{"map", map[string]any{"k": 1}, map[string]any{"k": int64(1)}},
		{"unsupported", struct{}{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromValue(ToValue(L, tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromValue(ToValue(%v)) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
