package script

import (
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ToValue converts a Go value to a Lua value. Unsupported types become nil.
func ToValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.NewTable()
		for _, item := range val {
			t.Append(ToValue(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, ToValue(L, val[k]))
		}
		return t
	case map[string]string:
		t := L.NewTable()
		for k, s := range val {
			t.RawSetString(k, lua.LString(s))
		}
		return t
	default:
		return lua.LNil
	}
}

// FromValue converts a Lua value to a Go value. Integral numbers become
// int64, array tables []any and other tables map[string]any.
func FromValue(lv lua.LValue) any {
	return fromValue(lv, make(map[*lua.LTable]bool))
}

func fromValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableValue(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableValue(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			arr = append(arr, fromValue(t.RawGetInt(i), visited))
		}
		return arr
	}
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = fromValue(v, visited)
		}
	})
	return m
}
