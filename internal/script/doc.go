// Package script runs menu control hooks written in Lua.
//
// An Engine owns one sandboxed gopher-lua state. Controls call named global
// functions when their state changes (Call) and spawn per-state animation
// coroutines (Spawn) that are resumed once per frame until they finish or
// the control changes state again and recycles them.
//
// Only the base, table, string, math and coroutine libraries are opened, and
// the chunk loaders (dofile, loadfile, load, loadstring) are removed. Hosts
// expose their own functions with RegisterModule:
//
//	eng.RegisterModule("ui", map[string]lua.LGFunction{
//	    "log": func(L *lua.LState) int { ... },
//	})
//
// The Engine is not goroutine-safe beyond its internal mutex; call it from
// the frame loop.
package script
