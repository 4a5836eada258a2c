package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/logging"
)

// DefaultCallTimeout bounds a single hook call.
const DefaultCallTimeout = 2 * time.Second

// unsafeGlobals are removed from the base library.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Engine wraps a sandboxed Lua state.
type Engine struct {
	mu sync.Mutex
	L  *lua.LState

	log         *logging.Logger
	callTimeout time.Duration
	loaded      []string
	live        map[*Context]struct{}
	closed      bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCallTimeout bounds Call and DoString. Zero disables the bound.
// Coroutine resumes are not bounded.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.callTimeout = d
	}
}

// NewEngine creates a sandboxed engine.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:         logging.Nop(),
		callTimeout: DefaultCallTimeout,
		live:        make(map[*Context]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	e.L = L

	return e, nil
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.CoroutineLibName, lua.OpenCoroutine},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// DoFile loads and runs a script file from fsys.
func (e *Engine) DoFile(fsys loader.FileSystem, path string) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}
	if err := e.run(path, string(data)); err != nil {
		return err
	}

	e.mu.Lock()
	e.loaded = append(e.loaded, path)
	e.mu.Unlock()
	e.log.WithField("path", path).Debug("script loaded")
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(code string) error {
	return e.run("<string>", code)
}

func (e *Engine) run(name, code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	_, err = e.pcall(fn, nil)
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Loaded returns the script files loaded so far.
func (e *Engine) Loaded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.loaded))
	copy(out, e.loaded)
	return out
}

// HasFunction reports whether name is a global function.
func (e *Engine) HasFunction(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || name == "" {
		return false
	}
	return e.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call calls a global function and returns its results as Go values.
func (e *Engine) Call(name string, args ...any) ([]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	fn, err := e.function(name)
	if err != nil {
		return nil, err
	}

	vals := make([]lua.LValue, len(args))
	for i, a := range args {
		vals[i] = ToValue(e.L, a)
	}

	res, err := e.pcall(fn, vals)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}

	out := make([]any, len(res))
	for i, v := range res {
		out[i] = FromValue(v)
	}
	return out, nil
}

func (e *Engine) function(name string) (*lua.LFunction, error) {
	fn, ok := e.L.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
	}
	return fn, nil
}

// pcall runs fn under the call timeout and recovers Go panics raised by
// registered functions. Caller holds e.mu.
func (e *Engine) pcall(fn *lua.LFunction, args []lua.LValue) (res []lua.LValue, err error) {
	if e.callTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.callTimeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer func() {
			e.L.RemoveContext()
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %v", ErrCallTimeout, err)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := e.L.GetTop()
	e.L.Push(fn)
	for _, a := range args {
		e.L.Push(a)
	}
	if err := e.L.PCall(len(args), lua.MultRet, nil); err != nil {
		e.L.SetTop(top)
		return nil, err
	}

	n := e.L.GetTop() - top
	res = make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		res[i] = e.L.Get(top + i + 1)
	}
	e.L.SetTop(top)
	return res, nil
}

// Spawn starts a coroutine for the named function. The function does not
// run until the first Resume, which receives args.
func (e *Engine) Spawn(name string, args ...any) (*Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	fn, err := e.function(name)
	if err != nil {
		return nil, err
	}

	co, cancel := e.L.NewThread()
	c := &Context{
		engine: e,
		name:   name,
		co:     co,
		cancel: cancel,
		fn:     fn,
		args:   args,
	}
	e.live[c] = struct{}{}
	return c, nil
}

// Live returns the number of coroutines not yet finished or recycled.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

// RegisterModule exposes funcs to scripts as a global table.
func (e *Engine) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.L.SetGlobal(name, e.L.SetFuncs(e.L.NewTable(), funcs))
}

// Close recycles every live coroutine and releases the Lua state.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	for c := range e.live {
		c.finish()
	}
	e.live = nil
	e.L.Close()
	e.closed = true
	return nil
}
