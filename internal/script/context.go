package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Context is one coroutine spawned for a control's state animation.
type Context struct {
	engine  *Engine
	name    string
	co      *lua.LState
	cancel  context.CancelFunc
	fn      *lua.LFunction
	args    []any
	started bool
	done    bool
}

// Name returns the function the coroutine runs.
func (c *Context) Name() string {
	return c.name
}

// Resume runs the coroutine until it yields or returns. The first resume
// passes the spawn arguments; later resumes pass args, which coroutine.yield
// returns inside the script. done is true once the function has returned,
// failed, or the context was recycled.
func (c *Context) Resume(args ...any) (done bool, err error) {
	e := c.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if c.done {
		return true, nil
	}
	if e.closed {
		c.done = true
		return true, ErrEngineClosed
	}

	if !c.started {
		args = c.args
		c.started = true
	}
	vals := make([]lua.LValue, len(args))
	for i, a := range args {
		vals[i] = ToValue(e.L, a)
	}

	state, rerr := c.resume(vals)
	switch state {
	case lua.ResumeYield:
		return false, nil
	case lua.ResumeOK:
		c.finish()
		delete(e.live, c)
		return true, nil
	default:
		c.finish()
		delete(e.live, c)
		return true, fmt.Errorf("resume %s: %w", c.name, rerr)
	}
}

func (c *Context) resume(vals []lua.LValue) (state lua.ResumeState, err error) {
	defer func() {
		if r := recover(); r != nil {
			state = lua.ResumeError
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	state, err, _ = c.engine.L.Resume(c.co, c.fn, vals...)
	return state, err
}

// Recycle abandons the coroutine. A recycled context never runs again.
func (c *Context) Recycle() {
	e := c.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if c.done {
		return
	}
	c.finish()
	if e.live != nil {
		delete(e.live, c)
	}
}

// Done reports whether the coroutine has finished or been recycled.
func (c *Context) Done() bool {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.done
}

func (c *Context) finish() {
	c.done = true
	if c.cancel != nil {
		c.cancel()
	}
	c.co = nil
}
