package app

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/logging"
)

// uiModule is the "ui" table visible to scripts:
//
//	ui.log(level, msg)
//	ui.post(topic [, target])            queue an outward event, e.g. ui.post("game.state", "playing")
//	ui.set_text(menu, control, text)     relabel a control of the current group
//	ui.state()                           current game state
//	ui.device()                          "keyboard", "mouse", "gamepad" or "null"
//	ui.reset_binding(action)             restore default bindings, returns how many changed
func (app *Application) uiModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"log":           app.luaLog,
		"post":          app.luaPost,
		"set_text":      app.luaSetText,
		"state":         app.luaState,
		"device":        app.luaDevice,
		"reset_binding": app.luaResetBinding,
	}
}

func (app *Application) luaLog(L *lua.LState) int {
	level := logging.ParseLevel(L.CheckString(1))
	msg := L.CheckString(2)
	log := app.log.WithComponent("lua")
	switch level {
	case logging.LevelDebug:
		log.Debug("%s", msg)
	case logging.LevelWarn:
		log.Warn("%s", msg)
	case logging.LevelError:
		log.Error("%s", msg)
	default:
		log.Info("%s", msg)
	}
	return 0
}

func (app *Application) luaPost(L *lua.LState) int {
	name := L.CheckString(1)
	typ, ok := event.ParseType(name)
	if !ok {
		L.ArgError(1, "unknown event topic "+name)
		return 0
	}
	e := event.New(typ)
	e.Target = L.OptString(2, "")
	if app.menus != nil {
		e.Group = app.menus.CurrentGroup()
	}
	app.queue.Post(e)
	return 0
}

func (app *Application) luaSetText(L *lua.LState) int {
	menuName, controlName, text := L.CheckString(1), L.CheckString(2), L.CheckString(3)
	if app.menus == nil {
		L.RaiseError("menus are not loaded yet")
		return 0
	}
	mn, err := app.menus.GetMenu("", menuName)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	c, err := mn.Control(controlName)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	c.SetText(text)
	return 0
}

func (app *Application) luaState(L *lua.LState) int {
	L.Push(lua.LString(app.state))
	return 1
}

func (app *Application) luaDevice(L *lua.LState) int {
	d := input.DeviceNull
	if app.actions != nil {
		d = app.actions.LastDevice()
	}
	L.Push(lua.LString(d.String()))
	return 1
}

func (app *Application) luaResetBinding(L *lua.LState) int {
	name := L.CheckString(1)
	if app.actions == nil {
		L.RaiseError("bindings are not loaded yet")
		return 0
	}
	changed := app.actions.ResetToDefault(name)
	L.Push(lua.LNumber(len(changed)))
	return 1
}
