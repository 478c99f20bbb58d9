// lua.go - Lua scripting for the machine monitor

/*
lua.go - Monitor Lua Bindings

One Lua state per monitor, kept alive between lua commands so handlers
installed by a script stay registered.

Globals:
- reg(name), setreg(name, value): register access
- peek(addr), poke(addr, value): memory without subscribers
- read(addr), write(addr, value): memory through subscribers
- step([n]): execute instructions, returns an error string or nil
- cycles(): cycle counter
- cmd(line): run a monitor command, returns true when it asked to quit
- onread(addr, fn), onwrite(addr, fn): memory subscribers written in Lua
- print(...): writes to the monitor output
*/

package main

import (
	"strings"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

type LuaEngine struct {
	m    *Monitor
	L    *lua.LState
	subs []*luaSubscriber
	quit bool
}

func NewLuaEngine(m *Monitor) *LuaEngine {
	e := &LuaEngine{m: m, L: lua.NewState()}
	for name, fn := range map[string]lua.LGFunction{
		"reg":     e.luaReg,
		"setreg":  e.luaSetReg,
		"peek":    e.luaPeek,
		"poke":    e.luaPoke,
		"read":    e.luaRead,
		"write":   e.luaWrite,
		"step":    e.luaStep,
		"cycles":  e.luaCycles,
		"cmd":     e.luaCmd,
		"onread":  e.luaOnRead,
		"onwrite": e.luaOnWrite,
		"print":   e.luaPrint,
	} {
		e.L.SetGlobal(name, e.L.NewFunction(fn))
	}
	return e
}

func (e *LuaEngine) DoFile(path string) error {
	return errors.Wrap(e.L.DoFile(path), "lua")
}

func (e *LuaEngine) DoString(src string) error {
	return errors.Wrap(e.L.DoString(src), "lua")
}

// TakeQuit reports and clears a quit requested through cmd().
func (e *LuaEngine) TakeQuit() bool {
	q := e.quit
	e.quit = false
	return q
}

// Close removes the Lua memory handlers and closes the state.
func (e *LuaEngine) Close() {
	for _, sub := range e.subs {
		e.m.mem.Unsubscribe(sub)
	}
	e.subs = nil
	e.L.Close()
}

func (e *LuaEngine) subscriber(L *lua.LState) *luaSubscriber {
	sub := &luaSubscriber{L: L, fn: L.CheckFunction(2)}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *LuaEngine) checkAddr(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n))) & e.m.cfg.AddrMask
}

func checkCell(L *lua.LState, n int) uint16 {
	return uint16(int64(L.CheckNumber(n)))
}

func (e *LuaEngine) luaReg(L *lua.LState) int {
	v, ok := e.m.cpu.Register(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (e *LuaEngine) luaSetReg(L *lua.LState) int {
	ok := e.m.cpu.SetRegister(L.CheckString(1), uint32(int64(L.CheckNumber(2))))
	L.Push(lua.LBool(ok))
	return 1
}

func (e *LuaEngine) luaPeek(L *lua.LState) int {
	L.Push(lua.LNumber(e.m.mem.Peek(e.checkAddr(L, 1))))
	return 1
}

func (e *LuaEngine) luaPoke(L *lua.LState) int {
	e.m.mem.Poke(e.checkAddr(L, 1), checkCell(L, 2))
	return 0
}

func (e *LuaEngine) luaRead(L *lua.LState) int {
	value := e.m.mem.Read(e.checkAddr(L, 1))
	e.raiseBusErr(L)
	L.Push(lua.LNumber(value))
	return 1
}

func (e *LuaEngine) luaWrite(L *lua.LState) int {
	e.m.mem.Write(e.checkAddr(L, 1), checkCell(L, 2))
	e.raiseBusErr(L)
	return 0
}

// raiseBusErr turns a subscriber error from the last access into a Lua
// error so it is not left pending for the next instruction.
func (e *LuaEngine) raiseBusErr(L *lua.LState) {
	if err := e.m.mem.TakeErr(); err != nil {
		L.RaiseError("%s", err.Error())
	}
}

func (e *LuaEngine) luaStep(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if err := e.m.cpu.Run(n); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (e *LuaEngine) luaCycles(L *lua.LState) int {
	L.Push(lua.LNumber(e.m.cpu.Cycles))
	return 1
}

func (e *LuaEngine) luaCmd(L *lua.LState) int {
	quit := e.m.ExecuteCommand(L.CheckString(1))
	if quit {
		e.quit = true
	}
	L.Push(lua.LBool(quit))
	return 1
}

func (e *LuaEngine) luaOnRead(L *lua.LState) int {
	addr := e.checkAddr(L, 1)
	e.m.mem.SubscribeToRead([]uint32{addr}, e.subscriber(L))
	return 0
}

func (e *LuaEngine) luaOnWrite(L *lua.LState) int {
	addr := e.checkAddr(L, 1)
	e.m.mem.SubscribeToWrite([]uint32{addr}, e.subscriber(L))
	return 0
}

func (e *LuaEngine) luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.Get(i + 1).String()
	}
	e.m.printf("%s", strings.Join(parts, "\t"))
	return 0
}

// luaSubscriber calls a Lua function for each observed access. A number
// result substitutes the value; nil passes the access through.
type luaSubscriber struct {
	L  *lua.LState
	fn *lua.LFunction
}

func (s *luaSubscriber) call(args ...lua.LValue) (uint16, bool, error) {
	if err := s.L.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, args...); err != nil {
		return 0, false, errors.Wrap(err, "lua handler")
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return uint16(int64(n)), true, nil
	}
	return 0, false, nil
}

func (s *luaSubscriber) ObserveRead(addr uint32) (uint16, bool, error) {
	return s.call(lua.LNumber(addr))
}

func (s *luaSubscriber) ObserveWrite(addr uint32, value uint16) (uint16, bool, error) {
	return s.call(lua.LNumber(addr), lua.LNumber(value))
}
