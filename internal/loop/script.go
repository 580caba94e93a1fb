package loop

import (
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ScriptPolicy evaluates a Lua function `rate(level)` to pick the tick rate.
// Results are memoized per level so the policy stays deterministic even if
// the script keeps state of its own.
type ScriptPolicy struct {
	mu       sync.Mutex
	vm       *lua.LState
	fn       lua.LValue
	cache    map[int]float64
	fallback float64
}

// LoadScriptPolicy reads a Lua policy script from disk.
func LoadScriptPolicy(path string, maxLevel int) (*ScriptPolicy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loop: read policy script %s: %w", path, err)
	}
	return NewScriptPolicy(string(src), maxLevel)
}

// NewScriptPolicy compiles src and checks that rate(level) is positive for
// every level in [0, maxLevel].
func NewScriptPolicy(src string, maxLevel int) (*ScriptPolicy, error) {
	if maxLevel < 0 {
		return nil, fmt.Errorf("loop: policy max level must not be negative, got %d", maxLevel)
	}

	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := vm.CallByParam(lua.P{
			Fn:      vm.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("loop: open lua %s library: %w", lib.name, err)
		}
	}

	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("loop: load policy script: %w", err)
	}

	fn := vm.GetGlobal("rate")
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("loop: policy script must define function rate(level), got %s", fn.Type())
	}

	p := &ScriptPolicy{
		vm:    vm,
		fn:    fn,
		cache: make(map[int]float64),
	}

	for level := 0; level <= maxLevel; level++ {
		rate, err := p.eval(level)
		if err != nil {
			vm.Close()
			return nil, err
		}
		if level == 0 || rate < p.fallback {
			p.fallback = rate
		}
	}

	return p, nil
}

func (p *ScriptPolicy) eval(level int) (float64, error) {
	if rate, ok := p.cache[level]; ok {
		return rate, nil
	}

	if err := p.vm.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(level)); err != nil {
		return 0, fmt.Errorf("loop: rate(%d): %w", level, err)
	}
	ret := p.vm.Get(-1)
	p.vm.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("loop: rate(%d) returned %s, expected number", level, ret.Type())
	}
	rate := float64(n)
	if !(rate > 0) {
		return 0, fmt.Errorf("loop: rate(%d) = %v, must be positive", level, rate)
	}

	p.cache[level] = rate
	return rate, nil
}

// Rate implements Policy. Levels outside the validated range that make the
// script fail fall back to the slowest validated rate.
func (p *ScriptPolicy) Rate(level int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rate, ok := p.cache[level]; ok {
		return rate
	}
	if p.vm == nil {
		return p.fallback
	}
	rate, err := p.eval(level)
	if err != nil {
		return p.fallback
	}
	return rate
}

// Close releases the Lua state. Rate keeps answering from the cache.
func (p *ScriptPolicy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.vm != nil {
		p.vm.Close()
		p.vm = nil
	}
}
