package scenario

import (
	"fmt"

	"github.com/phicore/phasectl"
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
	lua "github.com/yuin/gopher-lua"
)

// Script is a scenario defined in Lua. The script must define a global
// function step(tick, out) that returns a table of input fields to change,
// or nil to keep the previous inputs:
//
//	function step(tick, out)
//	  if tick == 0 then return {profile = 3, duration = 2000} end
//	  if out.mode == 2 then return {sync = 0.2} end
//	end
//
// Real-valued fields (sync, power, beta) are given in real units and
// converted to Q14. out carries tick, overall, permitted, access, mode
// and progress from the previous tick.
type Script struct {
	name  string
	ticks int
	state *lua.LState
	step  *lua.LFunction
	out   *lua.LTable
}

// LoadScript compiles src and checks that it defines step.
func LoadScript(name, src string, ticks int) (*Script, error) {
	L := lua.NewState()
	L.SetGlobal(luaOneGlobal, lua.LNumber(mathutil.One))

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrScript, name, err)
	}

	fn, ok := L.GetGlobal(luaStepFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s: no global function %q", ErrScript, name, luaStepFunc)
	}

	return &Script{
		name:  name,
		ticks: ticks,
		state: L,
		step:  fn,
		out:   L.NewTable(),
	}, nil
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

// Ticks returns the length given at load time.
func (s *Script) Ticks() int {
	return s.ticks
}

// Step calls the script's step function and applies the returned fields.
func (s *Script) Step(tick int, prev *phasectl.Outputs, in *phasectl.Inputs) error {
	s.out.RawSetString(fieldTick, lua.LNumber(prev.Tick))
	s.out.RawSetString(fieldOverall, lua.LNumber(prev.Alignment.Overall.Float()))
	s.out.RawSetString(fieldPermitted, lua.LBool(prev.Permitted()))
	s.out.RawSetString(fieldAccess, lua.LBool(prev.Access()))
	s.out.RawSetString(fieldMode, lua.LNumber(prev.Coupling.Mode))
	s.out.RawSetString(fieldProgress, lua.LNumber(prev.ProfileProgress.Float()))

	err := s.state.CallByParam(lua.P{Fn: s.step, NRet: 1, Protect: true}, lua.LNumber(tick), s.out)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, s.name, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return nil
	case *lua.LTable:
		return s.apply(v, in)
	default:
		return fmt.Errorf("%w: %s: step returned %s, want table or nil", ErrScript, s.name, ret.Type())
	}
}

// apply copies the recognized fields of t into in.
func (s *Script) apply(t *lua.LTable, in *phasectl.Inputs) error {
	var err error
	number := func(field string, set func(float64)) {
		v := t.RawGetString(field)
		if v == lua.LNil || err != nil {
			return
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			err = fmt.Errorf("%w: %s: field %q is %s, want number", ErrScript, s.name, field, v.Type())
			return
		}
		set(float64(n))
	}

	number(fieldProfile, func(v float64) { in.ProfileCode = uint8(int(v) & profileCodeMask) })
	number(fieldDuration, func(v float64) { in.TransitionDuration = uint16(max(0, min(v, maxDuration))) })
	number(fieldSync, func(v float64) { in.Sync = mathutil.FromFloat(v) })
	number(fieldPower, func(v float64) { in.Power = mathutil.FromFloat(v) })
	number(fieldPhase, func(v float64) { in.Phase = params.Phase(int(v) & phaseCodeMask) })
	number(fieldBeta, func(v float64) { in.BetaAmplitude = mathutil.FromFloat(v) })
	if err != nil {
		return err
	}

	if v := t.RawGetString(fieldCoherent); v != lua.LNil {
		setCoherence(in, lua.LVAsBool(v))
	}

	return nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

