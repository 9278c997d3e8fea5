package eval

import "math"

// domainEpsilon is the tolerance on inverse-trig domain checks: inputs
// within this distance beyond [-1, 1] are clamped to the boundary
// instead of rejected. The constant is part of the engine's contract;
// callers may rely on values like 1.0000000000005 being accepted.
const domainEpsilon = 1e-12

// builtin describes one named function: its arity bounds and its
// implementation. maxArgs -1 means unbounded (variadic).
type builtin struct {
	minArgs int
	maxArgs int
	apply   func(args []float64, mode Mode) (float64, error)
}

var builtins = map[string]builtin{
	"sin": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return math.Sin(toRadians(args[0], mode)), nil
	}},
	"cos": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return math.Cos(toRadians(args[0], mode)), nil
	}},
	"tan": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return math.Tan(toRadians(args[0], mode)), nil
	}},
	"asin": {1, 1, func(args []float64, mode Mode) (float64, error) {
		x, ok := clampUnit(args[0])
		if !ok {
			return 0, &MathError{Msg: "argument out of range"}
		}
		return fromRadians(math.Asin(x), mode), nil
	}},
	"acos": {1, 1, func(args []float64, mode Mode) (float64, error) {
		x, ok := clampUnit(args[0])
		if !ok {
			return 0, &MathError{Msg: "argument out of range"}
		}
		return fromRadians(math.Acos(x), mode), nil
	}},
	"atan": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return fromRadians(math.Atan(args[0]), mode), nil
	}},
	"log": {1, 1, func(args []float64, mode Mode) (float64, error) {
		if args[0] <= 0 {
			return 0, &MathError{Msg: "argument out of range"}
		}
		return math.Log10(args[0]), nil
	}},
	"ln": {1, 1, func(args []float64, mode Mode) (float64, error) {
		if args[0] <= 0 {
			return 0, &MathError{Msg: "argument out of range"}
		}
		return math.Log(args[0]), nil
	}},
	"sqrt": {1, 1, func(args []float64, mode Mode) (float64, error) {
		if args[0] < 0 {
			return 0, &MathError{Msg: "argument out of range"}
		}
		return math.Sqrt(args[0]), nil
	}},
	"abs": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return math.Abs(args[0]), nil
	}},
	"exp": {1, 1, func(args []float64, mode Mode) (float64, error) {
		return math.Exp(args[0]), nil
	}},
	"min": {1, -1, func(args []float64, mode Mode) (float64, error) {
		v := args[0]
		for _, x := range args[1:] {
			if x < v {
				v = x
			}
		}
		return v, nil
	}},
	"max": {1, -1, func(args []float64, mode Mode) (float64, error) {
		v := args[0]
		for _, x := range args[1:] {
			if x > v {
				v = x
			}
		}
		return v, nil
	}},
}

// call applies a named function to its popped arguments. The argument
// slice arrives in source order.
func call(name string, args []float64, mode Mode) (float64, error) {
	fn, ok := builtins[name]
	if !ok {
		return 0, errMalformed()
	}
	if len(args) < fn.minArgs {
		return 0, &MathError{Fn: name, Msg: "missing arguments"}
	}
	if fn.maxArgs >= 0 && len(args) > fn.maxArgs {
		return 0, &MathError{Fn: name, Msg: "too many arguments"}
	}
	v, err := fn.apply(args, mode)
	if err != nil {
		if me, ok := err.(*MathError); ok && me.Fn == "" {
			me.Fn = name
		}
		return 0, err
	}
	return v, nil
}

// toRadians converts a trig argument from degrees when the mode calls
// for it.
func toRadians(x float64, mode Mode) float64 {
	if mode == Deg {
		return x * math.Pi / 180
	}
	return x
}

// fromRadians converts an inverse-trig result to degrees when the mode
// calls for it.
func fromRadians(x float64, mode Mode) float64 {
	if mode == Deg {
		return x * 180 / math.Pi
	}
	return x
}

// clampUnit snaps x onto [-1, 1], tolerating overshoot up to
// domainEpsilon. ok is false when x is genuinely outside the domain.
func clampUnit(x float64) (float64, bool) {
	switch {
	case x < -1:
		if x >= -1-domainEpsilon {
			return -1, true
		}
		return 0, false
	case x > 1:
		if x <= 1+domainEpsilon {
			return 1, true
		}
		return 0, false
	}
	return x, true
}
