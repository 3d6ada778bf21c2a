package formula

import "gosheet/value"

// Function is a builtin formula function. It receives its unevaluated
// argument nodes (so it can special-case RangeNode arguments, which
// have no scalar value of their own) and the active Resolver.
type Function func(args []Node, resolve Resolver) (float64, error)

// registry holds the builtin function table, keyed by upper-cased
// name, mirroring the teacher's BuiltInFunctions.Call dispatch
// (builtin.go) but backed by a map so additional functions — like the
// named functions internal/script compiles — can register themselves
// without the formula package depending on them.
var registry = map[string]Function{
	"SUM":     sumFn,
	"AVERAGE": averageFn,
	"MIN":     minFn,
	"MAX":     maxFn,
	"COUNT":   countFn,
	"IF":      ifFn,
}

// RegisterFunction adds or replaces a builtin function by name. Used by
// internal/script to register its user-named script functions without
// an import cycle back into formula.
func RegisterFunction(name string, fn Function) {
	registry[name] = fn
}

func lookupFunction(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// flattenNumbers evaluates a list of argument nodes to a flat slice of
// numbers, expanding any RangeNode argument into one number per cell in
// the range. The first error encountered (a propagated FormulaError or
// a resolver failure) short-circuits the whole function, matching
// spec.md's propagation rule.
func flattenNumbers(args []Node, resolve Resolver) ([]float64, error) {
	var out []float64
	for _, a := range args {
		if rng, ok := a.(*RangeNode); ok {
			for _, pos := range rng.positions() {
				n, err := resolve(pos)
				if err != nil {
					return nil, err
				}
				out = append(out, n)
			}
			continue
		}
		n, err := a.Eval(resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func sumFn(args []Node, resolve Resolver) (float64, error) {
	nums, err := flattenNumbers(args, resolve)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return total, nil
}

func averageFn(args []Node, resolve Resolver) (float64, error) {
	nums, err := flattenNumbers(args, resolve)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, value.NewFormulaError(value.ErrorArithmetic)
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return total / float64(len(nums)), nil
}

func minFn(args []Node, resolve Resolver) (float64, error) {
	nums, err := flattenNumbers(args, resolve)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, nil
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return m, nil
}

func maxFn(args []Node, resolve Resolver) (float64, error) {
	nums, err := flattenNumbers(args, resolve)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, nil
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return m, nil
}

func countFn(args []Node, resolve Resolver) (float64, error) {
	nums, err := flattenNumbers(args, resolve)
	if err != nil {
		return 0, err
	}
	return float64(len(nums)), nil
}

// ifFn implements IF(condition, whenTrue, whenFalse): condition is
// truthy when non-zero, the convention the comparison operators (=, <>,
// <, ...) already produce (1.0 / 0.0).
func ifFn(args []Node, resolve Resolver) (float64, error) {
	if len(args) != 3 {
		return 0, value.NewFormulaError(value.ErrorValue)
	}
	cond, err := args[0].Eval(resolve)
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return args[1].Eval(resolve)
	}
	return args[2].Eval(resolve)
}
