// Package script wires user-defined expr-lang expressions into the
// formula engine as named builtin functions, the way
// javajack-xlfill/xlfill.exprEvaluator compiles and caches expr-lang
// programs for its template engine (xlfill/expr.go). A registered
// program sees its call arguments as a single []float64 variable named
// "args" and must itself evaluate to a number; anything else is a
// Value error, matching the rest of formula's builtin functions.
package script

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"gosheet/formula"
	"gosheet/value"
)

// env is the variable set an expr-lang program is compiled and run
// against: just the caller's evaluated arguments.
type env struct {
	Args []float64 `expr:"args"`
}

// Registry holds compiled expr-lang programs, keyed by the formula
// function name they're installed under.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewRegistry returns an empty script Registry.
func NewRegistry() *Registry {
	return &Registry{programs: make(map[string]*vm.Program)}
}

// Register compiles source and installs it into the formula package's
// builtin function table under name, so `=name(...)` in a formula runs
// it. Compile errors are returned immediately; nothing is installed on
// failure.
func (r *Registry) Register(name, source string) error {
	program, err := expr.Compile(source, expr.Env(env{}))
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.programs[name] = program
	r.mu.Unlock()

	formula.RegisterFunction(name, func(args []formula.Node, resolve formula.Resolver) (float64, error) {
		return r.run(name, args, resolve)
	})
	return nil
}

func (r *Registry) run(name string, args []formula.Node, resolve formula.Resolver) (float64, error) {
	r.mu.RLock()
	program, ok := r.programs[name]
	r.mu.RUnlock()
	if !ok {
		return 0, value.NewFormulaError(value.ErrorValue)
	}

	nums := make([]float64, len(args))
	for i, a := range args {
		n, err := a.Eval(resolve)
		if err != nil {
			return 0, err
		}
		nums[i] = n
	}

	out, err := expr.Run(program, env{Args: nums})
	if err != nil {
		return 0, value.NewFormulaError(value.ErrorArithmetic)
	}
	result, ok := toFloat64(out)
	if !ok {
		return 0, value.NewFormulaError(value.ErrorValue)
	}
	return result, nil
}

// toFloat64 accepts any of the numeric kinds expr-lang can produce for
// an untyped program (int literals evaluate as int, not float64, absent
// an AsFloat64 compile hint) and rejects everything else — a bool,
// string, or nil result is a genuine Value error, not a numeric one.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
