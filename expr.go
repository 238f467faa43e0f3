package xlnest

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// rowSelector filters data rows with an expr-lang boolean expression.
//
// The expression sees:
//
//	key     the row's key-column value
//	groups  the row-header titles, outermost first ([]string)
//	values  the row's data cells, left to right ([]string)
//	row     the 0-based data row index
type rowSelector struct {
	expression string
	program    *vm.Program
}

func newRowSelector(expression string) (*rowSelector, error) {
	program, err := expr.Compile(expression, expr.Env(rowEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile select %q: %w", expression, err)
	}
	return &rowSelector{expression: expression, program: program}, nil
}

// selectorCache holds the compiled selectors of one Normalizer, keyed by expression.
type selectorCache struct {
	programs sync.Map
}

func (c *selectorCache) get(expression string) (*rowSelector, error) {
	if cached, ok := c.programs.Load(expression); ok {
		return cached.(*rowSelector), nil
	}
	sel, err := newRowSelector(expression)
	if err != nil {
		return nil, err
	}
	actual, _ := c.programs.LoadOrStore(expression, sel)
	return actual.(*rowSelector), nil
}

// CompileSelect reports whether expression is a valid row selector.
func CompileSelect(expression string) error {
	_, err := newRowSelector(expression)
	return err
}

type rowEnv struct {
	Key    string   `expr:"key"`
	Groups []string `expr:"groups"`
	Values []string `expr:"values"`
	Row    int      `expr:"row"`
}

// match evaluates the expression for grid row i of a merge-filled grid.
func (s *rowSelector) match(g Grid, o Origin, i int) (bool, error) {
	env := rowEnv{
		Key:    g.At(i, o.X-1),
		Groups: make([]string, 0, o.X-1),
		Values: make([]string, 0, o.Width),
		Row:    i - o.Y,
	}
	for c := 0; c < o.X-1; c++ {
		env.Groups = append(env.Groups, g.At(i, c))
	}
	for c := o.X; c < o.X+o.Width; c++ {
		env.Values = append(env.Values, g.At(i, c))
	}

	result, err := expr.Run(s.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate select %q at %s: %w", s.expression, NewCellRef(i, o.X-1), err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("select %q evaluated to %T, expected bool", s.expression, result)
	}
	return b, nil
}
