package cpu

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var errNotInteger = errors.New(f("not a 64-bit integer"))

// evalExpression does compile-time $(...) evaluations, with every label
// and LINENO predeclared.
func evalExpression(expr string, symbols SymbolTable, lineNo int) (value int64, err error) {
	defer func() {
		if err != nil {
			err = &ErrExpression{Expr: expr, Err: err}
		}
	}()

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineNo),
	}
	for name, address := range symbols.All() {
		pred[name] = starlark.MakeInt(int(address))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = errNotInteger
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		var u64 uint64
		u64, ok = st_int.Uint64()
		if !ok {
			err = errNotInteger
			return
		}
		value = int64(u64)
	}

	return
}
