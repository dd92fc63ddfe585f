package starlark

import (
	"fmt"
	"strconv"
	"strings"

	"go.starlark.net/syntax"
)

// emitter walks a parsed snippet body and produces JavaScript lines. Assigned
// names are hoisted into a single let declaration at the top of the body, so
// Python-style "assign inside a branch, read after it" keeps working under
// JavaScript block scoping.
type emitter struct {
	declared []string
	declSet  map[string]bool
}

func newEmitter() *emitter {
	return &emitter{declSet: make(map[string]bool)}
}

// file emits the whole statement sequence at column zero.
func (e *emitter) file(stmts []syntax.Stmt) (string, error) {
	e.hoistAll(stmts)

	body, err := e.block(stmts, 0)
	if err != nil {
		return "", err
	}

	var lines []string
	if len(e.declared) > 0 {
		lines = append(lines, "let "+strings.Join(e.declared, ", ")+";")
	}
	lines = append(lines, body...)
	return strings.Join(lines, "\n"), nil
}

// hoistAll records every name bound by assignment or loop, in first-appearance
// order, for the top-of-body let declaration.
func (e *emitter) hoistAll(stmts []syntax.Stmt) {
	for _, s := range stmts {
		switch s := s.(type) {
		case *syntax.AssignStmt:
			if s.Op == syntax.EQ {
				e.hoistTarget(s.LHS)
			}
		case *syntax.ForStmt:
			e.hoistTarget(s.Vars)
			e.hoistAll(s.Body)
		case *syntax.WhileStmt:
			e.hoistAll(s.Body)
		case *syntax.IfStmt:
			e.hoistAll(s.True)
			e.hoistAll(s.False)
		}
	}
}

func (e *emitter) hoistTarget(target syntax.Expr) {
	switch t := target.(type) {
	case *syntax.Ident:
		if !e.declSet[t.Name] {
			e.declSet[t.Name] = true
			e.declared = append(e.declared, t.Name)
		}
	case *syntax.TupleExpr:
		for _, el := range t.List {
			e.hoistTarget(el)
		}
	case *syntax.ListExpr:
		for _, el := range t.List {
			e.hoistTarget(el)
		}
	case *syntax.ParenExpr:
		e.hoistTarget(t.X)
	}
}

func (e *emitter) block(stmts []syntax.Stmt, level int) ([]string, error) {
	var lines []string
	for _, s := range stmts {
		out, err := e.stmt(s, level)
		if err != nil {
			return nil, err
		}
		lines = append(lines, out...)
	}
	return lines, nil
}

func (e *emitter) stmt(s syntax.Stmt, level int) ([]string, error) {
	ind := strings.Repeat("    ", level)

	switch s := s.(type) {
	case *syntax.AssignStmt:
		line, err := e.assign(s)
		if err != nil {
			return nil, err
		}
		return []string{ind + line}, nil

	case *syntax.ExprStmt:
		// A bare string statement is a docstring; it has no behavior.
		if lit, ok := s.X.(*syntax.Literal); ok && lit.Token == syntax.STRING {
			return nil, nil
		}
		x, err := e.expr(s.X)
		if err != nil {
			return nil, err
		}
		return []string{ind + x + ";"}, nil

	case *syntax.ReturnStmt:
		if s.Result == nil {
			return []string{ind + "return;"}, nil
		}
		x, err := e.expr(s.Result)
		if err != nil {
			return nil, err
		}
		return []string{ind + "return " + x + ";"}, nil

	case *syntax.BranchStmt:
		switch s.Token {
		case syntax.BREAK:
			return []string{ind + "break;"}, nil
		case syntax.CONTINUE:
			return []string{ind + "continue;"}, nil
		}
		// pass
		return nil, nil

	case *syntax.IfStmt:
		return e.ifChain(s, level, "if")

	case *syntax.ForStmt:
		return e.forLoop(s, level)

	case *syntax.WhileStmt:
		cond, err := e.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := e.block(s.Body, level+1)
		if err != nil {
			return nil, err
		}
		lines := []string{ind + "while (" + cond + ") {"}
		lines = append(lines, body...)
		return append(lines, ind+"}"), nil

	case *syntax.DefStmt:
		return nil, e.unsupported(s, "function definition")
	case *syntax.LoadStmt:
		return nil, e.unsupported(s, "load statement")
	}

	return nil, e.unsupported(s, fmt.Sprintf("statement %T", s))
}

func (e *emitter) assign(s *syntax.AssignStmt) (string, error) {
	rhs, err := e.expr(s.RHS)
	if err != nil {
		return "", err
	}

	if s.Op == syntax.EQ {
		switch s.LHS.(type) {
		case *syntax.TupleExpr, *syntax.ListExpr:
			target, err := e.destructure(s.LHS)
			if err != nil {
				return "", err
			}
			// Parens keep a leading destructuring pattern from reading as a block.
			return "(" + target + " = " + rhs + ");", nil
		}
		lhs, err := e.storeTarget(s.LHS)
		if err != nil {
			return "", err
		}
		return lhs + " = " + rhs + ";", nil
	}

	lhs, err := e.storeTarget(s.LHS)
	if err != nil {
		return "", err
	}

	if s.Op == syntax.SLASHSLASH_EQ {
		return lhs + " = Math.floor(" + lhs + " / (" + rhs + "));", nil
	}
	return lhs + " " + s.Op.String() + " " + rhs + ";", nil
}

func (e *emitter) destructure(target syntax.Expr) (string, error) {
	var elems []syntax.Expr
	switch t := target.(type) {
	case *syntax.TupleExpr:
		elems = t.List
	case *syntax.ListExpr:
		elems = t.List
	default:
		return e.storeTarget(target)
	}

	parts := make([]string, len(elems))
	for i, el := range elems {
		part, err := e.destructure(el)
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// storeTarget emits an assignable reference. Unlike loads, negative indexing
// cannot be rewritten with .at(), so index stores always use brackets.
func (e *emitter) storeTarget(target syntax.Expr) (string, error) {
	switch t := target.(type) {
	case *syntax.Ident:
		return t.Name, nil
	case *syntax.DotExpr:
		x, err := e.expr(t.X)
		if err != nil {
			return "", err
		}
		return x + "." + t.Name.Name, nil
	case *syntax.IndexExpr:
		x, err := e.expr(t.X)
		if err != nil {
			return "", err
		}
		y, err := e.expr(t.Y)
		if err != nil {
			return "", err
		}
		return x + "[" + y + "]", nil
	case *syntax.ParenExpr:
		return e.storeTarget(t.X)
	}
	return "", e.unsupported(target, "assignment target")
}

func (e *emitter) ifChain(s *syntax.IfStmt, level int, keyword string) ([]string, error) {
	ind := strings.Repeat("    ", level)

	cond, err := e.expr(s.Cond)
	if err != nil {
		return nil, err
	}
	body, err := e.block(s.True, level+1)
	if err != nil {
		return nil, err
	}

	lines := []string{ind + keyword + " (" + cond + ") {"}
	lines = append(lines, body...)

	if len(s.False) == 0 {
		return append(lines, ind+"}"), nil
	}

	// "elif" arrives as an else branch holding a single nested if.
	if elif, ok := elifOf(s.False); ok {
		chain, err := e.ifChain(elif, level, "} else if")
		if err != nil {
			return nil, err
		}
		// The chained header replaces this statement's closing brace.
		return append(lines, chain...), nil
	}

	lines = append(lines, ind+"} else {")
	elseBody, err := e.block(s.False, level+1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, elseBody...)
	return append(lines, ind+"}"), nil
}

func elifOf(stmts []syntax.Stmt) (*syntax.IfStmt, bool) {
	if len(stmts) != 1 {
		return nil, false
	}
	elif, ok := stmts[0].(*syntax.IfStmt)
	return elif, ok
}

func (e *emitter) forLoop(s *syntax.ForStmt, level int) ([]string, error) {
	ind := strings.Repeat("    ", level)

	body, err := e.block(s.Body, level+1)
	if err != nil {
		return nil, err
	}

	// range() lowers to a counting loop instead of materializing a list.
	if call, ok := rangeCall(s.X); ok {
		ident, ok := s.Vars.(*syntax.Ident)
		if !ok {
			return nil, e.unsupported(s.Vars, "tuple variable over range()")
		}
		header, err := e.rangeHeader(ident.Name, call)
		if err != nil {
			return nil, err
		}
		lines := []string{ind + header}
		lines = append(lines, body...)
		return append(lines, ind+"}"), nil
	}

	target, err := e.destructure(s.Vars)
	if err != nil {
		return nil, err
	}
	x, err := e.expr(s.X)
	if err != nil {
		return nil, err
	}

	// Loop variables are hoisted, so the loop binds them without const/let.
	lines := []string{ind + "for (" + target + " of " + x + ") {"}
	lines = append(lines, body...)
	return append(lines, ind+"}"), nil
}

func rangeCall(x syntax.Expr) (*syntax.CallExpr, bool) {
	call, ok := x.(*syntax.CallExpr)
	if !ok {
		return nil, false
	}
	fn, ok := call.Fn.(*syntax.Ident)
	if !ok || fn.Name != "range" {
		return nil, false
	}
	return call, true
}

func (e *emitter) rangeHeader(name string, call *syntax.CallExpr) (string, error) {
	args := make([]string, len(call.Args))
	for i, a := range call.Args {
		s, err := e.expr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	switch len(args) {
	case 1:
		return "for (" + name + " = 0; " + name + " < " + args[0] + "; " + name + "++) {", nil
	case 2:
		return "for (" + name + " = " + args[0] + "; " + name + " < " + args[1] + "; " + name + "++) {", nil
	case 3:
		return "for (" + name + " = " + args[0] + "; " + name + " < " + args[1] + "; " + name + " += " + args[2] + ") {", nil
	}
	return "", e.unsupported(call, "range() arity")
}

func (e *emitter) expr(x syntax.Expr) (string, error) {
	switch x := x.(type) {
	case *syntax.Ident:
		switch x.Name {
		case "True":
			return "true", nil
		case "False":
			return "false", nil
		case "None":
			return "null", nil
		}
		return x.Name, nil

	case *syntax.Literal:
		return e.literal(x)

	case *syntax.ParenExpr:
		inner, err := e.expr(x.X)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *syntax.UnaryExpr:
		return e.unary(x)

	case *syntax.BinaryExpr:
		return e.binary(x)

	case *syntax.DotExpr:
		obj, err := e.expr(x.X)
		if err != nil {
			return "", err
		}
		return obj + "." + x.Name.Name, nil

	case *syntax.IndexExpr:
		return e.index(x)

	case *syntax.SliceExpr:
		return e.slice(x)

	case *syntax.ListExpr:
		return e.exprList(x.List, "[", "]")

	case *syntax.TupleExpr:
		return e.exprList(x.List, "[", "]")

	case *syntax.DictExpr:
		return e.dict(x)

	case *syntax.CondExpr:
		cond, err := e.expr(x.Cond)
		if err != nil {
			return "", err
		}
		then, err := e.expr(x.True)
		if err != nil {
			return "", err
		}
		els, err := e.expr(x.False)
		if err != nil {
			return "", err
		}
		return "(" + cond + " ? " + then + " : " + els + ")", nil

	case *syntax.LambdaExpr:
		return e.lambda(x)

	case *syntax.CallExpr:
		return e.call(x)

	case *syntax.Comprehension:
		return "", e.unsupported(x, "comprehension")
	}

	return "", e.unsupported(x, fmt.Sprintf("expression %T", x))
}

func (e *emitter) literal(lit *syntax.Literal) (string, error) {
	switch lit.Token {
	case syntax.STRING:
		s, ok := lit.Value.(string)
		if !ok {
			return "", e.unsupported(lit, "string literal value")
		}
		return strconv.Quote(s), nil
	case syntax.INT:
		return fmt.Sprint(lit.Value), nil
	case syntax.FLOAT:
		f, ok := lit.Value.(float64)
		if !ok {
			return "", e.unsupported(lit, "float literal value")
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "", e.unsupported(lit, "bytes literal")
}

func (e *emitter) unary(x *syntax.UnaryExpr) (string, error) {
	if x.X == nil {
		return "", e.unsupported(x, "starred expression")
	}
	operand, err := e.operand(x.X)
	if err != nil {
		return "", err
	}
	switch x.Op {
	case syntax.NOT:
		return "!" + operand, nil
	case syntax.MINUS:
		return "-" + operand, nil
	case syntax.PLUS:
		return "+" + operand, nil
	case syntax.TILDE:
		return "~" + operand, nil
	}
	return "", e.unsupported(x, "unary operator "+x.Op.String())
}

func (e *emitter) binary(x *syntax.BinaryExpr) (string, error) {
	left, err := e.operand(x.X)
	if err != nil {
		return "", err
	}
	right, err := e.operand(x.Y)
	if err != nil {
		return "", err
	}

	switch x.Op {
	case syntax.SLASHSLASH:
		return "Math.floor(" + left + " / " + right + ")", nil
	case syntax.IN:
		return right + ".includes(" + left + ")", nil
	case syntax.NOT_IN:
		return "!" + right + ".includes(" + left + ")", nil
	case syntax.EQL:
		return left + " === " + right, nil
	case syntax.NEQ:
		return left + " !== " + right, nil
	case syntax.AND:
		return left + " && " + right, nil
	case syntax.OR:
		return left + " || " + right, nil
	case syntax.EQ:
		// Keyword arguments surface as EQ nodes inside call argument lists.
		return "", e.unsupported(x, "keyword argument")
	}
	return left + " " + x.Op.String() + " " + right, nil
}

// operand emits a sub-expression, parenthesized when its own structure could
// change meaning under a surrounding operator.
func (e *emitter) operand(x syntax.Expr) (string, error) {
	out, err := e.expr(x)
	if err != nil {
		return "", err
	}
	switch x.(type) {
	case *syntax.BinaryExpr, *syntax.CondExpr, *syntax.LambdaExpr, *syntax.UnaryExpr:
		return "(" + out + ")", nil
	}
	return out, nil
}

func (e *emitter) index(x *syntax.IndexExpr) (string, error) {
	obj, err := e.expr(x.X)
	if err != nil {
		return "", err
	}
	idx, err := e.expr(x.Y)
	if err != nil {
		return "", err
	}

	// Negative literal indexes count from the end, which brackets cannot do.
	if neg, ok := x.Y.(*syntax.UnaryExpr); ok && neg.Op == syntax.MINUS {
		if lit, ok := neg.X.(*syntax.Literal); ok && lit.Token == syntax.INT {
			return obj + ".at(" + idx + ")", nil
		}
	}
	return obj + "[" + idx + "]", nil
}

func (e *emitter) slice(x *syntax.SliceExpr) (string, error) {
	if x.Step != nil {
		return "", e.unsupported(x, "slice step")
	}
	obj, err := e.expr(x.X)
	if err != nil {
		return "", err
	}

	switch {
	case x.Lo == nil && x.Hi == nil:
		return obj + ".slice()", nil
	case x.Hi == nil:
		lo, err := e.expr(x.Lo)
		if err != nil {
			return "", err
		}
		return obj + ".slice(" + lo + ")", nil
	case x.Lo == nil:
		hi, err := e.expr(x.Hi)
		if err != nil {
			return "", err
		}
		return obj + ".slice(0, " + hi + ")", nil
	}

	lo, err := e.expr(x.Lo)
	if err != nil {
		return "", err
	}
	hi, err := e.expr(x.Hi)
	if err != nil {
		return "", err
	}
	return obj + ".slice(" + lo + ", " + hi + ")", nil
}

func (e *emitter) exprList(list []syntax.Expr, open, closing string) (string, error) {
	parts := make([]string, len(list))
	for i, el := range list {
		out, err := e.expr(el)
		if err != nil {
			return "", err
		}
		parts[i] = out
	}
	return open + strings.Join(parts, ", ") + closing, nil
}

func (e *emitter) dict(x *syntax.DictExpr) (string, error) {
	if len(x.List) == 0 {
		return "{}", nil
	}

	parts := make([]string, len(x.List))
	for i, entry := range x.List {
		kv, ok := entry.(*syntax.DictEntry)
		if !ok {
			return "", e.unsupported(entry, "dict entry")
		}
		value, err := e.expr(kv.Value)
		if err != nil {
			return "", err
		}

		// String keys become plain object keys; anything else is computed.
		if lit, ok := kv.Key.(*syntax.Literal); ok && lit.Token == syntax.STRING {
			key, err := e.literal(lit)
			if err != nil {
				return "", err
			}
			parts[i] = key + ": " + value
			continue
		}
		key, err := e.expr(kv.Key)
		if err != nil {
			return "", err
		}
		parts[i] = "[" + key + "]: " + value
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (e *emitter) lambda(x *syntax.LambdaExpr) (string, error) {
	params := make([]string, len(x.Params))
	for i, p := range x.Params {
		ident, ok := p.(*syntax.Ident)
		if !ok {
			return "", e.unsupported(p, "lambda parameter")
		}
		params[i] = ident.Name
	}
	body, err := e.expr(x.Body)
	if err != nil {
		return "", err
	}
	return "(" + strings.Join(params, ", ") + ") => " + body, nil
}

// jsBuiltins maps Starlark builtins onto JavaScript equivalents. Unknown
// callees pass through untouched so snippets can call helpers defined in
// script fragments or on the host.
var jsBuiltins = map[string]string{
	"str":   "String",
	"int":   "Math.trunc",
	"float": "Number",
	"bool":  "Boolean",
	"abs":   "Math.abs",
	"print": "console.log",
}

// jsMethods renames Python-flavored method calls onto their JavaScript
// counterparts.
var jsMethods = map[string]string{
	"append":     "push",
	"upper":      "toUpperCase",
	"lower":      "toLowerCase",
	"startswith": "startsWith",
	"endswith":   "endsWith",
	"strip":      "trim",
	"lstrip":     "trimStart",
	"rstrip":     "trimEnd",
	"find":       "indexOf",
}

func (e *emitter) call(x *syntax.CallExpr) (string, error) {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		if u, ok := a.(*syntax.UnaryExpr); ok && (u.Op == syntax.STAR || u.Op == syntax.STARSTAR) {
			return "", e.unsupported(a, "starred argument")
		}
		out, err := e.expr(a)
		if err != nil {
			return "", err
		}
		args[i] = out
	}
	joined := strings.Join(args, ", ")

	switch fn := x.Fn.(type) {
	case *syntax.Ident:
		switch fn.Name {
		case "len":
			if len(args) != 1 {
				return "", e.unsupported(x, "len() arity")
			}
			operand, err := e.operand(x.Args[0])
			if err != nil {
				return "", err
			}
			return operand + ".length", nil
		case "min", "max":
			name := "Math." + fn.Name
			if len(args) == 1 {
				return name + "(..." + args[0] + ")", nil
			}
			return name + "(" + joined + ")", nil
		case "range":
			return "", e.unsupported(x, "range() outside a for loop")
		}
		if mapped, ok := jsBuiltins[fn.Name]; ok {
			return mapped + "(" + joined + ")", nil
		}
		return fn.Name + "(" + joined + ")", nil

	case *syntax.DotExpr:
		obj, err := e.expr(fn.X)
		if err != nil {
			return "", err
		}
		name := fn.Name.Name
		if mapped, ok := jsMethods[name]; ok {
			name = mapped
		}
		return obj + "." + name + "(" + joined + ")", nil
	}

	callee, err := e.operand(x.Fn)
	if err != nil {
		return "", err
	}
	return callee + "(" + joined + ")", nil
}

func (e *emitter) unsupported(node syntax.Node, what string) error {
	start, _ := node.Span()
	return fmt.Errorf("%w: %s at line %d", ErrUnsupported, what, start.Line)
}
