package parser

import (
	"fmt"

	"github.com/minilang-go/minilang/lexer"
)

// Parser is a recursive-descent parser with a single token of lookahead.
// It holds no parse-time environment — unlike some of this codebase's
// earlier evolutionary snapshots, name resolution is entirely the
// evaluator's job; the parser only shapes the AST.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	next lexer.Token
}

// New creates a Parser over src and reads its first two tokens into cur
// and next. Parsing decisions look only at cur.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.cur = p.lex.Next()
	p.next = p.lex.Next()
	return p
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lex.Next()
}

// curIs reports whether the current token is a punctuation or keyword
// token spelled lit.
func (p *Parser) curIs(lit string) bool {
	return (p.cur.Kind == lexer.PUNCT || p.cur.Kind == lexer.IDENT) && p.cur.Literal == lit
}

// expect consumes the current token if it is spelled lit, or fails with
// the spec's `Expected `X`, found `Y`.` message.
func (p *Parser) expect(lit string) error {
	if !p.curIs(lit) {
		return fmt.Errorf("Expected `%s`, found `%s`.", lit, p.cur.Spelling())
	}
	p.advance()
	return nil
}

// expectIdent consumes an IDENT token and returns its name, or fails with
// `Expected a name, found `X`.`.
func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != lexer.IDENT {
		return "", fmt.Errorf("Expected a name, found `%s`.", p.cur.Spelling())
	}
	name := p.cur.Literal
	p.advance()
	return name, nil
}

// Parse parses the whole token stream into a Program.
func Parse(src string) (*Program, error) {
	p := New(src)
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.cur.Kind != lexer.EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	b := &Block{}
	for !p.curIs("}") {
		if p.cur.Kind == lexer.EOF {
			return nil, fmt.Errorf("Expected `%s`, found `%s`.", "}", p.cur.Spelling())
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	p.advance()
	return b, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch {
	case p.curIs("{"):
		return p.parseBlock()
	case p.curIs("var"):
		return p.parseVarOrSet(true)
	case p.curIs("set"):
		return p.parseVarOrSet(false)
	case p.curIs("if"):
		return p.parseIf()
	case p.curIs("while"):
		return p.parseWhile()
	case p.curIs("for"):
		return p.parseFor()
	case p.curIs("break"):
		p.advance()
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return &BreakStmt{}, nil
	case p.curIs("continue"):
		p.advance()
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return &ContinueStmt{}, nil
	case p.curIs("def"):
		return p.parseDef()
	case p.curIs("return"):
		return p.parseReturn()
	case p.curIs("print"):
		return p.parsePrint()
	default:
		return p.parseExprStmt()
	}
}

// parseVarOrSet parses `var NAME = EXPR;` or `set TARGET = EXPR;`. The
// target starts with an identifier primary and accumulates `[EXPR]` and
// `.NAME` suffixes into nested IndexExpr/DotExpr nodes.
func (p *Parser) parseVarOrSet(isVar bool) (Stmt, error) {
	p.advance() // consume `var` / `set`

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var target Expr = &Ident{Name: name}

suffixLoop:
	for {
		switch {
		case p.curIs("["):
			p.advance()
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			target = &IndexExpr{Recv: target, Key: key}
		case p.curIs("."):
			p.advance()
			fname, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			target = &DotExpr{Recv: target, Key: &StrLit{Value: fname}}
		default:
			break suffixLoop
		}
	}

	if err := p.expect("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	if isVar {
		return &VarStmt{Target: target, Value: value}, nil
	}
	return &SetStmt{Target: target, Value: value}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // `if`
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then}

	switch {
	case p.curIs("elif"):
		// parseIf unconditionally advances past its leading keyword, so
		// recursing here consumes the `elif` token the same way it would
		// consume `if`, desugaring the chain into nested IfStmt.Else.
		elifStmt, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = elifStmt
	case p.curIs("else"):
		p.advance()
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
	default:
		stmt.Else = &Block{}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	p.advance() // `while`
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	p.advance() // `for`
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect("in"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Name: name, Iter: iter, Body: body}, nil
}

// parseDef desugars `def NAME ( params ) { body }` into
// `var NAME = func ( params ) { body };`.
func (p *Parser) parseDef() (Stmt, error) {
	p.advance() // `def`
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fn, err := p.parseFuncTail()
	if err != nil {
		return nil, err
	}
	return &VarStmt{Target: &Ident{Name: name}, Value: fn}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	p.advance() // `return`
	if p.curIs(";") {
		p.advance()
		return &ReturnStmt{}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value}, nil
}

func (p *Parser) parsePrint() (Stmt, error) {
	p.advance() // `print`
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &PrintStmt{Value: value}, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ExprStmt{Value: value}, nil
}

// --- expressions, lowest to highest precedence ---

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curIs("and") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.curIs("not") {
		p.advance()
		operand, err := p.parseNot() // right-recursive: `not not x` parses
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "not", Operand: operand}, nil
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() (Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.curIs("=") || p.curIs("#") {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.curIs("<") || p.curIs(">") {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs("+") || p.curIs("-") {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnaryMinus()
	if err != nil {
		return nil, err
	}
	for p.curIs("*") || p.curIs("/") || p.curIs("%") {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnaryMinus() (Expr, error) {
	if p.curIs("-") {
		p.advance()
		operand, err := p.parseUnaryMinus() // right-recursive
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", Operand: operand}, nil
	}
	return p.parsePow()
}

func (p *Parser) parsePow() (Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.curIs("^") {
		p.advance()
		right, err := p.parsePow() // right-associative
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: "^", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.curIs("("):
			p.advance()
			var args []Expr
			for !p.curIs(")") {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.curIs(",") {
					p.advance()
				} else {
					break
				}
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args}
		case p.curIs("["):
			p.advance()
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Recv: expr, Key: key}
		case p.curIs("."):
			p.advance()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &DotExpr{Recv: expr, Key: &StrLit{Value: name}}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch {
	case p.curIs("("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil

	case p.curIs("["):
		p.advance()
		var elems []Expr
		for !p.curIs("]") {
			elem, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if p.curIs(",") {
				p.advance()
			} else {
				break
			}
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return &ArrayLit{Elements: elems}, nil

	case p.curIs("$["):
		p.advance()
		lit := &DictLit{}
		for !p.curIs("]") {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if err := p.expect(":"); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			lit.Keys = append(lit.Keys, name)
			lit.Values = append(lit.Values, value)
			if p.curIs(",") {
				p.advance()
			} else {
				break
			}
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return lit, nil

	case p.curIs("func"):
		p.advance()
		return p.parseFuncTail()

	case p.cur.Kind == lexer.INT:
		v := p.cur.Int
		p.advance()
		return &IntLit{Value: v}, nil

	case p.cur.Kind == lexer.BOOL:
		v := p.cur.Bool
		p.advance()
		return &BoolLit{Value: v}, nil

	case p.cur.Kind == lexer.NULL:
		p.advance()
		return &NullLit{}, nil

	case p.cur.Kind == lexer.STRING:
		v := p.cur.Literal
		p.advance()
		return &StrLit{Value: v}, nil

	case p.cur.Kind == lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &Ident{Name: name}, nil

	default:
		return nil, fmt.Errorf("Unexpected token `%s`.", p.cur.Spelling())
	}
}

// parseFuncTail parses `( params ) { body }`, shared by `func` expressions
// and `def` declarations.
func (p *Parser) parseFuncTail() (Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.curIs(")") {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if p.curIs(",") {
			p.advance()
		} else {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncLit{Params: params, Body: body}, nil
}
