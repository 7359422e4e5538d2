package abi

import (
	"strconv"
	"unicode"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/ztx/internal/domain"
)

// ParseType parses a type string such as "uint256", "address[2][]" or
// "(address,uint256)[]". Tuple field names are accepted inside parentheses.
func ParseType(s string) (Type, error) {
	p := &parser{src: s}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return Type{}, p.fail("unexpected trailing input")
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for constants.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseSignature parses a human-readable function fragment, with or without the
// leading "function" keyword, parameter names and trailing modifiers:
//
//	transfer(address,uint256)
//	function transfer(address to, uint256 amount) external returns (bool)
//	function balanceOf(address owner) view returns (uint256)
func ParseSignature(s string) (FunctionSignature, error) {
	p := &parser{src: s}
	p.skipSpace()

	if word := p.peekIdent(); word == "function" {
		p.pos += len(word)
		p.skipSpace()
	}

	name := p.ident()
	if name == "" {
		return FunctionSignature{}, p.fail("missing function name")
	}
	p.skipSpace()

	inputs, err := p.parseParamList()
	if err != nil {
		return FunctionSignature{}, err
	}

	fn := FunctionSignature{Name: name, Inputs: inputs, Mutability: NonPayable}
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		word := p.ident()
		switch word {
		case "view":
			fn.Mutability = View
		case "pure":
			fn.Mutability = Pure
		case "constant":
			fn.Mutability = View
		case "payable":
			fn.Mutability = Payable
		case "nonpayable", "external", "public", "virtual", "override":
		case "returns":
			p.skipSpace()
			outputs, err := p.parseParamList()
			if err != nil {
				return FunctionSignature{}, err
			}
			fn.Outputs = outputs
		case "":
			return FunctionSignature{}, p.fail("unexpected character")
		default:
			return FunctionSignature{}, p.fail("unknown modifier " + strconv.Quote(word))
		}
	}

	return fn, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(reason string) error {
	return &domain.MalformedInterfaceError{Fragment: p.src, Reason: reason + " at offset " + strconv.Itoa(p.pos)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_' || c == '$':
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}

func (p *parser) peekIdent() string {
	end := p.pos
	for end < len(p.src) && isIdentByte(p.src[end], end == p.pos) {
		end++
	}
	return p.src[p.pos:end]
}

func (p *parser) ident() string {
	word := p.peekIdent()
	p.pos += len(word)
	return word
}

// parseType reads a base type followed by any number of array suffixes.
func (p *parser) parseType() (Type, error) {
	var base Type

	switch {
	case p.peek() == '(':
		fields, err := p.parseParamList()
		if err != nil {
			return Type{}, err
		}
		base = Tuple(fields...)
	case p.peekIdent() == "tuple":
		p.pos += len("tuple")
		p.skipSpace()
		if p.peek() != '(' {
			return Type{}, p.fail("tuple without components")
		}
		fields, err := p.parseParamList()
		if err != nil {
			return Type{}, err
		}
		base = Tuple(fields...)
	default:
		word := p.ident()
		if word == "" {
			return Type{}, p.fail("expected a type")
		}
		t, err := elementary(word)
		if err != nil {
			return Type{}, p.fail(err.Error())
		}
		base = t
	}

	for p.peek() == '[' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		digits := p.src[start:p.pos]
		if p.peek() != ']' {
			return Type{}, p.fail("unterminated array suffix")
		}
		p.pos++

		if digits == "" {
			base = SliceOf(base)
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n == 0 {
			return Type{}, p.fail("invalid array length " + strconv.Quote(digits))
		}
		base = ArrayOf(base, n)
	}

	return base, nil
}

// parseParamList reads "( param, param, ... )".
func (p *parser) parseParamList() ([]Param, error) {
	if p.peek() != '(' {
		return nil, p.fail("expected '('")
	}
	p.pos++
	p.skipSpace()

	var params []Param
	if p.peek() == ')' {
		p.pos++
		return params, nil
	}

	for {
		p.skipSpace()
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return params, nil
		case 0:
			return nil, p.fail("mismatched parentheses")
		default:
			return nil, p.fail("unexpected character " + strconv.QuoteRune(rune(p.peek())))
		}
	}
}

// parseParam reads a type, optional data-location keywords and an optional name.
func (p *parser) parseParam() (Param, error) {
	t, err := p.parseType()
	if err != nil {
		return Param{}, err
	}

	var name string
	for {
		p.skipSpace()
		word := p.peekIdent()
		if word == "" {
			break
		}
		p.pos += len(word)
		switch word {
		case "indexed", "memory", "calldata", "storage", "payable":
			continue
		}
		if name != "" {
			return Param{}, p.fail("unexpected identifier " + strconv.Quote(word))
		}
		name = word
	}

	return Param{Name: name, Type: t}, nil
}

// elementary maps a scalar type token to its descriptor. The aliases uint, int
// and byte are expanded before go-ethereum parses the token.
func elementary(word string) (Type, error) {
	canonical := word
	switch word {
	case "uint":
		canonical = "uint256"
	case "int":
		canonical = "int256"
	case "byte":
		canonical = "bytes1"
	}

	gt, err := gethabi.NewType(canonical, "", nil)
	if err != nil {
		return Type{}, unknownType(word)
	}
	t, err := fromGeth(gt)
	if err != nil || !t.IsScalar() || t.Canonical() != canonical {
		return Type{}, unknownType(word)
	}
	return t, nil
}

type unknownTypeError string

func (e unknownTypeError) Error() string { return "unknown type " + strconv.Quote(string(e)) }

func unknownType(word string) error { return unknownTypeError(word) }
