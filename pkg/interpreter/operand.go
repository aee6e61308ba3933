package interpreter

import (
	"regexp"
	"strconv"
	"strings"
)

// ArgKind is the declared type of an instruction operand.
type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgBool
	ArgString
	ArgVar
	ArgLabel
	ArgType
)

var argKindNames = map[ArgKind]string{
	ArgInt:    "int",
	ArgBool:   "bool",
	ArgString: "string",
	ArgVar:    "var",
	ArgLabel:  "label",
	ArgType:   "type",
}

func (k ArgKind) String() string {
	return argKindNames[k]
}

// ParseArgKind maps the textual operand type of a source document to an ArgKind.
func ParseArgKind(s string) (ArgKind, bool) {
	for k, name := range argKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Group is the capability an opcode requires of an operand position.
type Group int

const (
	GroupVar Group = iota
	GroupSymbol
	GroupLabel
	GroupType
)

func (g Group) String() string {
	switch g {
	case GroupVar:
		return "var"
	case GroupSymbol:
		return "symbol"
	case GroupLabel:
		return "label"
	default:
		return "type"
	}
}

// In reports whether an operand of kind k satisfies g.
func (k ArgKind) In(g Group) bool {
	switch g {
	case GroupVar:
		return k == ArgVar
	case GroupSymbol:
		return k == ArgInt || k == ArgBool || k == ArgString || k == ArgVar
	case GroupLabel:
		return k == ArgLabel
	case GroupType:
		return k == ArgType
	}
	return false
}

const identifier = `[a-zA-Z_\-$&%*][0-9a-zA-Z_\-$&%*]*`

// Operand grammars, anchored on both ends
var argRegexes = map[ArgKind]*regexp.Regexp{
	ArgInt:    regexp.MustCompile(`^[+-]?[0-9]+$`),
	ArgBool:   regexp.MustCompile(`^(true|false)$`),
	ArgString: regexp.MustCompile(`^(\\[0-9]{3}|[^[:cntrl:]\s#\\])*$`),
	ArgVar:    regexp.MustCompile(`^(GF|LF|TF)@` + identifier + `$`),
	ArgLabel:  regexp.MustCompile(`^` + identifier + `$`),
	ArgType:   regexp.MustCompile(`^(int|bool|string)$`),
}

var escapeRegex = regexp.MustCompile(`\\[0-9]{3}`)

// Regex returns the grammar an operand of kind k must match
func (k ArgKind) Regex() *regexp.Regexp {
	return argRegexes[k]
}

// FrameTag selects one of the three variable frames.
type FrameTag string

const (
	GlobalFrame    FrameTag = "GF"
	LocalFrame     FrameTag = "LF"
	TemporaryFrame FrameTag = "TF"
)

// VarRef is a variable operand split into its frame and bare name.
type VarRef struct {
	Frame FrameTag
	Name  string
}

func (r VarRef) String() string {
	return string(r.Frame) + "@" + r.Name
}

// Operand is one validated, immutable instruction argument.
type Operand struct {
	Pos  int     // 1-based position in the instruction
	Kind ArgKind // declared type
	Text string  // source text, before unescaping

	ref   VarRef // ArgVar only
	value Value  // literal kinds only
}

// NewOperand validates text against the grammar of kind and pre-converts
// literals to their Value.
func NewOperand(pos int, kind ArgKind, text string) (Operand, error) {
	re := kind.Regex()
	if re == nil {
		return Operand{}, Errorf(KindSourceFormat, "unknown operand type %d", kind)
	}
	if !re.MatchString(text) {
		return Operand{}, Errorf(KindLexical, "operand %d: %q is not a valid %s", pos, text, kind)
	}

	o := Operand{Pos: pos, Kind: kind, Text: text}
	switch kind {
	case ArgVar:
		tag, name, _ := strings.Cut(text, "@")
		o.ref = VarRef{Frame: FrameTag(tag), Name: name}
	case ArgInt, ArgBool, ArgString:
		v, err := literal(kind, text)
		if err != nil {
			return Operand{}, err
		}
		o.value = v
	}
	return o, nil
}

// literal converts already validated literal text to a Value.
func literal(kind ArgKind, text string) (Value, error) {
	switch kind {
	case ArgInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, Errorf(KindInternal, "integer literal %q: %v", text, err)
		}
		return NewInt(n), nil
	case ArgBool:
		return NewBool(text == "true"), nil
	case ArgString:
		return NewString(unescape(text)), nil
	}
	return Value{}, Errorf(KindInternal, "%s is not a literal type", kind)
}

// unescape replaces every \DDD sequence with the code point DDD.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return escapeRegex.ReplaceAllStringFunc(s, func(seq string) string {
		n, _ := strconv.Atoi(seq[1:])
		return string(rune(n))
	})
}

// Var returns the variable reference of a var operand.
func (o Operand) Var() VarRef {
	return o.ref
}

// Name returns the bare text of a label or type operand.
func (o Operand) Name() string {
	return o.Text
}

// Literal returns the converted value of an int, bool or string operand.
func (o Operand) Literal() (Value, bool) {
	switch o.Kind {
	case ArgInt, ArgBool, ArgString:
		return o.value, true
	}
	return Value{}, false
}

func (o Operand) String() string {
	return o.Kind.String() + "@" + o.Text
}
