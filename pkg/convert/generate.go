package convert

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/syncasync/pkg/scan"
	"github.com/yaklabco/syncasync/pkg/swiftparam"
)

// ErrUnsupported marks declarations the generator cannot translate.
var ErrUnsupported = errors.New("unsupported declaration")

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects the direction of the conversion.
type Mode string

const (
	// ModeCompletion adds a completion-handler variant of a synchronous
	// function.
	ModeCompletion Mode = "completion"

	// ModeAsync adds an async variant of a completion-handler function.
	ModeAsync Mode = "async"
)

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(name))); mode {
	case ModeCompletion, ModeAsync:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownMode, name, ModeCompletion, ModeAsync)
	}
}

// Options control generated code.
type Options struct {
	Mode Mode

	// CompletionLabel names the handler parameter added in completion mode.
	CompletionLabel string

	// NameSuffix is appended to the generated function's base name.
	NameSuffix string

	// Queue is the dispatch queue expression the completion variant runs on.
	Queue string

	// Indent is one level of body indentation.
	Indent string
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeCompletion,
		CompletionLabel: "completion",
		Queue:           "DispatchQueue.global()",
		Indent:          "    ",
	}
}

// Generator renders the counterpart of a declaration.
type Generator struct {
	opts Options
}

// NewGenerator fills unset options from DefaultOptions.
func NewGenerator(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Mode == "" {
		opts.Mode = def.Mode
	}
	if opts.CompletionLabel == "" {
		opts.CompletionLabel = def.CompletionLabel
	}
	if opts.Queue == "" {
		opts.Queue = def.Queue
	}
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	return &Generator{opts: opts}
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate renders the counterpart of decl. indent is the indentation of
// the declaration's start line; every generated line starts with it.
func (g *Generator) Generate(decl *scan.Declaration, indent string) (string, error) {
	sig := ParseSignature(decl.PostAttributes)
	if sig.Async {
		return "", fmt.Errorf("%w: already async", ErrUnsupported)
	}
	if sig.Rethrows {
		return "", fmt.Errorf("%w: rethrows", ErrUnsupported)
	}

	shape := newShape(decl, indent)

	switch g.opts.Mode {
	case ModeAsync:
		return g.asyncVariant(decl, sig, shape)
	case ModeCompletion:
		return g.completionVariant(decl, sig, shape)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, g.opts.Mode)
	}
}

// shape is the part of a declaration both generators reuse.
type shape struct {
	indent    string
	modifiers []string
	base      string
	generics  string
	receiver  string
	mutating  bool
}

// droppedModifiers do not carry over to a generated overload.
var droppedModifiers = []string{"override", "@objc", "@IBAction", "@discardableResult", "@inlinable"}

func newShape(decl *scan.Declaration, indent string) shape {
	s := shape{indent: indent}

	isStatic := false
	for _, mod := range splitModifiers(decl.Attributes) {
		switch {
		case mod == "static" || mod == "class":
			isStatic = true
		case mod == "mutating":
			s.mutating = true
		}
		if slices.ContainsFunc(droppedModifiers, func(d string) bool {
			return mod == d || strings.HasPrefix(mod, d+"(")
		}) {
			continue
		}
		s.modifiers = append(s.modifiers, mod)
	}

	s.base, s.generics = decl.Name, ""
	if idx := strings.IndexByte(decl.Name, '<'); idx >= 0 {
		s.base, s.generics = decl.Name[:idx], decl.Name[idx:]
	}

	switch {
	case isStatic:
		s.receiver = "Self."
	case indent != "":
		s.receiver = "self."
	}
	return s
}

func (s shape) header(name string, params []swiftparam.Parameter, effects string, where string) string {
	var b strings.Builder
	b.WriteString(s.indent)
	for _, mod := range s.modifiers {
		b.WriteString(mod)
		b.WriteByte(' ')
	}
	b.WriteString("func ")
	b.WriteString(name)
	b.WriteString(s.generics)
	b.WriteByte('(')
	b.WriteString(swiftparam.Join(params))
	b.WriteByte(')')
	b.WriteString(effects)
	if where != "" {
		b.WriteString(" where ")
		b.WriteString(where)
	}
	b.WriteString(" {")
	return b.String()
}

func (s shape) call(params []swiftparam.Parameter) string {
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = p.CallArgument()
	}
	return s.receiver + s.base + "(" + strings.Join(args, ", ") + ")"
}

func checkForwardable(params []swiftparam.Parameter) error {
	for _, p := range params {
		switch {
		case p.InOut:
			return fmt.Errorf("%w: inout parameter %q", ErrUnsupported, p.Name)
		case p.Variadic:
			return fmt.Errorf("%w: variadic parameter %q", ErrUnsupported, p.Name)
		}
	}
	return nil
}

func (g *Generator) completionVariant(decl *scan.Declaration, sig Signature, s shape) (string, error) {
	if s.mutating {
		return "", fmt.Errorf("%w: mutating function", ErrUnsupported)
	}
	if err := checkForwardable(decl.Parameters); err != nil {
		return "", err
	}

	label := g.opts.CompletionLabel
	if n := len(decl.Parameters); n > 0 && takesHandler(decl.Parameters[n-1], label) {
		return "", fmt.Errorf("%w: already takes a %q handler", ErrUnsupported, label)
	}

	var handler, invoke string
	call := s.call(decl.Parameters)
	switch {
	case sig.Throws && sig.ReturnsVoid():
		handler = "(Result<Void, Error>) -> Void"
		invoke = label + "(Result { try " + call + " })"
	case sig.Throws:
		handler = "(Result<" + sig.ReturnType + ", Error>) -> Void"
		invoke = label + "(Result { try " + call + " })"
	case sig.ReturnsVoid():
		handler = "() -> Void"
		invoke = call + "\n" + label + "()"
	default:
		handler = "(" + sig.ReturnType + ") -> Void"
		invoke = label + "(" + call + ")"
	}

	params := append(slices.Clone(decl.Parameters), swiftparam.Parameter{
		Name:       label,
		Type:       handler,
		Attributes: []string{"@escaping"},
	})

	in1 := s.indent + g.opts.Indent
	in2 := in1 + g.opts.Indent

	lines := []string{
		s.header(s.base+g.opts.NameSuffix, params, "", sig.Where),
		in1 + g.opts.Queue + ".async {",
	}
	for _, stmt := range strings.Split(invoke, "\n") {
		lines = append(lines, in2+stmt)
	}
	lines = append(lines, in1+"}", s.indent+"}")

	return strings.Join(lines, "\n"), nil
}

// takesHandler reports whether p is an escaping Void closure passed as label.
func takesHandler(p swiftparam.Parameter, label string) bool {
	return p.ArgumentLabel() == label && p.HasAttribute("escaping") &&
		closureType.MatchString(strings.TrimSpace(p.Type))
}

var closureType = regexp.MustCompile(`^\((.*)\)\s*->\s*(?:Void|\(\))$`)

// handler describes the completion parameter of an async candidate.
type handler struct {
	value    string
	throwing bool
}

func parseHandler(p swiftparam.Parameter) (handler, error) {
	if !p.HasAttribute("escaping") {
		return handler{}, fmt.Errorf("%w: last parameter %q is not an escaping closure", ErrUnsupported, p.Name)
	}
	m := closureType.FindStringSubmatch(strings.TrimSpace(p.Type))
	if m == nil {
		return handler{}, fmt.Errorf("%w: last parameter %q does not return Void", ErrUnsupported, p.Name)
	}

	inner := strings.TrimSpace(m[1])
	if strings.HasPrefix(inner, "Result<") && strings.HasSuffix(inner, ">") {
		args := inner[len("Result<") : len(inner)-1]
		comma := topLevelComma(args)
		if comma < 0 {
			return handler{}, fmt.Errorf("%w: malformed Result type %q", ErrUnsupported, inner)
		}
		value := strings.TrimSpace(args[:comma])
		if isVoid(value) {
			value = ""
		}
		return handler{value: value, throwing: true}, nil
	}

	if topLevelComma(inner) >= 0 {
		return handler{}, fmt.Errorf("%w: completion with several values", ErrUnsupported)
	}
	if isVoid(inner) {
		inner = ""
	}
	return handler{value: inner}, nil
}

func (g *Generator) asyncVariant(decl *scan.Declaration, sig Signature, s shape) (string, error) {
	if len(decl.Parameters) == 0 {
		return "", fmt.Errorf("%w: no completion parameter", ErrUnsupported)
	}
	if sig.Throws {
		return "", fmt.Errorf("%w: throwing completion-handler function", ErrUnsupported)
	}
	if !sig.ReturnsVoid() {
		return "", fmt.Errorf("%w: completion-handler function returns %s", ErrUnsupported, sig.ReturnType)
	}

	last := len(decl.Parameters) - 1
	h, err := parseHandler(decl.Parameters[last])
	if err != nil {
		return "", err
	}
	rest := decl.Parameters[:last]
	if err := checkForwardable(rest); err != nil {
		return "", err
	}

	effects := " async"
	continuation := "withCheckedContinuation"
	await := "await "
	if h.throwing {
		effects += " throws"
		continuation = "withCheckedThrowingContinuation"
		await = "try await "
	}
	if h.value != "" {
		effects += " -> " + h.value
		await = "return " + await
	}

	call := s.call(rest)
	if len(rest) == 0 {
		call = s.receiver + s.base
	}

	var open, resume string
	switch {
	case h.throwing:
		open, resume = " { result in", "continuation.resume(with: result)"
	case h.value != "":
		open, resume = " { value in", "continuation.resume(returning: value)"
	default:
		open, resume = " {", "continuation.resume()"
	}

	in1 := s.indent + g.opts.Indent
	in2 := in1 + g.opts.Indent
	in3 := in2 + g.opts.Indent

	lines := []string{
		s.header(s.base+g.opts.NameSuffix, rest, effects, sig.Where),
		in1 + await + continuation + " { continuation in",
		in2 + call + open,
		in3 + resume,
		in2 + "}",
		in1 + "}",
		s.indent + "}",
	}
	return strings.Join(lines, "\n"), nil
}

// Selector renders the Swift reference to a function, as in "sum(a:b:)",
// followed by " async" for async functions. Overloads that differ only in
// parameter types share a selector.
func Selector(decl *scan.Declaration) string {
	base, _, _ := strings.Cut(decl.Name, "<")
	return selector(base, decl.Parameters, ParseSignature(decl.PostAttributes).Async)
}

// CounterpartSelector is the Selector of the function Generate renders for
// decl. It is empty when decl has no counterpart in the current mode.
func (g *Generator) CounterpartSelector(decl *scan.Declaration) string {
	base, _, _ := strings.Cut(decl.Name, "<")
	base += g.opts.NameSuffix

	switch g.opts.Mode {
	case ModeAsync:
		if len(decl.Parameters) == 0 {
			return ""
		}
		return selector(base, decl.Parameters[:len(decl.Parameters)-1], true)
	case ModeCompletion:
		params := append(slices.Clone(decl.Parameters), swiftparam.Parameter{Name: g.opts.CompletionLabel})
		return selector(base, params, false)
	default:
		return ""
	}
}

func selector(base string, params []swiftparam.Parameter, async bool) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('(')
	for _, p := range params {
		label := p.ArgumentLabel()
		if label == "" {
			label = "_"
		}
		b.WriteString(label)
		b.WriteByte(':')
	}
	b.WriteByte(')')
	if async {
		b.WriteString(" async")
	}
	return b.String()
}

// splitModifiers splits modifier text at whitespace outside parentheses, so
// "@available(iOS 13, *) public" yields two modifiers.
func splitModifiers(attrs string) []string {
	var (
		mods  []string
		depth int
		start = -1
	)
	for i, r := range attrs {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if start >= 0 {
				mods = append(mods, attrs[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		mods = append(mods, attrs[start:])
	}
	return mods
}

// topLevelComma returns the index of the first comma outside brackets, or
// -1. The '>' of an arrow does not close a bracket.
func topLevelComma(text string) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i == 0 || text[i-1] != '-' {
				depth--
			}
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
