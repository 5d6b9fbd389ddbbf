// Package swiftparam decomposes the text of a Swift parameter list into
// structured parameters.
package swiftparam

import "strings"

// Unlabeled is the external label that suppresses the argument label.
const Unlabeled = "_"

// Parameter is one entry of a Swift parameter clause.
type Parameter struct {
	// Label is the external argument label. Empty when the parameter name is
	// also used as its label; Unlabeled for positional arguments.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Name is the internal parameter name.
	Name string `json:"name" yaml:"name"`

	// Type is the parameter type without attributes, inout or "...".
	Type string `json:"type" yaml:"type"`

	// Attributes holds type attributes such as @escaping, in source order.
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	InOut    bool `json:"inout,omitempty" yaml:"inout,omitempty"`
	Variadic bool `json:"variadic,omitempty" yaml:"variadic,omitempty"`

	// Default is the default value expression, verbatim.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// ArgumentLabel returns the label a caller writes, or "" for positional
// arguments.
func (p Parameter) ArgumentLabel() string {
	switch p.Label {
	case "":
		return p.Name
	case Unlabeled:
		return ""
	default:
		return p.Label
	}
}

// CallArgument renders the argument that forwards this parameter to a call
// of the declaring function, e.g. "count: count", "&buffer" or "value".
func (p Parameter) CallArgument() string {
	value := p.Name
	if p.InOut {
		value = "&" + value
	}
	if label := p.ArgumentLabel(); label != "" {
		return label + ": " + value
	}
	return value
}

// HasAttribute reports whether the type carries the given attribute,
// written with or without the leading '@'.
func (p Parameter) HasAttribute(name string) bool {
	name = "@" + strings.TrimPrefix(name, "@")
	for _, attr := range p.Attributes {
		if attr == name || strings.HasPrefix(attr, name+"(") {
			return true
		}
	}
	return false
}

// FullType returns the type as written in a declaration, with attributes,
// inout and the variadic ellipsis.
func (p Parameter) FullType() string {
	var builder strings.Builder
	for _, attr := range p.Attributes {
		builder.WriteString(attr)
		builder.WriteByte(' ')
	}
	if p.InOut {
		builder.WriteString("inout ")
	}
	builder.WriteString(p.Type)
	if p.Variadic {
		builder.WriteString("...")
	}
	return builder.String()
}

// String renders the parameter in declaration form.
func (p Parameter) String() string {
	var builder strings.Builder
	if p.Label != "" {
		builder.WriteString(p.Label)
		builder.WriteByte(' ')
	}
	builder.WriteString(p.Name)
	builder.WriteString(": ")
	builder.WriteString(p.FullType())
	if p.Default != "" {
		builder.WriteString(" = ")
		builder.WriteString(p.Default)
	}
	return builder.String()
}

// Join renders params as a comma separated parameter clause body.
func Join(params []Parameter) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = param.String()
	}
	return strings.Join(parts, ", ")
}
