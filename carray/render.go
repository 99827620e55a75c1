package carray

import (
	"fmt"
	"strings"
)

// Field names of the key storage structure, in output order.
const (
	FieldModulus       = "moduloData"
	FieldExponent      = "expData"
	FieldBarrett       = "barrettData"
	FieldInverseModulo = "inverseModuloData"
	FieldRBar          = "rBarData"
)

// Fields lists the field names in output order.
var Fields = []string{FieldModulus, FieldExponent, FieldBarrett, FieldInverseModulo, FieldRBar}

const (
	perLine = 8
	indent  = "    "
)

// Render formats b as the body of a C initializer list.
// Each value is written as 0xHHu followed by a comma, eight values per line.
func Render(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(indent) + len(b)*7 + (len(b)/perLine)*len(indent))

	sb.WriteString(indent)
	for i, v := range b {
		if i%perLine == 0 && i != 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		fmt.Fprintf(&sb, "0x%02Xu,", v)
		if i%perLine != perLine-1 && i != len(b)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// Block formats b as a designated initializer for the named field.
func Block(name string, b []byte) string {
	return "." + name + " =\n{\n" + Render(b) + "\n},"
}
