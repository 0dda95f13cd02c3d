// Package audit reconstructs the human-readable processing history carried
// in a picture file's provenance lines.
package audit

import (
	"strconv"
	"strings"
)

const indentUnit = "    "

// Setting is one reader configuration item appended to the trail.
type Setting struct {
	Key   string
	Value string
}

// Build formats provenance lines into an audit trail for the file basename.
//
// The first line follows "<basename> = " directly. Nesting is tracked from
// brace hints: a line starting with '{' opens a level before it is written
// and a line containing '}' closes one after. The trail ends with the
// reader invocation and its settings, in the order given.
func Build(basename string, lines []string, settings ...Setting) string {
	var b strings.Builder
	b.WriteString(basename)
	b.WriteString(" = ")

	indent := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "{") {
			indent++
		}
		if i > 0 && indent > 0 {
			b.WriteString(strings.Repeat(indentUnit, indent))
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if strings.Contains(line, "}") {
			indent--
		}
	}

	b.WriteString("data = kwpic.Reader(")
	b.WriteString(basename)
	b.WriteString(")\n")
	for _, s := range settings {
		b.WriteString(indentUnit)
		b.WriteString(s.Key)
		b.WriteString(" = ")
		b.WriteString(strconv.Quote(s.Value))
		b.WriteByte('\n')
	}
	return b.String()
}
