package expander

import (
	"regexp"
	"strings"
)

// directivePattern matches one wildcard @import/@use/@forward line.
//
// Groups: 1 leading indentation or block comment opener, 2 keyword,
// 3 quoted target containing '*', 4 trailing whitespace and comment.
var directivePattern = regexp.MustCompile(
	`(?m)^([ \t]*(?:/\*.*)?)@(import|use|forward)[ \t]+["']([^"'\r\n]*\*[^"'\r\n]*(?:\.scss|\.sass)?)["'];?([ \t]*(?:/[/*][^\r\n]*)?)\r?$`,
)

// directive is a single match located in the current buffer.
type directive struct {
	start, end int    // span in the buffer, excluding the line break
	text       string // full matched text
	lead       string
	keyword    string
	pattern    string
	trail      string
}

// findDirective returns the first directive at or after offset, or nil.
func findDirective(text string, offset int) *directive {
	loc := directivePattern.FindStringSubmatchIndex(text[offset:])
	if loc == nil {
		return nil
	}
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return text[offset+loc[2*n] : offset+loc[2*n+1]]
	}
	d := &directive{
		start:   offset + loc[0],
		end:     offset + loc[1],
		lead:    group(1),
		keyword: group(2),
		pattern: group(3),
		trail:   group(4),
	}
	// \r is consumed by the match but belongs to the line break
	if strings.HasSuffix(text[d.start:d.end], "\r") {
		d.end--
	}
	d.text = text[d.start:d.end]
	return d
}

// indent returns the whitespace that precedes the directive or its comment opener.
func (d *directive) indent() string {
	return d.lead[:len(d.lead)-len(strings.TrimLeft(d.lead, " \t"))]
}

// leadingComment returns the block comment opener, or "" when the lead is only indentation.
func (d *directive) leadingComment() string {
	return strings.TrimSpace(d.lead)
}

// trailingComment returns the trailing comment without surrounding whitespace.
func (d *directive) trailingComment() string {
	return strings.TrimSpace(d.trail)
}

// render builds the replacement text for the directive: the leading comment,
// one directive per target, then the trailing comment, joined by newline.
func (d *directive) render(targets []string, terminator string) string {
	indent := d.indent()
	lines := make([]string, 0, len(targets)+2)
	if c := d.leadingComment(); c != "" {
		lines = append(lines, indent+c)
	}
	for _, target := range targets {
		lines = append(lines, indent+"@"+d.keyword+` "`+target+`"`+terminator)
	}
	if c := d.trailingComment(); c != "" {
		lines = append(lines, indent+c)
	}
	return strings.Join(lines, "\n")
}
