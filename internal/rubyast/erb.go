package rubyast

import (
	"regexp"

	"github.com/nwaobi/packcheck/internal/packmodel"
)

var erbTagRe = regexp.MustCompile(`<%={0,2}-?|-?%>`)

// StripERBTags replaces ERB delimiters ("<%", "<%=", "<%==", "-%>", "%>")
// with equal-width spaces, leaving the embedded Ruby expressions in place at
// their original byte offsets so Parse's line/column bookkeeping stays
// correct. It does not strip literal HTML between tags: Parse scans that text
// like any other line, so a capitalized word in the HTML is recorded as a
// constant reference.
func StripERBTags(src []byte) []byte {
	return erbTagRe.ReplaceAllFunc(src, func(tag []byte) []byte {
		out := make([]byte, len(tag))
		for i := range out {
			out[i] = ' '
		}
		return out
	})
}

// ParseERB strips ERB delimiters and then parses the result as Ruby.
func ParseERB(relPath string, src []byte) (*packmodel.ProcessedFile, error) {
	return Parse(relPath, StripERBTags(src))
}
