package manifest

import (
	"io"
	"strings"
)

const indentUnit = "  "

// indentWriter writes lines at a fixed two-space indentation. The first
// write error is kept and later writes are dropped.
type indentWriter struct {
	w   io.Writer
	err error
}

func (iw *indentWriter) line(depth int, text string) {
	if iw.err != nil {
		return
	}
	_, iw.err = io.WriteString(iw.w, strings.Repeat(indentUnit, depth)+text+"\n")
}

func (iw *indentWriter) field(depth int, key, value string) {
	iw.line(depth, key+": "+value)
}

// item writes a sequence entry "- text" at depth.
func (iw *indentWriter) item(depth int, text string) {
	iw.line(depth, "- "+text)
}
