package writer

import (
	"bytes"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextDiff renders a context diff between the existing and proposed
// content of path.
func ContextDiff(path string, existing, proposed []byte) string {
	if isBinary(existing) || isBinary(proposed) {
		return "Binary files " + path + " differ\n"
	}
	diff := difflib.ContextDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(proposed)),
		FromFile: path + " (existing)",
		ToFile:   path + " (new)",
		Context:  3,
		Eol:      "\n",
	}
	text, err := difflib.GetContextDiffString(diff)
	if err != nil {
		return "Files " + path + " differ\n"
	}
	return text
}

func isBinary(b []byte) bool {
	return bytes.IndexByte(b, 0) >= 0
}
