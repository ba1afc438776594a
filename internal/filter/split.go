package filter

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// clauseBoundary finds a complete "field op value" clause that is followed,
// after whitespace, by the start of another clause on the same line.
// The lookahead leaves the next clause unconsumed so chains of any length
// are split in a single pass. ECMAScript mode keeps \w to [A-Za-z0-9_].
var clauseBoundary = regexp2.MustCompile(
	`([a-zA-Z_]+)\s*([><=!]+)\s*([\w.]+)\s+(?=[a-zA-Z_]+\s*[><=!]+)`,
	regexp2.ECMAScript,
)

// SplitClauses puts space-separated clauses on their own lines, turning
// "price = 400 category = Drinks" into "price = 400\ncategory = Drinks".
//
// The split is heuristic: values containing spaces or quotes are not
// recognised as clause ends, so `title = "A B" price = 1` stays on one line.
func SplitClauses(text string) string {
	out, err := clauseBoundary.Replace(text, "$1 $2 $3\n", -1, -1)
	if err != nil {
		// Only a match timeout can fail here; fall back to the raw text.
		out = text
	}
	return strings.TrimLeft(out, " \t\r\n\f\v")
}
