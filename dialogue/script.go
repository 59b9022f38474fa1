// Package dialogue parses character scripts into speaker/text lines and keeps
// a reloadable cache of them.
package dialogue

import (
	"regexp"
	"strings"
)

// Line is one entry of a script.
type Line struct {
	Speaker string
	Text    string
}

// A record is a header line `<anything>: "<speaker>", <ignored>` followed by
// the line of text the speaker says.
var recordPattern = regexp.MustCompile(`:\s*"([^"\n]*)",([^\n]*)\n([^\n]*)`)

// Parse extracts every record from a script. Input without any well-formed
// record yields no lines.
func Parse(data []byte) []Line {
	matches := recordPattern.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil
	}
	lines := make([]Line, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, Line{
			Speaker: string(m[1]),
			Text:    strings.TrimRight(string(m[3]), "\r"),
		})
	}
	return lines
}
