// Package diff computes line diffs between two markdown renderings,
// used to compare tab contents.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

// Line is one line of a diff with its position in each side.
type Line struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

// Result is a full line diff plus change counts.
type Result struct {
	Lines   []Line `json:"lines"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// MaxLines bounds the combined input size; larger inputs are refused
// rather than diffed.
const MaxLines = 5000

// Lines diffs two texts line by line. The second return value is true
// when the inputs exceed MaxLines combined.
func Lines(before, after string) (*Result, bool) {
	if lineCount(before)+lineCount(after) > MaxLines {
		return nil, true
	}

	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	result := &Result{}
	oldLine := 1
	newLine := 1
	for _, d := range diffs {
		chunk := strings.Split(d.Text, "\n")
		if len(chunk) > 0 && chunk[len(chunk)-1] == "" {
			chunk = chunk[:len(chunk)-1]
		}
		for _, line := range chunk {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result.Lines = append(result.Lines, Line{Type: LineContext, Text: line, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				result.Lines = append(result.Lines, Line{Type: LineRemoved, Text: line, OldLine: oldLine})
				result.Removed++
				oldLine++
			case diffmatchpatch.DiffInsert:
				result.Lines = append(result.Lines, Line{Type: LineAdded, Text: line, NewLine: newLine})
				result.Added++
				newLine++
			}
		}
	}
	return result, false
}

func lineCount(value string) int {
	if value == "" {
		return 0
	}
	return strings.Count(value, "\n") + 1
}
