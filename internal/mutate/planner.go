// Package mutate turns caller intent into remote mutation requests
// against a resolved tab. The planner never mutates local state and
// never scans content: it computes offsets and scope, the remote
// service executes.
package mutate

import (
	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/dgallion1/docstab/internal/tabtree"
)

// PlanAppend builds an insertText request at the tab's end-of-stream
// offset, before the stream-terminating newline, so the text lands
// inside the tab body. Non-empty tabs get a leading newline so the
// appended text starts on its own line.
func PlanAppend(tab *tabtree.Node, text string) gdocs.Request {
	if tab.Body.StreamLength() > 0 {
		text = "\n" + text
	}
	return gdocs.NewInsertText(text, tab.Body.EndOffset(), tab.ID)
}

// PlanInsert builds an insertText request at a 0-based index counted
// in UTF-16 code units over the tab's content stream. Index L (the
// stream length) is the append position and behaves identically to
// PlanAppend.
func PlanInsert(tab *tabtree.Node, text string, index int64) (gdocs.Request, error) {
	length := tab.Body.StreamLength()
	if index < 0 || index > length {
		return gdocs.Request{}, &InvalidRangeError{Index: index, Max: length}
	}
	if index == length {
		return PlanAppend(tab, text), nil
	}
	return gdocs.NewInsertText(text, tab.Body.StartOffset()+index, tab.ID), nil
}

// PlanDelete builds a deleteContentRange request over [start, end) in
// 0-based UTF-16 indices relative to the tab's content stream.
func PlanDelete(tab *tabtree.Node, start, end int64) (gdocs.Request, error) {
	length := tab.Body.StreamLength()
	if start < 0 || start > length {
		return gdocs.Request{}, &InvalidRangeError{Index: start, Max: length}
	}
	if end < start || end > length {
		return gdocs.Request{}, &InvalidRangeError{Index: end, Max: length}
	}
	base := tab.Body.StartOffset()
	return gdocs.NewDeleteContentRange(base+start, base+end, tab.ID), nil
}

// PlanReplace builds a replaceAllText request. A non-empty tabID
// constrains the replacement to that tab; an empty tabID applies it
// across the whole document. Match semantics beyond matchCase are the
// remote service's.
func PlanReplace(find, replaceWith string, matchCase bool, tabID string) gdocs.Request {
	var tabIDs []string
	if tabID != "" {
		tabIDs = []string{tabID}
	}
	return gdocs.NewReplaceAllText(find, replaceWith, matchCase, tabIDs)
}
