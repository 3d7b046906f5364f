package tabtree

import (
	"fmt"
	"strings"
)

// TabNotFoundError reports a reference (id or title) that matched no
// tab. Ref is the caller's value verbatim.
type TabNotFoundError struct {
	Ref string
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("tab not found: %q", e.Ref)
}

// AmbiguousTitleError reports a title matching two or more tabs; it
// carries the colliding identifiers so callers can retarget by id.
type AmbiguousTitleError struct {
	Title  string
	TabIDs []string
}

func (e *AmbiguousTitleError) Error() string {
	return fmt.Sprintf("tab title %q matches multiple tabs: %s", e.Title, strings.Join(e.TabIDs, ", "))
}

// AmbiguousTargetError reports a missing reference where one tab had
// to be singled out among several roots.
type AmbiguousTargetError struct {
	Roots int
}

func (e *AmbiguousTargetError) Error() string {
	return fmt.Sprintf("document has %d root tabs; a tab id or title is required", e.Roots)
}
