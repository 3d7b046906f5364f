package mutate

import "github.com/dgallion1/docstab/internal/gdocs"

// tabScopePaths maps each known request kind to the object paths
// inside its body that accept a tabId. Kinds absent from both tables
// carry no tab-scope concept, or are unrecognized, and pass through
// untouched.
var tabScopePaths = map[string][][]string{
	"insertText":             {{"location"}, {"endOfSegmentLocation"}},
	"insertTable":            {{"location"}, {"endOfSegmentLocation"}},
	"insertInlineImage":      {{"location"}, {"endOfSegmentLocation"}},
	"insertPageBreak":        {{"location"}, {"endOfSegmentLocation"}},
	"insertSectionBreak":     {{"location"}, {"endOfSegmentLocation"}},
	"deleteContentRange":     {{"range"}},
	"updateTextStyle":        {{"range"}},
	"updateParagraphStyle":   {{"range"}},
	"createParagraphBullets": {{"range"}},
	"deleteParagraphBullets": {{"range"}},
	"createNamedRange":       {{"range"}},
	"insertTableRow":         {{"tableCellLocation", "tableStartLocation"}},
	"insertTableColumn":      {{"tableCellLocation", "tableStartLocation"}},
	"deleteTableRow":         {{"tableCellLocation", "tableStartLocation"}},
	"deleteTableColumn":      {{"tableCellLocation", "tableStartLocation"}},
}

// tabsCriteriaKinds are the kinds scoped by a tabsCriteria id list
// instead of a per-location tabId.
var tabsCriteriaKinds = map[string]bool{
	"replaceAllText": true,
}

// ScopeRequests injects tabID into every request whose kind carries a
// recognized tab-scope field, in place, preserving order. A scope the
// caller already set is never overwritten, which makes a second pass
// over the output a no-op. An empty tabID leaves everything untouched.
func ScopeRequests(requests []gdocs.Request, tabID string) []gdocs.Request {
	if tabID == "" {
		return requests
	}
	for _, req := range requests {
		for kind, body := range req.Ops {
			m, ok := body.(map[string]any)
			if !ok {
				continue
			}
			for _, path := range tabScopePaths[kind] {
				injectTabID(m, path, tabID)
			}
			if tabsCriteriaKinds[kind] {
				injectTabsCriteria(m, tabID)
			}
		}
	}
	return requests
}

// injectTabID descends the path and sets tabId on the object at its
// end, unless the object is absent or already carries a non-empty one.
func injectTabID(body map[string]any, path []string, tabID string) {
	current := body
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	if existing, ok := current["tabId"].(string); ok && existing != "" {
		return
	}
	current["tabId"] = tabID
}

func injectTabsCriteria(body map[string]any, tabID string) {
	if criteria, ok := body["tabsCriteria"].(map[string]any); ok {
		if ids, ok := criteria["tabIds"].([]any); ok && len(ids) > 0 {
			return
		}
	}
	body["tabsCriteria"] = map[string]any{"tabIds": []any{tabID}}
}
