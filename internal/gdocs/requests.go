package gdocs

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Request is one batchUpdate request object: a JSON object keyed by
// operation kind. Bodies are kept as generic maps so fields this layer
// does not model survive a decode/encode round trip unchanged; numbers
// are preserved as json.Number to avoid float conversion.
type Request struct {
	Ops map[string]any
}

func (r *Request) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	m := make(map[string]any)
	if err := dec.Decode(&m); err != nil {
		return err
	}
	r.Ops = m
	return nil
}

func (r Request) MarshalJSON() ([]byte, error) {
	if r.Ops == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Ops)
}

// Kinds returns the operation names present on the request, sorted.
// A well-formed batchUpdate request carries exactly one.
func (r Request) Kinds() []string {
	kinds := make([]string, 0, len(r.Ops))
	for k := range r.Ops {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// NewInsertText builds an insertText request at the given UTF-16
// offset. An empty tabID leaves the location unscoped.
func NewInsertText(text string, offset int64, tabID string) Request {
	loc := map[string]any{"index": offset}
	if tabID != "" {
		loc["tabId"] = tabID
	}
	return Request{Ops: map[string]any{
		"insertText": map[string]any{
			"location": loc,
			"text":     text,
		},
	}}
}

// NewDeleteContentRange builds a deleteContentRange request over
// [start, end) in UTF-16 offsets.
func NewDeleteContentRange(start, end int64, tabID string) Request {
	rng := map[string]any{"startIndex": start, "endIndex": end}
	if tabID != "" {
		rng["tabId"] = tabID
	}
	return Request{Ops: map[string]any{
		"deleteContentRange": map[string]any{
			"range": rng,
		},
	}}
}

// NewReplaceAllText builds a replaceAllText request. Match semantics
// beyond matchCase belong to the remote service. A non-empty tabIDs
// list constrains the replacement to those tabs; an empty list applies
// it document-wide.
func NewReplaceAllText(find, replaceWith string, matchCase bool, tabIDs []string) Request {
	body := map[string]any{
		"containsText": map[string]any{
			"text":      find,
			"matchCase": matchCase,
		},
		"replaceText": replaceWith,
	}
	if len(tabIDs) > 0 {
		ids := make([]any, len(tabIDs))
		for i, id := range tabIDs {
			ids[i] = id
		}
		body["tabsCriteria"] = map[string]any{"tabIds": ids}
	}
	return Request{Ops: map[string]any{"replaceAllText": body}}
}

// BatchUpdateResponse is the remote reply to a batchUpdate call, one
// reply per submitted request.
type BatchUpdateResponse struct {
	DocumentID string  `json:"documentId"`
	Replies    []Reply `json:"replies"`
}

type Reply struct {
	ReplaceAllText *ReplaceAllTextReply `json:"replaceAllText,omitempty"`
}

type ReplaceAllTextReply struct {
	OccurrencesChanged int `json:"occurrencesChanged"`
}
