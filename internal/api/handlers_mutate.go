package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/dgallion1/docstab/internal/mutate"
	"github.com/dgallion1/docstab/internal/tabtree"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type tabRef struct {
	TabID    string `json:"tab_id"`
	TabTitle string `json:"tab_title"`
}

func (t tabRef) ref() tabtree.Ref {
	return tabtree.Ref{ID: t.TabID, Title: t.TabTitle}
}

// tabOutcome is the per-tab result of a fan-out operation. Multi-tab
// operations always report per-tab success and failure, never one
// aggregate boolean.
type tabOutcome struct {
	TabID string `json:"tabId"`
	Title string `json:"title"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		tabRef
		Text    string `json:"text"`
		AllTabs bool   `json:"all_tabs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tree := tabtree.Build(doc)

	if req.AllTabs {
		s.appendAllTabs(w, r, docID, tree, req.Text)
		return
	}

	tab, err := tree.Resolve(req.ref())
	if err != nil {
		writeCoreError(w, err)
		return
	}

	plan := mutate.PlanAppend(tab, req.Text)
	if _, err := s.gdocs.BatchUpdate(r.Context(), docID, []gdocs.Request{plan}); err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"tabId":          tab.ID,
		"at_index":       tab.Body.EndOffset(),
		"appended_units": mutate.UTF16Len(req.Text),
	})
}

// appendAllTabs fans one append out to every tab with bounded
// concurrency. Failures are per-tab and best-effort: a failed tab
// never hides the ones that succeeded.
func (s *Server) appendAllTabs(w http.ResponseWriter, r *http.Request, docID string, tree *tabtree.Tree, text string) {
	nodes := tree.Flatten()
	outcomes := make([]tabOutcome, len(nodes))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrentTabs)
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			plan := mutate.PlanAppend(node, text)
			_, err := s.gdocs.BatchUpdate(r.Context(), docID, []gdocs.Request{plan})
			outcome := tabOutcome{TabID: node.ID, Title: node.Title, OK: err == nil}
			if err != nil {
				outcome.Error = err.Error()
			}
			outcomes[i] = outcome
			return nil
		})
	}
	g.Wait()

	succeeded := 0
	for _, o := range outcomes {
		if o.OK {
			succeeded++
		}
	}

	code := http.StatusOK
	if succeeded < len(outcomes) {
		code = http.StatusMultiStatus
	}
	writeJSON(w, code, map[string]any{
		"operation_id": uuid.NewString(),
		"tabs":         outcomes,
		"succeeded":    succeeded,
		"failed":       len(outcomes) - succeeded,
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		tabRef
		Text  string `json:"text"`
		Index *int64 `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.Index == nil {
		jsonError(w, "index is required", http.StatusBadRequest)
		return
	}

	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tab, err := tabtree.Build(doc).Resolve(req.ref())
	if err != nil {
		writeCoreError(w, err)
		return
	}

	plan, err := mutate.PlanInsert(tab, req.Text, *req.Index)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	if _, err := s.gdocs.BatchUpdate(r.Context(), docID, []gdocs.Request{plan}); err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"tabId":          tab.ID,
		"at_index":       *req.Index,
		"inserted_units": mutate.UTF16Len(req.Text),
	})
}

func (s *Server) handleDeleteRange(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		tabRef
		StartIndex *int64 `json:"start_index"`
		EndIndex   *int64 `json:"end_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.StartIndex == nil || req.EndIndex == nil {
		jsonError(w, "start_index and end_index are required", http.StatusBadRequest)
		return
	}

	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tab, err := tabtree.Build(doc).Resolve(req.ref())
	if err != nil {
		writeCoreError(w, err)
		return
	}

	plan, err := mutate.PlanDelete(tab, *req.StartIndex, *req.EndIndex)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	if _, err := s.gdocs.BatchUpdate(r.Context(), docID, []gdocs.Request{plan}); err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"tabId":         tab.ID,
		"deleted_units": *req.EndIndex - *req.StartIndex,
	})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		tabRef
		Find        string `json:"find"`
		ReplaceWith string `json:"replace_with"`
		MatchCase   *bool  `json:"match_case"`
		AllTabs     bool   `json:"all_tabs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Find == "" {
		jsonError(w, "find is required", http.StatusBadRequest)
		return
	}
	matchCase := true
	if req.MatchCase != nil {
		matchCase = *req.MatchCase
	}

	tabID := ""
	if !req.AllTabs {
		doc, err := s.gdocs.GetDocument(r.Context(), docID)
		if err != nil {
			writeCoreError(w, err)
			return
		}
		tab, err := tabtree.Build(doc).Resolve(req.ref())
		if err != nil {
			writeCoreError(w, err)
			return
		}
		tabID = tab.ID
	}

	plan := mutate.PlanReplace(req.Find, req.ReplaceWith, matchCase, tabID)
	resp, err := s.gdocs.BatchUpdate(r.Context(), docID, []gdocs.Request{plan})
	if err != nil {
		writeCoreError(w, err)
		return
	}

	occurrences := 0
	if len(resp.Replies) > 0 && resp.Replies[0].ReplaceAllText != nil {
		occurrences = resp.Replies[0].ReplaceAllText.OccurrencesChanged
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"occurrences_replaced": occurrences,
		"tabId":                tabID,
	})
}

// handleBatch forwards caller-supplied batchUpdate requests, scoping
// each one to the resolved tab unless the caller scoped it already.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		tabRef
		Requests []gdocs.Request `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Requests) == 0 {
		jsonError(w, "requests is required", http.StatusBadRequest)
		return
	}

	tabID := ""
	if !req.ref().IsZero() {
		doc, err := s.gdocs.GetDocument(r.Context(), docID)
		if err != nil {
			writeCoreError(w, err)
			return
		}
		tab, err := tabtree.Build(doc).Resolve(req.ref())
		if err != nil {
			writeCoreError(w, err)
			return
		}
		tabID = tab.ID
	}

	scoped := mutate.ScopeRequests(req.Requests, tabID)
	resp, err := s.gdocs.BatchUpdate(r.Context(), docID, scoped)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"replies_count": len(resp.Replies),
		"documentId":    resp.DocumentID,
		"tabId":         tabID,
	})
}
