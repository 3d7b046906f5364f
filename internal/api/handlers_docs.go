package api

import (
	"net/http"

	"github.com/dgallion1/docstab/internal/diff"
	"github.com/dgallion1/docstab/internal/render"
	"github.com/dgallion1/docstab/internal/tabtree"
	"github.com/go-chi/chi/v5"
)

type tabDescriptor struct {
	TabID       string `json:"tabId"`
	Title       string `json:"title"`
	Index       int    `json:"index"`
	Depth       int    `json:"depth"`
	ParentTabID string `json:"parentTabId,omitempty"`
}

func describeTabs(tree *tabtree.Tree) []tabDescriptor {
	nodes := tree.Flatten()
	out := make([]tabDescriptor, len(nodes))
	for i, n := range nodes {
		out[i] = tabDescriptor{
			TabID:       n.ID,
			Title:       n.Title,
			Index:       n.Index,
			Depth:       n.Depth,
			ParentTabID: n.ParentID,
		}
	}
	return out
}

// handleListTabs returns the flattened tab hierarchy in depth-first
// pre-order.
func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tree := tabtree.Build(doc)

	tabs := describeTabs(tree)
	writeJSON(w, http.StatusOK, map[string]any{
		"documentTitle": doc.Title,
		"tabs":          tabs,
		"count":         len(tabs),
	})
}

// handleDocumentInfo returns lightweight document metadata.
func (s *Server) handleDocumentInfo(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tree := tabtree.Build(doc)

	writeJSON(w, http.StatusOK, map[string]any{
		"title":      doc.Title,
		"documentId": doc.DocumentID,
		"link":       editLink(doc.DocumentID),
		"tabs":       describeTabs(tree),
	})
}

// handleContent renders a tab (or, with no reference, all tabs with
// hierarchy markers) as markdown, optionally converted to HTML.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tree := tabtree.Build(doc)

	ref := refFromQuery(r)
	var markdown string
	if ref.IsZero() {
		markdown = render.Document(doc.Title, tree.Flatten())
	} else {
		node, err := tree.Resolve(ref)
		if err != nil {
			writeCoreError(w, err)
			return
		}
		markdown = render.TabWithHeader(doc.Title, node)
	}

	switch r.URL.Query().Get("format") {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(markdown))
	case "html":
		page, err := render.HTML(markdown)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	default:
		jsonError(w, "format must be markdown or html", http.StatusBadRequest)
	}
}

// handleTabDiff line-diffs the rendered markdown of two tabs.
func (s *Server) handleTabDiff(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	q := r.URL.Query()
	fromRef := tabtree.Ref{ID: q.Get("from_id"), Title: q.Get("from_title")}
	toRef := tabtree.Ref{ID: q.Get("to_id"), Title: q.Get("to_title")}
	if fromRef.IsZero() || toRef.IsZero() {
		jsonError(w, "both from and to tab references are required", http.StatusBadRequest)
		return
	}

	doc, err := s.gdocs.GetDocument(r.Context(), docID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	tree := tabtree.Build(doc)

	from, err := tree.Resolve(fromRef)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	to, err := tree.Resolve(toRef)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	result, tooLarge := diff.Lines(render.Tab(from), render.Tab(to))
	if tooLarge {
		jsonError(w, "tab contents too large to diff", http.StatusRequestEntityTooLarge)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from_tab": from.ID,
		"to_tab":   to.ID,
		"diff":     result,
	})
}

// handleSearchDocuments searches Drive for documents by name.
func (s *Server) handleSearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	maxResults := 20
	if v := r.URL.Query().Get("max_results"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			maxResults = n
		}
	}

	files, err := s.gdocs.SearchDocuments(r.Context(), query, maxResults)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	docs := make([]map[string]any, 0, len(files))
	for _, f := range files {
		docs = append(docs, map[string]any{
			"documentId":   f.ID,
			"title":        f.Name,
			"modifiedTime": f.ModifiedTime,
			"link":         f.WebViewLink,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

func editLink(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}
