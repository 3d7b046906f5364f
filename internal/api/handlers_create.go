package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/dgallion1/docstab/internal/importer"
	"github.com/dgallion1/docstab/internal/mutate"
)

// seedOffset is where text lands in a freshly created document: the
// first editable position of the default tab.
const seedOffset = 1

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		BodyText string `json:"body_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	doc, err := s.createSeeded(r, req.Title, req.BodyText)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"documentId": doc.DocumentID,
		"title":      req.Title,
		"link":       editLink(doc.DocumentID),
	})
}

// handleImportDocument creates a new remote document seeded from an
// uploaded local file.
func (s *Server) handleImportDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	extractor, err := importer.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdfExtractor, ok := extractor.(*importer.PDFExtractor); ok {
		pdfExtractor.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	content, err := extractor.Extract(file, filename)
	if err != nil {
		jsonError(w, "extract content: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = content.Title
	}

	doc, err := s.createSeeded(r, title, content.Body)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"documentId": doc.DocumentID,
		"title":      title,
		"filename":   filename,
		"link":       editLink(doc.DocumentID),
		"body_units": mutate.UTF16Len(content.Body),
	})
}

func (s *Server) createSeeded(r *http.Request, title, body string) (*gdocs.Document, error) {
	doc, err := s.gdocs.CreateDocument(r.Context(), title)
	if err != nil {
		return nil, err
	}
	if body != "" {
		seed := gdocs.NewInsertText(body, seedOffset, "")
		if _, err := s.gdocs.BatchUpdate(r.Context(), doc.DocumentID, []gdocs.Request{seed}); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
