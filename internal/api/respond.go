package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/dgallion1/docstab/internal/mutate"
	"github.com/dgallion1/docstab/internal/tabtree"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeCoreError maps the core error taxonomy onto HTTP statuses. The
// message always carries the offending reference or index verbatim so
// callers can self-correct.
func writeCoreError(w http.ResponseWriter, err error) {
	var notFound *tabtree.TabNotFoundError
	if errors.As(err, &notFound) {
		jsonError(w, notFound.Error(), http.StatusNotFound)
		return
	}

	var ambiguousTitle *tabtree.AmbiguousTitleError
	if errors.As(err, &ambiguousTitle) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   ambiguousTitle.Error(),
			"tab_ids": ambiguousTitle.TabIDs,
		})
		return
	}

	var ambiguousTarget *tabtree.AmbiguousTargetError
	if errors.As(err, &ambiguousTarget) {
		jsonError(w, ambiguousTarget.Error(), http.StatusBadRequest)
		return
	}

	var invalidRange *mutate.InvalidRangeError
	if errors.As(err, &invalidRange) {
		jsonError(w, invalidRange.Error(), http.StatusBadRequest)
		return
	}

	var apiErr *gdocs.APIError
	if errors.As(err, &apiErr) {
		code := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			code = apiErr.StatusCode
		}
		jsonError(w, apiErr.Error(), code)
		return
	}

	jsonError(w, err.Error(), http.StatusInternalServerError)
}

// refFromQuery reads a tab reference from tab_id / tab_title query
// parameters.
func refFromQuery(r *http.Request) tabtree.Ref {
	return tabtree.Ref{
		ID:    r.URL.Query().Get("tab_id"),
		Title: r.URL.Query().Get("tab_title"),
	}
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive: %d", n)
	}
	return n, nil
}
