package rest

import (
	"encoding/json"
	"net/http"
)

type learnRequest struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type learnResponse struct {
	Term       string  `json:"term"`
	Definition string  `json:"definition"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// Learn handles POST /api/v1/learn. It records a user-confirmed expansion
// that future extractions will prefer over web evidence.
func (h *ExtractHandler) Learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ld, err := h.svc.Learn(r.Context(), req.Term, req.Definition)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, learnResponse{
		Term:       ld.Term,
		Definition: ld.Definition,
		Source:     string(ld.Source),
		Confidence: ld.Confidence,
	})
}
