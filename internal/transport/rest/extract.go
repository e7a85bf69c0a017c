package rest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/docsource"
	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/service/extraction"
)

// extractionService defines the extraction operations this handler needs.
type extractionService interface {
	Extract(ctx context.Context, in extraction.Input, opts extraction.Options) ([]domain.Resolution, error)
	Learn(ctx context.Context, term, definition string) (*domain.LearnedDefinition, error)
}

// ExtractHandler serves the acronym extraction endpoints.
type ExtractHandler struct {
	svc            extractionService
	maxUploadBytes int64
	defaultLang    string
	log            *slog.Logger
}

// NewExtractHandler creates an ExtractHandler. defaultLang fills the lang
// hint when a request does not set one.
func NewExtractHandler(svc extractionService, maxUploadBytes int64, defaultLang string, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		defaultLang:    defaultLang,
		log:            logger.With("handler", "extract"),
	}
}

type extractRequest struct {
	Text          string     `json:"text"`
	Tables        [][]string `json:"tables,omitempty"`
	IncludeCommon bool       `json:"include_common,omitempty"`
	Keyword       string     `json:"keyword,omitempty"`
	Lang          string     `json:"lang,omitempty"`
	Domain        string     `json:"domain,omitempty"`
	Strict        bool       `json:"strict,omitempty"`
}

type extractResponse struct {
	Acronyms []domain.Resolution `json:"acronyms"`
}

// Extract handles POST /api/v1/extract. The request is either a multipart
// form with a "file" field (plus optional hint fields) or a JSON body with
// the document text inline. Uploads in a format we cannot read produce an
// empty result, not an error.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	in, opts, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	results, err := h.svc.Extract(r.Context(), in, opts)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Acronyms: results})
}

// ExtractCSV handles POST /api/v1/extract/csv. Same input contract as
// Extract, but the response is a CSV attachment with one row per acronym.
func (h *ExtractHandler) ExtractCSV(w http.ResponseWriter, r *http.Request) {
	in, opts, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	results, err := h.svc.Extract(r.Context(), in, opts)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=acronyms.csv`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write([]string{"Acronym", "Definition", "Confidence", "Source", "Note", "FirstSeenExcerpt"}) //nolint:errcheck
	for _, res := range results {
		cw.Write([]string{ //nolint:errcheck
			res.Term,
			res.Definition,
			strconv.FormatFloat(res.Confidence, 'f', -1, 64),
			string(res.Source),
			res.Note,
			res.Excerpt,
		})
	}
	cw.Flush()
}

// decodeInput reads the extraction input from either a multipart upload or a
// JSON body. On a handled failure it writes the response itself and returns
// ok=false.
func (h *ExtractHandler) decodeInput(w http.ResponseWriter, r *http.Request) (extraction.Input, extraction.Options, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return h.decodeUpload(w, r)
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return extraction.Input{}, extraction.Options{}, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return extraction.Input{}, extraction.Options{}, false
	}

	in := extraction.Input{Text: req.Text, TableRows: req.Tables}
	opts := extraction.Options{
		IncludeCommon: req.IncludeCommon,
		Keyword:       req.Keyword,
		Lang:          req.Lang,
		Domain:        req.Domain,
		Strict:        req.Strict,
	}
	if opts.Lang == "" {
		opts.Lang = h.defaultLang
	}
	return in, opts, true
}

func (h *ExtractHandler) decodeUpload(w http.ResponseWriter, r *http.Request) (extraction.Input, extraction.Options, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return extraction.Input{}, extraction.Options{}, false
		}
		writeError(w, http.StatusBadRequest, "missing file field")
		return extraction.Input{}, extraction.Options{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return extraction.Input{}, extraction.Options{}, false
	}

	opts := extraction.Options{
		IncludeCommon: formBool(r, "include_common"),
		Keyword:       r.FormValue("keyword"),
		Lang:          r.FormValue("lang"),
		Domain:        r.FormValue("domain"),
		Strict:        formBool(r, "strict"),
	}
	if opts.Lang == "" {
		opts.Lang = h.defaultLang
	}

	doc, err := docsource.FromUpload(header.Filename, data)
	switch {
	case errors.Is(err, domain.ErrUnsupported):
		// Unknown formats yield an empty result by contract.
		return extraction.Input{}, opts, true
	case err != nil:
		writeError(w, http.StatusBadRequest, "malformed document")
		return extraction.Input{}, extraction.Options{}, false
	}

	return extraction.Input{Text: doc.FullText, TableRows: doc.TableRows}, opts, true
}

func (h *ExtractHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnsupported):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported document format")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func formBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.FormValue(key))
	return err == nil && v
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
