package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	service "github.com/okian/readability/internal/app"
	"github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/internal/domain/scoring"
	"github.com/okian/readability/internal/domain/textstats"
)

// AnalyzeHandler handles document scoring requests.
type AnalyzeHandler struct {
	analyzer     Analyzer
	maxBodyBytes int64
}

// NewAnalyzeHandler creates a new analyze handler. A non-positive
// maxBodyBytes disables the body limit.
func NewAnalyzeHandler(analyzer Analyzer, maxBodyBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, maxBodyBytes: maxBodyBytes}
}

// HandleAnalyze handles POST /analyze requests. The body is either JSON
// ({"text": "...", "name": "..."}) or text/plain, in which case the optional
// name comes from the "name" query parameter.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", wrapKind(op, ErrMethodNotAllowed, nil))
		return
	}

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", wrapKind(op, ErrBodyTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	doc, err := decodeDocument(r, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), doc)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, report)
	case errors.Is(err, textstats.ErrDegenerateInput), errors.Is(err, scoring.ErrOutOfRangeScore):
		writeError(w, http.StatusUnprocessableEntity, service.ErrorKind(err), wrapKind(op, ErrUnprocessable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}

func decodeDocument(r *http.Request, raw []byte) (model.Document, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return model.Document{}, err
		}
		mediaType = mt
	}

	switch mediaType {
	case "text/plain":
		return model.NewDocument(r.URL.Query().Get("name"), string(raw)), nil
	case "application/json":
		var req analyzeRequest
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return model.Document{}, err
		}
		if req.Text == nil {
			return model.Document{}, errors.New("missing text")
		}
		return model.NewDocument(req.Name, *req.Text), nil
	default:
		return model.Document{}, errors.New("unsupported content type " + mediaType)
	}
}
