package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/javajack/xlnest"
	"github.com/javajack/xlnest/logging"
)

// badRequestError marks an invalid query parameter or an unreadable body.
type badRequestError struct {
	param string
	err   error
}

func (e *badRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.param, e.err)
}

func (e *badRequestError) Unwrap() error { return e.err }

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

type issueBody struct {
	Severity string `json:"severity"`
	Cell     string `json:"cell"`
	Message  string `json:"message"`
}

type validateBody struct {
	Issues []issueBody `json:"issues"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	n, g, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := n.NormalizeGrid(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	n, g, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	issues, err := n.Validate(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := validateBody{Issues: make([]issueBody, 0, len(issues))}
	for _, iss := range issues {
		sev := "warning"
		if iss.Severity == xlnest.SeverityInfo {
			sev = "info"
		}
		body.Issues = append(body.Issues, issueBody{Severity: sev, Cell: iss.Cell.String(), Message: iss.Message})
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	n, g, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	outline, err := n.Describe(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(outline))
}

// readRequest builds a Normalizer from the query parameters and reads the body,
// capped at MaxBodyBytes, into a Grid.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*xlnest.Normalizer, xlnest.Grid, error) {
	q := r.URL.Query()

	format, err := xlnest.ParseSourceFormat(q.Get("format"))
	if err != nil {
		return nil, nil, &badRequestError{param: "format", err: err}
	}

	opts := append([]xlnest.Option{xlnest.WithTrimTrailingBlankRows(true)}, s.cfg.Options...)
	if v := q.Get("sheet"); v != "" {
		opts = append(opts, xlnest.WithSheet(v))
	}
	if v := q.Get("table"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil || idx < 0 {
			return nil, nil, &badRequestError{param: "table", err: fmt.Errorf("%q is not a table index", v)}
		}
		opts = append(opts, xlnest.WithHTMLTable(idx))
	}
	if v := q.Get("select"); v != "" {
		if err := xlnest.CompileSelect(v); err != nil {
			return nil, nil, &badRequestError{param: "select", err: err}
		}
		opts = append(opts, xlnest.WithSelect(v))
	}
	if v := q.Get("origin"); v != "" {
		ref, err := xlnest.ParseCellRef(v)
		if err != nil {
			return nil, nil, &badRequestError{param: "origin", err: err}
		}
		opts = append(opts, xlnest.WithOrigin(ref.Col, ref.Row))
	}
	if v := q.Get("nfc"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, &badRequestError{param: "nfc", err: err}
		}
		opts = append(opts, xlnest.WithUnicodeNormalization(enabled))
	}

	n := xlnest.NewNormalizer(opts...)
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	g, err := n.ReadGrid(body, format)
	if err != nil {
		return nil, nil, &badRequestError{param: "body", err: err}
	}
	return n, g, nil
}

func statusFor(err error) int {
	var bad *badRequestError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, xlnest.ErrMalformedInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := RequestIDFromContext(r.Context())
	if status == http.StatusInternalServerError {
		logging.Logger().Error("request failed", slog.String("request_id", id), slog.Any("error", err))
	}
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
