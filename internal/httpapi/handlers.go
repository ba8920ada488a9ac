package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
	"github.com/a-detiste/parse-type/pkg/observability"
	"github.com/a-detiste/parse-type/pkg/parse"
	"github.com/a-detiste/parse-type/pkg/store"
)

// Matching modes accepted by the parse endpoint.
const (
	ModeParse   = "parse"
	ModeSearch  = "search"
	ModeFindAll = "findall"
)

// parseRequest is the body of POST /v1/parse.
// Exactly one of Format or Schema must be set.
type parseRequest struct {
	Format string                     `json:"format,omitempty"`
	Schema string                     `json:"schema,omitempty"`
	Types  map[string]convert.TypeDef `json:"types,omitempty"`
	Text   string                     `json:"text"`
	Mode   string                     `json:"mode,omitempty"`
}

// parseResponse is the body of a successful parse call.
type parseResponse struct {
	Matched bool            `json:"matched"`
	Results []*parse.Result `json:"results,omitempty"`
}

// errorResponse is the body of every error response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeDomainError maps a library error to an HTTP response.
func writeDomainError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeSchemaNotFound:
		writeError(w, http.StatusNotFound, string(code), errors.UserMessage(err))
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPattern,
		errors.ErrCodeInvalidTypedef, errors.ErrCodeUnknownType,
		errors.ErrCodeDuplicateType:
		writeError(w, http.StatusUnprocessableEntity, string(code), errors.UserMessage(err))
	case errors.ErrCodeInvalidName, errors.ErrCodeInvalidInput:
		writeError(w, http.StatusBadRequest, string(code), errors.UserMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, string(errors.ErrCodeInternal), errors.UserMessage(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid JSON body")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeParse
	}
	if mode != ModeParse && mode != ModeSearch && mode != ModeFindAll {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "mode must be parse, search, or findall")
		return
	}
	if (req.Format == "") == (req.Schema == "") {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "exactly one of format or schema is required")
		return
	}

	format := req.Format
	var schema *store.Schema
	if req.Schema != "" {
		loaded, err := s.store.Get(r.Context(), req.Schema)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		schema = loaded
		format = loaded.Format
	} else if len(req.Types) > 0 {
		// Inline type definitions travel as an unnamed schema.
		schema = &store.Schema{Name: "inline", Format: format, Types: req.Types}
	}

	var types map[string]convert.TypeDef
	if schema != nil {
		types = schema.Types
	}

	// Result cache lookup.
	key := cache.ResultKey(format, req.Text, mode, types)
	if data, ok, err := s.results.Get(r.Context(), key); err == nil && ok {
		observability.CacheEvents().OnCacheHit(r.Context(), "result")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.CacheEvents().OnCacheMiss(r.Context(), "result")

	compileStart := time.Now()
	observability.Parser().OnCompileStart(r.Context(), format)
	f, err := s.compiledFormat(format, schema)
	fieldCount := 0
	if f != nil {
		fieldCount = len(f.Fields())
	}
	observability.Parser().OnCompileComplete(r.Context(), format, fieldCount, time.Since(compileStart), err)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	matchStart := time.Now()
	observability.Parser().OnMatchStart(r.Context(), format, mode)
	resp, err := runMatch(f, req.Text, mode)
	matches := 0
	if resp != nil {
		matches = len(resp.Results)
	}
	observability.Parser().OnMatchComplete(r.Context(), format, mode, matches, time.Since(matchStart), err)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := s.results.Set(r.Context(), key, data, cache.DefaultTTL); err == nil {
			observability.CacheEvents().OnCacheSet(r.Context(), "result", len(data))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// runMatch executes one matching mode. A failed match is not an error at
// the HTTP layer; it reports matched=false.
func runMatch(f *parse.Format, text, mode string) (*parseResponse, error) {
	switch mode {
	case ModeSearch:
		r, err := f.Search(text)
		if errors.Is(err, errors.ErrCodeNoMatch) {
			return &parseResponse{Matched: false}, nil
		}
		if err != nil {
			return nil, err
		}
		return &parseResponse{Matched: true, Results: []*parse.Result{r}}, nil

	case ModeFindAll:
		results, err := f.FindAll(text)
		if err != nil {
			return nil, err
		}
		return &parseResponse{Matched: len(results) > 0, Results: results}, nil

	default:
		r, err := f.Parse(text)
		if errors.Is(err, errors.ErrCodeNoMatch) {
			return &parseResponse{Matched: false}, nil
		}
		if err != nil {
			return nil, err
		}
		return &parseResponse{Matched: true, Results: []*parse.Result{r}}, nil
	}
}

func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := s.store.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

func (s *Server) handlePutSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var schema store.Schema
	if err := json.NewDecoder(r.Body).Decode(&schema); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid JSON body")
		return
	}
	schema.Name = name

	// Surface compile errors at store time.
	if _, err := s.compiledFormat(schema.Format, &schema); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), &schema); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &schema)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
