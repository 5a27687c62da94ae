package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dnl-fm/ascii/pkg/cache"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/pipeline"
)

type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// decodeSource decodes the base64url payload and verifies it against
// the content hash in the URL. Padded and raw encodings are both
// accepted since clients differ on emitting the trailing '='.
func decodeSource(r *http.Request) ([]byte, string, int) {
	hash := chi.URLParam(r, "hash")
	codeB64 := r.URL.Query().Get("code")

	code, err := base64.URLEncoding.DecodeString(codeB64)
	if err != nil {
		code, err = base64.RawURLEncoding.DecodeString(codeB64)
		if err != nil {
			return nil, "invalid base64", http.StatusBadRequest
		}
	}
	if cache.Hash(code) != hash {
		return nil, "hash mismatch", http.StatusBadRequest
	}
	return code, "", 0
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	code, msg, status := decodeSource(r)
	if code == nil {
		s.respondError(w, msg, "", status)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RenderTimeout)
	defer cancel()

	type outcome struct {
		res *pipeline.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := s.runner.Render(ctx, string(code),
			pipeline.Options{Refresh: r.URL.Query().Get("refresh") == "1"})
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		s.respondError(w, "render timeout: diagram too complex or has cycles", "", http.StatusBadRequest)
		return
	case o := <-done:
		if o.err != nil {
			s.respondError(w, "render failed: "+errors.UserMessage(o.err),
				string(errors.GetCode(o.err)), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=2592000")
		if o.res.CacheHit {
			w.Header().Set("X-Cache-Status", "HIT")
		} else {
			w.Header().Set("X-Cache-Status", "MISS")
		}
		_, _ = w.Write([]byte(o.res.Output))
	}
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	code, msg, status := decodeSource(r)
	if code == nil {
		s.respondError(w, msg, "", status)
		return
	}

	if err := pipeline.Validate(string(code)); err != nil {
		s.respondError(w, errors.UserMessage(err), string(errors.GetCode(err)), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "valid"})
}

func (s *Server) respondError(w http.ResponseWriter, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: code})
}
