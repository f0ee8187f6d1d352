package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ankitbhatnagartech/archcost/core/determinism"
	"github.com/ankitbhatnagartech/archcost/core/normalize"
)

// Response headers set on every estimate
const (
	HeaderCache     = "X-Cache"
	CacheHit        = "HIT"
	CacheMiss       = "MISS"
	contentTypeJSON = "application/json"
)

// handleEstimate handles POST /estimate.
//
//	decode -> normalize -> fingerprint -> cache hit + If-None-Match match -> 304
//	                                   -> cache hit                       -> 200 cached body
//	                                   -> miss -> compute -> store        -> 200
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	req, err := normalize.DecodeRequest(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	prepared, err := s.engine.Prepare(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	fp := prepared.Fingerprint
	etag := fp.ETag()
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", s.cacheControl())

	if s.cache != nil {
		if entry, ok := s.cache.Get(string(fp)); ok {
			h.Set(HeaderCache, CacheHit)
			if matches(r.Header.Get("If-None-Match"), fp) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			s.writeBody(w, entry.Value.Body)
			return
		}
	}

	h.Set(HeaderCache, CacheMiss)

	// identical concurrent misses share one computation
	v, err, _ := s.flight.Do(string(fp), func() (interface{}, error) {
		resp, err := s.engine.Estimate(prepared.Canonical)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(string(fp), CachedResponse{ETag: etag, Body: encoded})
		}
		s.logger.Debug("estimate stored",
			zap.String("fingerprint", fp.Short()),
			zap.Int("bytes", len(encoded)),
		)
		return encoded, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeBody(w, v.([]byte))
}

func (s *Server) writeBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// cacheControl advertises the store's TTL, or Options.CacheTTL without a store
func (s *Server) cacheControl() string {
	ttl := s.opts.CacheTTL
	if s.cache != nil {
		ttl = s.cache.TTL()
	}
	return fmt.Sprintf("private, max-age=%d, must-revalidate", int(ttl.Seconds()))
}

// matches applies weak comparison of an If-None-Match header against fp.
// "*" matches any entry.
func matches(header string, fp determinism.Fingerprint) bool {
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" {
			return true
		}
		if tag, ok := determinism.ParseETag(part); ok && tag == fp {
			return true
		}
	}
	return false
}
