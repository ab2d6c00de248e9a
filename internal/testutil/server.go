package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// ReleaseServer serves fixture files over HTTP and records every request.
// Paths missing from Files return 404 unless Status overrides them.
type ReleaseServer struct {
	*httptest.Server

	mu     sync.Mutex
	files  map[string][]byte
	status map[string]int
	hits   map[string]int

	// omitLength drops Content-Length from HEAD responses.
	omitLength bool
}

// NewReleaseServer starts a server for files keyed by URL path and closes it
// when t ends.
func NewReleaseServer(t *testing.T, files map[string][]byte) *ReleaseServer {
	t.Helper()
	s := &ReleaseServer{files: files, status: map[string]int{}, hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetStatus forces status for every request to path.
func (s *ReleaseServer) SetStatus(path string, status int) {
	s.SetMethodStatus("*", path, status)
}

// SetMethodStatus forces status for method requests to path only.
func (s *ReleaseServer) SetMethodStatus(method string, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[method+" "+path] = status
}

// SetFile replaces the body served at path.
func (s *ReleaseServer) SetFile(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = body
}

// OmitContentLength makes HEAD responses carry no length.
func (s *ReleaseServer) OmitContentLength() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitLength = true
}

// Hits returns how many method requests reached path.
func (s *ReleaseServer) Hits(method string, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// TotalHits returns the number of requests served.
func (s *ReleaseServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *ReleaseServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.Method+" "+r.URL.Path]++
	status, forced := s.status[r.Method+" "+r.URL.Path]
	if !forced {
		status, forced = s.status["* "+r.URL.Path]
	}
	body, ok := s.files[r.URL.Path]
	omitLength := s.omitLength
	s.mu.Unlock()

	if forced {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodHead {
		if !omitLength {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
