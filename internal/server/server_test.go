package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/mazesearch/mazesearch/internal/engine"
	"github.com/mazesearch/mazesearch/internal/server"
	"github.com/mazesearch/mazesearch/pkg/mocks"
	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/mazesearch/mazesearch/pkg/types"
)

func newServer(t *testing.T, opts server.Options) *server.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := server.New(opts)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func do(s *server.Server, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newServer(t, server.Options{})

	w := do(s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestNew_InvalidMaze(t *testing.T) {
	_, err := server.New(server.Options{Maze: &types.MazeConfig{Width: 0, Height: 3}})
	if err == nil {
		t.Fatal("expected error for invalid maze")
	}
}

func TestAlgorithms(t *testing.T) {
	s := newServer(t, server.Options{})

	w := do(s, http.MethodGet, "/api/algorithms", nil)
	var out []server.AlgorithmInfo
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("got %d algorithms", len(out))
	}
	if out[4].Name != search.AStar || out[4].Title != "A*" {
		t.Errorf("last algorithm = %+v", out[4])
	}
}

func TestMaze(t *testing.T) {
	s := newServer(t, server.Options{})

	w := do(s, http.MethodGet, "/api/maze", nil)
	var cfg types.MazeConfig
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Name != "canonical" || cfg.Width != 8 || cfg.Start != 12 || cfg.Goal != 62 {
		t.Errorf("unexpected maze: %+v", cfg)
	}
}

func TestSearchServed(t *testing.T) {
	s := newServer(t, server.Options{})

	tests := []struct {
		path   string
		status int
	}{
		{"/api/search/bfs", http.StatusOK},
		{"/api/search/a*", http.StatusOK},
		{"/api/search/greedy", http.StatusOK},
		{"/api/search/bogo", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(s, http.MethodGet, tt.path, nil)
			if w.Code != tt.status {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if tt.status != http.StatusOK {
				if !strings.Contains(w.Body.String(), `"error"`) {
					t.Errorf("missing error body: %s", w.Body.String())
				}
				return
			}

			var r search.Result
			if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if r.TimeUnits != len(r.Visited) || !r.Found() {
				t.Errorf("unexpected result: %+v", r)
			}
		})
	}
}

func TestSearchServed_ShortestPath(t *testing.T) {
	s := newServer(t, server.Options{})

	w := do(s, http.MethodGet, "/api/search/astar", nil)
	var r search.Result
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.PathLength() != 8 || r.Path[0] != 12 || r.Path[len(r.Path)-1] != 62 {
		t.Errorf("path = %v", r.Path)
	}
}

func TestSearchPosted(t *testing.T) {
	s := newServer(t, server.Options{})

	body := `{"name":"ring","width":3,"height":3,"start":0,"goal":8,"barriers":[4],"algorithms":["bfs","astar"]}`
	w := do(s, http.MethodPost, "/api/search", strings.NewReader(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var report engine.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Maze != "ring" || report.ID == "" {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Results) != 2 || report.Results[0].Algorithm != search.BFS || report.Results[1].Algorithm != search.AStar {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	want := []int{0, 1, 3, 2, 6, 5, 7, 8}
	if got := report.Results[0].Visited; !reflect.DeepEqual(got, want) {
		t.Errorf("bfs visited = %v, want %v", got, want)
	}
}

func TestSearchPosted_AllAlgorithms(t *testing.T) {
	s := newServer(t, server.Options{})

	body := `{"width":4,"height":1,"start":0,"goal":3}`
	w := do(s, http.MethodPost, "/api/search", strings.NewReader(body))

	var report engine.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Maze != "4x1" || len(report.Results) != 5 || report.Solved() != 5 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestSearchPosted_BadRequests(t *testing.T) {
	s := newServer(t, server.Options{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"width":`},
		{"zero width", `{"width":0,"height":3,"start":0,"goal":1}`},
		{"goal out of range", `{"width":2,"height":2,"start":0,"goal":9}`},
		{"barrier on start", `{"width":3,"height":3,"start":0,"goal":8,"barriers":[0]}`},
		{"same endpoints", `{"width":3,"height":3,"start":4,"goal":4}`},
		{"unknown algorithm", `{"width":3,"height":3,"start":0,"goal":8,"algorithms":["bogo"]}`},
		{"too many cells", `{"width":30000,"height":30000,"start":0,"goal":1}`},
		{"size overflows int", `{"width":4294967296,"height":4294967296,"start":0,"goal":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodPost, "/api/search", strings.NewReader(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected error body, got %s", w.Body.String())
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := newServer(t, server.Options{})

	w := do(s, http.MethodGet, "/api/render/bfs.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}

	if w := do(s, http.MethodGet, "/api/render/bfs", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing suffix: status = %d", w.Code)
	}
	if w := do(s, http.MethodGet, "/api/render/bogo.png", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unknown algorithm: status = %d", w.Code)
	}
}

func TestRender_RendererFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("out of ink"))

	s := newServer(t, server.Options{Renderer: renderer})

	w := do(s, http.MethodGet, "/api/render/dfs.png", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "out of ink") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	s := newServer(t, server.Options{})

	do(s, http.MethodGet, "/api/search/bfs", nil)
	do(s, http.MethodPost, "/api/search", strings.NewReader(`{"width":3,"height":3,"start":0,"goal":8,"barriers":[5,7],"algorithms":["ucs"]}`))

	w := do(s, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`mazesearch_searches_total{algorithm="bfs",outcome="found"} 1`,
		`mazesearch_searches_total{algorithm="ucs",outcome="unreachable"} 1`,
		`mazesearch_search_expansions_count{algorithm="ucs"} 1`,
		`mazesearch_search_expansions_sum{algorithm="ucs"} 6`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
