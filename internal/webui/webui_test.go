package webui

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alex65536/pagegate/internal/flagstore"
	"github.com/alex65536/pagegate/internal/util/slogx"
	"github.com/alex65536/pagegate/internal/view"
)

var testFeatures = []Feature{
	{Path: "/beta", Key: "features.beta", Title: "Beta", Body: "beta body"},
	{Path: "/legacy", Key: "allowLegacy", Title: "Legacy", Body: "legacy body"},
}

func newTestServer(t *testing.T, flags flagstore.Source, o Options) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	if err := Handle(slogx.DiscardLogger(), mux, "", Config{Flags: flags, ServerID: "test"}, o); err != nil {
		t.Fatalf("handle: %v", err)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	rsp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("get %v: %v", path, err)
	}
	defer rsp.Body.Close()
	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		t.Fatalf("read %v: %v", path, err)
	}
	return rsp.StatusCode, string(body)
}

func TestFeaturePages(t *testing.T) {
	flags := flagstore.Map{
		"features":    map[string]any{"beta": true},
		"allowLegacy": false,
	}
	srv := newTestServer(t, flags, Options{Features: testFeatures})

	code, body := get(t, srv, "/beta")
	if code != http.StatusOK || !strings.Contains(body, "beta body") {
		t.Errorf("/beta: got %v %q", code, body)
	}

	code, body = get(t, srv, "/legacy")
	if code != http.StatusNotFound || !strings.Contains(body, "Page not found") {
		t.Errorf("/legacy: got %v %q", code, body)
	}
	if strings.Contains(body, "legacy body") {
		t.Errorf("/legacy leaked its content")
	}

	code, body = get(t, srv, "/")
	if code != http.StatusOK {
		t.Fatalf("/: got %v", code)
	}
	if !strings.Contains(body, `href="/beta"`) {
		t.Errorf("main page does not link enabled feature: %q", body)
	}
	if strings.Contains(body, `href="/legacy"`) {
		t.Errorf("main page links disabled feature: %q", body)
	}
}

func TestNotFoundAndStatus(t *testing.T) {
	srv := newTestServer(t, flagstore.Map{}, Options{})

	code, body := get(t, srv, "/no/such/page")
	if code != http.StatusNotFound || !strings.Contains(body, "Page not found") {
		t.Errorf("missing page: got %v %q", code, body)
	}

	for _, tc := range []struct {
		path string
		code int
		text string
	}{
		{"/status/404", http.StatusNotFound, "Page not found"},
		{"/status/403", http.StatusForbidden, "403: Forbidden"},
		{"/status/503", http.StatusServiceUnavailable, "503: Service Unavailable"},
		{"/status/200", http.StatusInternalServerError, "500: Internal Server Error"},
		{"/status/nope", http.StatusInternalServerError, "Something went wrong"},
	} {
		code, body := get(t, srv, tc.path)
		if code != tc.code || !strings.Contains(body, tc.text) {
			t.Errorf("%v: expected %v %q, got %v %q", tc.path, tc.code, tc.text, code, body)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, flagstore.Map{}, Options{})
	rsp, err := srv.Client().Post(srv.URL+"/", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %v", rsp.StatusCode)
	}
	if allow := rsp.Header.Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("bad Allow header %q", allow)
	}
}

func TestStatic(t *testing.T) {
	srv := newTestServer(t, flagstore.Map{}, Options{})
	code, body := get(t, srv, "/css/style.css")
	if code != http.StatusOK || !strings.Contains(body, "font-family") {
		t.Errorf("style.css: got %v %q", code, body)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, flagstore.Map{}, Options{RPSLimit: 0.001, RPSBurst: 1})
	if code, _ := get(t, srv, "/"); code != http.StatusOK {
		t.Fatalf("first request: got %v", code)
	}
	code, body := get(t, srv, "/")
	if code != http.StatusTooManyRequests || !strings.Contains(body, "429") {
		t.Errorf("second request: got %v %q", code, body)
	}
}

func TestTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "template"), 0o755); err != nil {
		t.Fatal(err)
	}
	custom := `{{define "title"}}Gone{{end}}{{define "content"}}<p>custom missing page</p>{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "template", "404.html"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, flagstore.Map{}, Options{TemplateDir: dir})
	code, body := get(t, srv, "/missing")
	if code != http.StatusNotFound || !strings.Contains(body, "custom missing page") {
		t.Errorf("got %v %q", code, body)
	}
}

func TestHandleRejectsBadFeatures(t *testing.T) {
	for _, features := range [][]Feature{
		{{Path: "/x", Key: ""}},
		{{Path: "x", Key: "k"}},
		{{Path: "/status/x", Key: "k"}},
		{{Path: "/x", Key: "a"}, {Path: "/x", Key: "b"}},
		{{Path: "/{$}", Key: "k"}},
		{{Path: "/a{", Key: "k"}},
		{{Path: "/x/{y}/{y}", Key: "k"}},
		{{Path: "/a b", Key: "k"}},
	} {
		err := Handle(slogx.DiscardLogger(), http.NewServeMux(), "", Config{Flags: flagstore.Map{}}, Options{Features: features})
		if err == nil {
			t.Errorf("features %+v: no error", features)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/taken", http.NotFoundHandler())
	err := Handle(slogx.DiscardLogger(), mux, "", Config{Flags: flagstore.Map{}}, Options{
		Features: []Feature{{Path: "/taken", Key: "k"}},
	})
	if err == nil || !strings.Contains(err.Error(), "/taken") {
		t.Errorf("expected route conflict error, got %v", err)
	}

	err = Handle(nil, http.NewServeMux(), "", Config{}, Options{Features: []Feature{{Path: "/x"}}})
	if !errors.Is(err, view.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestDefaultFlags(t *testing.T) {
	t.Cleanup(func() { flagstore.SetDefault(nil) })
	flagstore.SetDefault(flagstore.Map{"features": map[string]any{"beta": true}})
	srv := newTestServer(t, nil, Options{Features: testFeatures})
	if code, _ := get(t, srv, "/beta"); code != http.StatusOK {
		t.Errorf("default store not used: got %v", code)
	}
}

func TestHandleRejectsBadLimits(t *testing.T) {
	for _, o := range []Options{
		{RPSLimit: -1},
		{RPSBurst: -5},
		{RPSLimit: -0.5, RPSBurst: -1},
	} {
		if err := Handle(slogx.DiscardLogger(), http.NewServeMux(), "", Config{Flags: flagstore.Map{}}, o); err == nil {
			t.Errorf("options %+v: no error", o)
		}
	}
}

func TestFeatureRedirect(t *testing.T) {
	flags := flagstore.Map{"moved": true, "hidden": false}
	mux := http.NewServeMux()
	err := Handle(slogx.DiscardLogger(), mux, "/app", Config{Flags: flags, ServerID: "test"}, Options{
		Features: []Feature{
			{Path: "/old", Key: "moved", Title: "Old", Redirect: "/new"},
			{Path: "/gone", Key: "hidden", Title: "Gone", Redirect: "/new"},
		},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/old", nil))
	if w.Code != http.StatusFound {
		t.Errorf("expected 302, got %v", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/app/new" {
		t.Errorf("bad location %q", loc)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/gone", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("disabled redirect: expected 404, got %v", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "" {
		t.Errorf("disabled redirect leaked location %q", loc)
	}
}
