package tagtog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srvURL string) *Client {
	return NewClient(srvURL, "alice", "demo", "alice", "secret", true)
}

func checkAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	if !ok || user != "alice" || pass != "secret" {
		t.Errorf("expected basic auth alice/secret, got %s/%s (ok=%v)", user, pass, ok)
	}
}

func TestAnnotationsLegend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		if r.URL.Path != "/-api/settings/v1/annotationsLegend" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("owner") != "alice" || q.Get("project") != "demo" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"e_1":"PERSON","e_2":"ORG"}`))
	}))
	defer srv.Close()

	legend, err := newTestClient(srv.URL).AnnotationsLegend(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legend) != 2 || legend["e_1"] != "PERSON" || legend["e_2"] != "ORG" {
		t.Errorf("unexpected legend %v", legend)
	}
}

func TestAnnotationsLegend_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AnnotationsLegend(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Op != "annotationsLegend" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		if r.URL.Path != "/-api/documents/v1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("output") != "plain.html" || q.Get("ids") != "doc-1" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`<html><body><p id="s1">hi</p></body></html>`))
	}))
	defer srv.Close()

	data, err := newTestClient(srv.URL).FetchDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `<html><body><p id="s1">hi</p></body></html>` {
		t.Errorf("unexpected body %q", data)
	}
}

func TestFetchDocument_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such document", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchDocument(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Op != "fetch" || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestImportAnnotated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		q := r.URL.Query()
		if q.Get("output") != "null" || q.Get("format") != "anndoc" {
			t.Errorf("unexpected query %v", q)
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 2 {
			t.Errorf("expected 2 files, got %d", len(files))
		}
		wantNames := map[string]string{
			"doc-1.plain.html": "<html/>",
			"doc-1.ann.json":   `{"anncomplete":false}`,
		}
		for _, fh := range files {
			want, ok := wantNames[fh.Filename]
			if !ok {
				t.Errorf("unexpected file %s", fh.Filename)
				continue
			}
			f, err := fh.Open()
			if err != nil {
				t.Errorf("open part: %v", err)
				continue
			}
			got, _ := io.ReadAll(f)
			f.Close()
			if string(got) != want {
				t.Errorf("file %s: expected %q, got %q", fh.Filename, want, got)
			}
		}

		w.Write([]byte(`{"ok":[{"id":"doc-1"}]}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).ImportAnnotated(context.Background(), "doc-1",
		[]byte("<html/>"), []byte(`{"anncomplete":false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"ok":[{"id":"doc-1"}]}` {
		t.Errorf("unexpected response body %q", body)
	}
}

func TestImportAnnotated_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "import failed", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ImportAnnotated(context.Background(), "doc-1",
		[]byte("<html/>"), []byte("{}"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Op != "import" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected error %+v", apiErr)
	}
}
