package engine

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestClient_ProcessDocumentForwardsMultipart(t *testing.T) {
	var gotFilename, gotConsolidate string
	var gotFile []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/processFulltextDocument" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		f, hdr, err := r.FormFile("input")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		gotFilename = hdr.Filename
		gotFile, _ = io.ReadAll(f)
		gotConsolidate = r.FormValue("consolidateHeader")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte("<TEI/>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	form := url.Values{"consolidateHeader": {"1"}}
	res, err := c.ProcessDocument(context.Background(), "processFulltextDocument", "paper.pdf", []byte("%PDF-1.4"), form)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	if string(res.Body) != "<TEI/>" {
		t.Fatalf("body=%q", res.Body)
	}
	if res.ContentType != "application/xml" {
		t.Fatalf("content-type=%q", res.ContentType)
	}
	if gotFilename != "paper.pdf" || string(gotFile) != "%PDF-1.4" || gotConsolidate != "1" {
		t.Fatalf("forwarded filename=%q file=%q consolidateHeader=%q", gotFilename, gotFile, gotConsolidate)
	}
}

func TestClient_ProcessFormURLEncoded(t *testing.T) {
	var gotCT, gotCitations string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		gotCitations = r.PostFormValue("citations")
		_, _ = w.Write([]byte("<biblStruct/>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.ProcessForm(context.Background(), "processCitation", url.Values{
		"citations":            {"Smith, J. (2020)."},
		"consolidateCitations": {"0"},
	})
	if err != nil {
		t.Fatalf("ProcessForm: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	if gotCT != "application/x-www-form-urlencoded" {
		t.Fatalf("content-type=%q", gotCT)
	}
	if gotCitations != "Smith, J. (2020)." {
		t.Fatalf("citations=%q", gotCitations)
	}
}

func TestClient_EngineErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine broke", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.ProcessForm(context.Background(), "processCitation", url.Values{})
	if err != nil {
		t.Fatalf("engine 500 must round-trip, got %v", err)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", res.StatusCode)
	}
}

func TestClient_TransportErrorIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url2 := srv.URL
	srv.Close()

	c := NewClient(url2)
	if _, err := c.Get(context.Background(), "/api/isalive"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestClient_GetPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("0.8.0"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/") // trailing slash must not double up
	res, err := c.Get(context.Background(), "/api/version")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(res.Body) != "0.8.0" {
		t.Fatalf("body=%q", res.Body)
	}
}

func TestOpTimeouts(t *testing.T) {
	cases := map[string]time.Duration{
		"processFulltextDocument": 300 * time.Second,
		"processHeaderDocument":   120 * time.Second,
		"processReferences":       180 * time.Second,
		"processCitation":         60 * time.Second,
		"version":                 passthroughTimeout,
	}
	for op, want := range cases {
		if got := OpTimeout(op); got != want {
			t.Fatalf("OpTimeout(%q)=%v want %v", op, got, want)
		}
	}
}
