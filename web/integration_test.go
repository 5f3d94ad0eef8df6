// ABOUTME: End-to-end tests that run the server over a real TCP listener and inspect the HTML.
// ABOUTME: Uses goquery to select the page heading the way a browser-level assertion would.
package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2389-research/hellopage/page"
	"github.com/PuerkitoBio/goquery"
)

func startIntegrationServer(t *testing.T, def page.Definition) *httptest.Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Page: def})
	if err != nil {
		t.Fatalf("unexpected error creating server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func fetchDocument(t *testing.T, url string) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parsing HTML from %s: %v", url, err)
	}
	return resp, doc
}

func TestIntegrationRootPageHeading(t *testing.T) {
	def, err := page.Builtin("hello")
	if err != nil {
		t.Fatal(err)
	}
	ts := startIntegrationServer(t, def)

	resp, doc := fetchDocument(t, ts.URL+"/")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.EqualFold(ct, "text/html") {
		t.Errorf("expected Content-Type text/html, got %q", ct)
	}

	h1 := doc.Find("h1")
	if h1.Length() != 1 {
		t.Fatalf("expected exactly one h1, got %d", h1.Length())
	}
	if got := h1.Text(); got != "Hello, World!" {
		t.Errorf("expected h1 %q, got %q", "Hello, World!", got)
	}
	if got := doc.Find("title").Text(); got != "Hello, World!" {
		t.Errorf("expected title %q, got %q", "Hello, World!", got)
	}
	if lang, _ := doc.Find("html").Attr("lang"); lang != "en" {
		t.Errorf("expected lang en, got %q", lang)
	}
}

func TestIntegrationClassicVariant(t *testing.T) {
	def, err := page.Builtin("classic")
	if err != nil {
		t.Fatal(err)
	}
	ts := startIntegrationServer(t, def)

	_, doc := fetchDocument(t, ts.URL+"/")

	if got := doc.Find("h1").Text(); got != "Hello, World" {
		t.Errorf("expected h1 %q, got %q", "Hello, World", got)
	}
	if got := strings.TrimSpace(doc.Find("body > p").Text()); got != "Welcome to my static page!" {
		t.Errorf("expected welcome paragraph, got %q", got)
	}
}

func TestIntegrationStylesheetLinkResolves(t *testing.T) {
	def, err := page.Builtin("hello")
	if err != nil {
		t.Fatal(err)
	}
	ts := startIntegrationServer(t, def)

	_, doc := fetchDocument(t, ts.URL+"/")

	href, ok := doc.Find(`link[rel="stylesheet"]`).Attr("href")
	if !ok {
		t.Fatal("expected stylesheet link in document head")
	}

	resp, err := http.Get(ts.URL + href)
	if err != nil {
		t.Fatalf("GET %s: %v", href, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected stylesheet status 200, got %d", resp.StatusCode)
	}
}

func TestIntegrationCustomPageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "title: Custom\nheading: Hello from a file\nbody: |\n  First paragraph.\n\n  Second paragraph.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	def, err := page.Load(path)
	if err != nil {
		t.Fatalf("loading page: %v", err)
	}
	ts := startIntegrationServer(t, def)

	_, doc := fetchDocument(t, ts.URL+"/")

	if got := doc.Find("h1").Text(); got != "Hello from a file" {
		t.Errorf("expected custom heading, got %q", got)
	}
	if n := doc.Find("body > p").Length(); n != 2 {
		t.Errorf("expected 2 paragraphs, got %d", n)
	}
}

func TestIntegrationMissingPath(t *testing.T) {
	def, err := page.Builtin("hello")
	if err != nil {
		t.Fatal(err)
	}
	ts := startIntegrationServer(t, def)

	resp, err := http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatalf("GET /missing: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}
