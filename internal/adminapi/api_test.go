package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/config"
	"github.com/mobileriadardania/storefront/internal/app"
	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/mobileriadardania/storefront/internal/webserver"
)

type testEnv struct {
	app    *app.Application
	server *webserver.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false
	cfg.Logger.Mode = "production"
	application := app.NewApplication(&cfg)
	if err := application.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(application.Release)

	s, err := webserver.NewServer(cfg.Web, false)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	Init(s, application)
	return &testEnv{app: application, server: s}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.server.Echo().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, rec, &body)
	if len(body) != 1 {
		t.Fatalf("error body must only carry \"error\": %s", rec.Body.String())
	}
	msg, _ := body["error"].(string)
	return msg
}

func (e *testEnv) createProduct(t *testing.T, payload map[string]interface{}) domain.Product {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/products", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var p domain.Product
	decode(t, rec, &p)
	return p
}

func TestCreateThenGet(t *testing.T) {
	env := newTestEnv(t)
	created := env.createProduct(t, map[string]interface{}{
		"title":          "Chair",
		"category":       "patio",
		"images":         []string{"/tmp/x.jpg"},
		"specifications": map[string]string{"material": "teak"},
		"legacyField":    "ignored",
	})
	if len(created.ID) != 24 {
		t.Fatalf("id %q", created.ID)
	}
	if len(created.Images) != 1 || created.Images[0] != "x.jpg" {
		t.Fatalf("images %q", created.Images)
	}

	rec := env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	var got domain.Product
	decode(t, rec, &got)
	if got.ID != created.ID || got.Title != "Chair" || got.Category != "patio" || got.Specifications["material"] != "teak" {
		t.Fatalf("got %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"_id":"`+created.ID+`"`) {
		t.Fatalf("id must be exposed as _id: %s", rec.Body.String())
	}
}

func TestMissingAndMalformedIDs(t *testing.T) {
	env := newTestEnv(t)
	absent := "65a1b2c3d4e5f60718293a4b"

	rec := env.do(t, http.MethodGet, "/api/products/not-an-id", nil)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != MsgInvalidID {
		t.Fatalf("get malformed: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/api/products/"+absent, nil)
	if rec.Code != http.StatusNotFound || errorOf(t, rec) != MsgNotFound {
		t.Fatalf("get absent: %d %s", rec.Code, rec.Body.String())
	}
	for _, id := range []string{absent, "not-an-id"} {
		rec = env.do(t, http.MethodPut, "/api/products/"+id, map[string]interface{}{"title": "x"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("put %s: %d %s", id, rec.Code, rec.Body.String())
		}
		rec = env.do(t, http.MethodDelete, "/api/products/"+id, nil)
		if rec.Code != http.StatusNotFound || rec.Body.String() != `{"error":"Product not found"}`+"\n" {
			t.Fatalf("delete %s: %d %q", id, rec.Code, rec.Body.String())
		}
	}
}

func TestUpdateReplacesWholeDocument(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, map[string]interface{}{
		"title":       "Sofa",
		"description": "Three seats",
		"features":    []string{"washable"},
	})
	rec := env.do(t, http.MethodPut, "/api/products/"+p.ID, map[string]interface{}{"title": "Sofa XL", "category": "living"})
	if rec.Code != http.StatusOK {
		t.Fatalf("put: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/api/products/"+p.ID, nil)
	var got domain.Product
	decode(t, rec, &got)
	if got.Title != "Sofa XL" || got.Category != "living" || got.Description != "" || got.Features != nil {
		t.Fatalf("omitted fields must be cleared: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, map[string]interface{}{"title": "Lamp"})
	rec := env.do(t, http.MethodDelete, "/api/products/"+p.ID, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), MsgDeleted) {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	if rec = env.do(t, http.MethodGet, "/api/products/"+p.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", rec.Code)
	}
}

func TestCreateKeepsTextAsSent(t *testing.T) {
	env := newTestEnv(t)
	created := env.createProduct(t, map[string]interface{}{
		"title":       " Chair ",
		"description": "Line one\n",
		"features":    []string{"soft", " "},
	})

	var got domain.Product
	decode(t, env.do(t, http.MethodGet, "/api/products/"+created.ID, nil), &got)
	if got.Title != " Chair " || got.Description != "Line one\n" {
		t.Fatalf("title=%q description=%q", got.Title, got.Description)
	}
	if len(got.Features) != 1 || got.Features[0] != "soft" {
		t.Fatalf("features %q", got.Features)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	cases := map[string]interface{}{
		"missing title":   map[string]interface{}{"category": "sofa"},
		"images not list": `{"title":"x","images":"x.jpg"}`,
		"numeric spec":    `{"title":"x","specifications":{"width":200}}`,
		"malformed json":  `{"title":`,
	}
	for name, body := range cases {
		rec := env.do(t, http.MethodPost, "/api/products", body)
		if rec.Code != http.StatusBadRequest || errorOf(t, rec) == "" {
			t.Errorf("%s: %d %s", name, rec.Code, rec.Body.String())
		}
	}
	var items []domain.Product
	decode(t, env.do(t, http.MethodGet, "/api/products", nil), &items)
	if len(items) != 0 {
		t.Fatalf("invalid payloads were stored: %d", len(items))
	}
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, map[string]interface{}{"title": "Kuzhinë Elba", "category": "Kitchen"})
	env.createProduct(t, map[string]interface{}{"title": "Sofa Roma", "category": "living"})

	var all []domain.Product
	decode(t, env.do(t, http.MethodGet, "/api/products", nil), &all)
	if len(all) != 2 || all[0].Title != "Kuzhinë Elba" {
		t.Fatalf("list: %+v", all)
	}
	var kitchen []domain.Product
	decode(t, env.do(t, http.MethodGet, "/api/products?category=kitchen", nil), &kitchen)
	if len(kitchen) != 1 {
		t.Fatalf("category filter: %+v", kitchen)
	}
	var found []domain.Product
	decode(t, env.do(t, http.MethodGet, "/api/products?q="+url.QueryEscape("kuzhine"), nil), &found)
	if len(found) != 1 || found[0].Category != "Kitchen" {
		t.Fatalf("search: %+v", found)
	}
}

func multipartRequest(t *testing.T, n int) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < n; i++ {
		fw, err := w.CreateFormFile("files", fmt.Sprintf("photo-%d.jpg", i))
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		fmt.Fprintf(fw, "image-%d", i)
	}
	_ = w.WriteField("note", "ignored")
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadAndServe(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, multipartRequest(t, 3))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Filenames []string `json:"filenames"`
	}
	decode(t, rec, &resp)
	if len(resp.Filenames) != 3 {
		t.Fatalf("filenames: %q", resp.Filenames)
	}
	seen := map[string]bool{}
	for _, name := range resp.Filenames {
		if !strings.HasSuffix(name, ".jpg") || seen[name] {
			t.Fatalf("bad or duplicate name %s", name)
		}
		seen[name] = true
	}

	rec = env.do(t, http.MethodGet, "/uploads/"+resp.Filenames[1], nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "image-1" {
		t.Fatalf("serve: %d %q", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/uploads/missing.jpg", nil)
	if rec.Code != http.StatusNotFound || errorOf(t, rec) != MsgFileNotFound {
		t.Fatalf("serve missing: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/uploads/..%2Fdata%2Fcatalog.db", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("traversal: %d", rec.Code)
	}
}

func TestUploadRejectsEmptyAndOversizedBatches(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, multipartRequest(t, 0))
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != MsgNoFiles {
		t.Fatalf("zero files: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/upload", map[string]string{"files": "nope"})
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != MsgNoFiles {
		t.Fatalf("non multipart: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, multipartRequest(t, 11))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("eleven files: %d %s", rec.Code, rec.Body.String())
	}
	files, _ := env.app.Storage().List(context.Background())
	if len(files) != 0 {
		t.Fatalf("rejected uploads persisted %q", files)
	}
}

func TestContact(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana", "email": "ana@example.com", "message": "Hello there",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("contact: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		WhatsappURL string `json:"whatsappUrl"`
	}
	decode(t, rec, &resp)
	want := "https://wa.me/38348222209?text=Message%20from%20Ana%20(ana%40example.com)%3A%0A%0AHello%20there"
	if resp.WhatsappURL != want {
		t.Fatalf("link %s, want %s", resp.WhatsappURL, want)
	}

	for _, body := range []interface{}{
		map[string]string{"name": "Ana", "email": "ana@example.com"},
		map[string]string{"name": " ", "email": "ana@example.com", "message": "hi"},
		`{"name":`,
	} {
		rec = env.do(t, http.MethodPost, "/api/contact", body)
		if rec.Code != http.StatusBadRequest || errorOf(t, rec) != MsgFieldsRequired {
			t.Fatalf("contact %v: %d %s", body, rec.Code, rec.Body.String())
		}
	}
}

func TestProductInquiry(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, map[string]interface{}{"title": "Bed Luna", "category": "bedroom"})
	rec := env.do(t, http.MethodGet, "/api/products/"+p.ID+"/inquiry", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("inquiry: %d %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	decode(t, rec, &resp)
	link := resp["whatsappUrl"]
	if !strings.HasPrefix(link, "https://wa.me/38349514788?text=") || !strings.Contains(link, "Bed%20Luna") {
		t.Fatalf("link %s", link)
	}
}

func TestSystemRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, map[string]interface{}{"title": "Desk"})

	rec := env.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/audit", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"products":1`) {
		t.Fatalf("audit: %d %s", rec.Code, rec.Body.String())
	}

	var snap struct {
		Counters map[string]int64 `json:"counters"`
		Gauges   map[string]int64 `json:"gauges"`
	}
	decode(t, env.do(t, http.MethodGet, "/api/metrics", nil), &snap)
	if snap.Counters[app.MetricProductsCreated] != 1 || snap.Gauges[app.MetricProducts] != 1 {
		t.Fatalf("metrics: %+v", snap)
	}

	rec = env.do(t, http.MethodGet, "/api/metrics/"+app.MetricProducts+"/history?window=24h", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: %d %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/api/metrics/"+app.MetricProducts+"/history?window=soon", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad window: %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/swagger/doc.json", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/products") {
		t.Fatalf("swagger: %d", rec.Code)
	}
}

func TestForeignOriginRejected(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden || errorOf(t, rec) != "Not allowed by CORS" {
		t.Fatalf("foreign origin: %d %s", rec.Code, rec.Body.String())
	}
}
