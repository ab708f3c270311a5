package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/maison/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	if !found || path != "/products/{id}" {
		t.Fatalf("Path() = %q, %v", path, found)
	}

	url, err := r.URL("products.show", map[string]string{"id": "65f0"})
	if err != nil {
		t.Fatalf("URL() error: %v", err)
	}
	if url != "/products/65f0" {
		t.Errorf("URL() = %q", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("no.such.route", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/products", "products.list", ok)
	api.Post("/checkout", "checkout.create", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/products = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	if w.Code == http.StatusOK {
		t.Error("route must only exist under the group prefix")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/healthz", "healthz", ok)
	api := r.Group("/api")
	api.Get("/products", "products.list", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("Routes() returned %d entries", len(infos))
	}

	byName := map[string]router.RouteInfo{}
	for _, ri := range infos {
		byName[ri.Name] = ri
	}
	if ri := byName["products.list"]; ri.Path != "/api/products" || ri.Method != http.MethodGet {
		t.Errorf("products.list = %+v", ri)
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := router.New()

	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Group", "yes")
			next.ServeHTTP(w, req)
		})
	}

	api := r.Group("/api", mark)
	api.Get("/products", "products.list", ok)
	r.Get("/healthz", "healthz", ok)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if w.Header().Get("X-Group") != "yes" {
		t.Error("group middleware did not run")
	}

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Header().Get("X-Group") != "" {
		t.Error("group middleware leaked outside the group")
	}
}
