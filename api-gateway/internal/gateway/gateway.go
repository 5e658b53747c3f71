package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL     string
	CatalogSvcURL   string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Printf("PROXY: %s %s -> %s%s", r.Method, r.URL.Path, targetURL, r.URL.Path)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequest(r.Method, url, r.Body)
	if err != nil {
		log.Printf("ERROR: Failed to create request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("ERROR: Failed to proxy to %s: %v", targetURL, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "upstream_failure",
			"message": "upstream service unreachable",
		})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: Failed to copy response: %v", err)
	}
}

// Resolve maps a public path to the owning service's base URL. Empty string
// means no service owns the path.
func (g *Gateway) Resolve(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/cart"),
		strings.HasPrefix(path, "/api/orders"),
		strings.HasPrefix(path, "/api/restaurant/orders"),
		strings.HasPrefix(path, "/api/food-items/ratings"):
		return g.config.OrderSvcURL

	case strings.HasPrefix(path, "/api/analytics"),
		strings.HasPrefix(path, "/api/admin/dashboard"):
		return g.config.AnalyticsSvcURL

	// Restaurant order listings belong to order-svc, everything else under
	// /api/restaurants is catalog.
	case strings.HasPrefix(path, "/api/restaurants/") && strings.HasSuffix(path, "/orders"):
		return g.config.OrderSvcURL

	case path == "/api/restaurants", strings.HasPrefix(path, "/api/restaurants/"):
		return g.config.CatalogSvcURL
	}
	return ""
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("ROUTE: %s %s", r.Method, path)

	if target := g.Resolve(path); target != "" {
		g.ProxyRequest(w, r, target)
		return
	}

	log.Printf("[GATEWAY] Unmatched API route: %s", path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    "not_found",
		"message": "API route not found",
	})
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	return r
}
