package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"foodcourt-ordering/analytics-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/dashboard/{restaurantId}", h.getDashboard).Methods("GET")
	r.HandleFunc("/api/admin/dashboard", h.getAdminDashboard).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Analytics.Dashboard(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *Handler) getAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Analytics.AdminDashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"code":    "internal_error",
		"message": err.Error(),
	})
}
