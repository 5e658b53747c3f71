package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"foodcourt-ordering/catalog-svc/internal/domain"
	"foodcourt-ordering/catalog-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	FoodItems   service.FoodItemServiceInterface
}

func NewHandler(restSvc service.RestaurantServiceInterface, itemSvc service.FoodItemServiceInterface) *Handler {
	return &Handler{
		Restaurants: restSvc,
		FoodItems:   itemSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/availability", h.setRestaurantAvailability).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/image", h.uploadRestaurantImage).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/food-items", h.createFoodItem).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items/{foodItemId}", h.getFoodItem).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items/{foodItemId}", h.updateFoodItem).Methods("PATCH")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items/{foodItemId}", h.deleteFoodItem).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items/{foodItemId}/availability", h.setFoodItemAvailability).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/food-items/{foodItemId}/image", h.uploadFoodItemImage).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "catalog-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	if err := h.Restaurants.Create(&rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	rest.RestaurantID = mux.Vars(r)["restaurantId"]
	if err := h.Restaurants.Update(&rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Restaurants.Delete(mux.Vars(r)["restaurantId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setRestaurantAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Availability *bool `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Availability == nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	restaurantID := mux.Vars(r)["restaurantId"]
	if err := h.Restaurants.SetAvailability(restaurantID, *body.Availability); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurant_id": restaurantID,
		"availability":  *body.Availability,
	})
}

func (h *Handler) uploadRestaurantImage(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantId"]
	if _, err := h.Restaurants.Get(restaurantID); err != nil {
		writeError(w, err)
		return
	}

	imageURL, err := saveUpload(r, "restaurant_"+restaurantID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Restaurants.UpdateImage(restaurantID, imageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *Handler) createFoodItem(w http.ResponseWriter, r *http.Request) {
	var item domain.FoodItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	item.RestaurantID = mux.Vars(r)["restaurantId"]
	if err := h.FoodItems.Create(&item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.FoodItems.List(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.FoodItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getFoodItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item, err := h.FoodItems.Get(vars["restaurantId"], vars["foodItemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) updateFoodItem(w http.ResponseWriter, r *http.Request) {
	var update domain.FoodItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	vars := mux.Vars(r)
	item, err := h.FoodItems.Update(vars["restaurantId"], vars["foodItemId"], update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteFoodItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.FoodItems.Delete(vars["restaurantId"], vars["foodItemId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setFoodItemAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Availability *bool `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Availability == nil {
		writeError(w, service.ErrInvalidPayload)
		return
	}
	vars := mux.Vars(r)
	if err := h.FoodItems.SetAvailability(vars["restaurantId"], vars["foodItemId"], *body.Availability); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"food_item_id": vars["foodItemId"],
		"availability": *body.Availability,
	})
}

func (h *Handler) uploadFoodItemImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if _, err := h.FoodItems.Get(vars["restaurantId"], vars["foodItemId"]); err != nil {
		writeError(w, err)
		return
	}

	imageURL, err := saveUpload(r, "item_"+vars["foodItemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.FoodItems.UpdateImage(vars["restaurantId"], vars["foodItemId"], imageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func saveUpload(r *http.Request, prefix string) (string, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return "", service.ErrInvalidPayload
	}
	file, handler, err := r.FormFile("image")
	if err != nil {
		return "", service.ErrInvalidPayload
	}
	defer file.Close()

	if !allowedImageTypes[handler.Header.Get("Content-Type")] {
		return "", service.ErrInvalidPayload
	}

	uploadDir := "./uploads"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	filename := prefix + "_" + handler.Filename
	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := "internal_error"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound), errors.Is(err, service.ErrFoodItemNotFound):
		code, status = "not_found", http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPayload):
		code, status = "validation_error", http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"code": code, "message": err.Error()})
}
