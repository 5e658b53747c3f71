package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "foodcourt-ordering/catalog-svc/internal/api/http"
	"foodcourt-ordering/catalog-svc/internal/domain"
	"foodcourt-ordering/catalog-svc/internal/mocks"
	"foodcourt-ordering/catalog-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(t *testing.T) (*mux.Router, *mocks.RestaurantServiceInterface, *mocks.FoodItemServiceInterface) {
	restSvc := mocks.NewRestaurantServiceInterface(t)
	itemSvc := mocks.NewFoodItemServiceInterface(t)
	r := mux.NewRouter()
	httpapi.NewHandler(restSvc, itemSvc).RegisterRoutes(r)
	return r, restSvc, itemSvc
}

func doRequest(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_CreateRestaurant(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, restSvc, _ := newTestRouter(t)
		restSvc.On("Create", mock.AnythingOfType("*domain.Restaurant")).Return(nil).Once()

		rec := doRequest(r, "POST", "/api/restaurants", `{"name":"Dosa Corner","phone":"9876543210"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		rec := doRequest(r, "POST", "/api/restaurants", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid payload from service", func(t *testing.T) {
		r, restSvc, _ := newTestRouter(t)
		restSvc.On("Create", mock.AnythingOfType("*domain.Restaurant")).Return(service.ErrInvalidPayload).Once()

		rec := doRequest(r, "POST", "/api/restaurants", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "validation_error", body["code"])
	})
}

func TestHandlers_GetRestaurants_EmptyListIsNotNull(t *testing.T) {
	r, restSvc, _ := newTestRouter(t)
	restSvc.On("List").Return(nil, nil).Once()

	rec := doRequest(r, "GET", "/api/restaurants", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandlers_GetRestaurant_NotFound(t *testing.T) {
	r, restSvc, _ := newTestRouter(t)
	restSvc.On("Get", "RST-MISSING").Return(nil, service.ErrRestaurantNotFound).Once()

	rec := doRequest(r, "GET", "/api/restaurants/RST-MISSING", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not_found", body["code"])
}

func TestHandlers_DeleteRestaurant(t *testing.T) {
	r, restSvc, _ := newTestRouter(t)
	restSvc.On("Delete", "RST-1").Return(nil).Once()

	rec := doRequest(r, "DELETE", "/api/restaurants/RST-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlers_SetRestaurantAvailability(t *testing.T) {
	t.Run("closes the restaurant", func(t *testing.T) {
		r, restSvc, _ := newTestRouter(t)
		restSvc.On("SetAvailability", "RST-1", false).Return(nil).Once()

		rec := doRequest(r, "PUT", "/api/restaurants/RST-1/availability", `{"availability":false}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing flag is rejected", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		rec := doRequest(r, "PUT", "/api/restaurants/RST-1/availability", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_CreateFoodItem(t *testing.T) {
	r, _, itemSvc := newTestRouter(t)
	itemSvc.On("Create", mock.MatchedBy(func(item *domain.FoodItem) bool {
		return item.RestaurantID == "RST-1" && item.DishName == "Masala Dosa"
	})).Return(nil).Once()

	rec := doRequest(r, "POST", "/api/restaurants/RST-1/food-items",
		`{"dish_name":"Masala Dosa","dinein_price":100,"takeaway_price":110,"food_type":"Vegetarian"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandlers_GetMenu(t *testing.T) {
	r, _, itemSvc := newTestRouter(t)
	itemSvc.On("List", "RST-1").Return([]domain.FoodItem{
		{FoodItemID: "RST-1-FI001", DishName: "Masala Dosa"},
	}, nil).Once()

	rec := doRequest(r, "GET", "/api/restaurants/RST-1/food-items", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []domain.FoodItem
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	assert.Len(t, items, 1)
}

func TestHandlers_UpdateFoodItem(t *testing.T) {
	r, _, itemSvc := newTestRouter(t)

	itemSvc.On("Update", "RST-1", "RST-1-FI001", mock.MatchedBy(func(update domain.FoodItemUpdate) bool {
		return update.DineinPrice != nil && *update.DineinPrice == 120 && update.DishName == nil
	})).Return(&domain.FoodItem{FoodItemID: "RST-1-FI001", DineinPrice: 120}, nil).Once()

	rec := doRequest(r, "PATCH", "/api/restaurants/RST-1/food-items/RST-1-FI001", `{"dinein_price":120}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlers_FoodItemNotFound(t *testing.T) {
	r, _, itemSvc := newTestRouter(t)
	itemSvc.On("Get", "RST-1", "RST-1-FI999").Return(nil, service.ErrFoodItemNotFound).Once()

	rec := doRequest(r, "GET", "/api/restaurants/RST-1/food-items/RST-1-FI999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
