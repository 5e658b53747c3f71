package main

import (
	"log"

	httpapi "foodcourt-ordering/catalog-svc/internal/api/http"
	"foodcourt-ordering/catalog-svc/internal/service"
	"foodcourt-ordering/catalog-svc/internal/storage"
	"foodcourt-ordering/config"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	restSvc := service.NewRestaurantService(repo)
	itemSvc := service.NewFoodItemService(repo, repo)

	handler := httpapi.NewHandler(restSvc, itemSvc)
	httpapi.StartServer(":"+config.Getenv("PORT", "8082"), httpapi.NewRouter(handler))
}
