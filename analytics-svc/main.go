package main

import (
	httpapi "foodcourt-ordering/analytics-svc/internal/api/http"
	"foodcourt-ordering/analytics-svc/internal/service"
	"foodcourt-ordering/analytics-svc/internal/storage"
	"foodcourt-ordering/config"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	store := storage.NewPostgresStore(db)
	cache := storage.NewRedisDashboardCache(rdb)
	svc := service.NewAnalyticsService(store, cache)

	handler := httpapi.NewHandler(svc)
	httpapi.StartServer(":"+config.Getenv("PORT", "8083"), httpapi.NewRouter(handler))
}
