package main

import (
	"context"
	"net/http"

	"foodcourt-ordering/config"
	"foodcourt-ordering/notify-svc/internal/service"
	"foodcourt-ordering/notify-svc/internal/ws"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	hub := ws.NewHub(logger)
	go hub.Run()

	reader := config.NewKafkaReader(config.OrderEventsTopic, "notify-svc")
	defer reader.Close()

	consumer := service.NewConsumer(reader, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Start(ctx)

	r := mux.NewRouter()
	r.HandleFunc("/ws", hub.HandleWebSocket)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"notify-svc"}`))
	}).Methods("GET")

	addr := ":" + config.Getenv("PORT", "8084")
	logger.WithField("addr", addr).Info("Notify Service starting")
	logger.Fatal(http.ListenAndServe(addr, cors.Default().Handler(r)))
}
