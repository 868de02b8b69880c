package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/motorline/vehicle-finder/pkg/common"
	"github.com/motorline/vehicle-finder/pkg/engine"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/messaging"
	"github.com/motorline/vehicle-finder/pkg/query"
	"github.com/motorline/vehicle-finder/pkg/server"
	"github.com/motorline/vehicle-finder/pkg/storage"
	"github.com/motorline/vehicle-finder/pkg/types"
)

var country = "in"

func init() {
	if c, ok := os.LookupEnv("COUNTRY"); ok {
		country = c
	}
}

type app struct {
	catalog *index.Catalog
	storage *storage.DiskStorage
	conn    *amqp.Connection
}

func (a *app) ConnectAmqp(amqpUrl string) {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	a.conn = conn
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	err = messaging.ListenToTopic(ch, country, messaging.VehiclesUpsertedTopic, func(d amqp.Delivery) error {
		var vehicles []*types.Vehicle
		if err := json.Unmarshal(d.Body, &vehicles); err != nil {
			log.Printf("Failed to unmarshal upsert message %v", err)
			return nil
		}
		log.Printf("Got upserts %d", len(vehicles))
		a.catalog.Upsert(vehicles...)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to listen for vehicle upserts: %v", err)
	}

	removeCh, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	err = messaging.ListenToTopic(removeCh, country, messaging.VehiclesRemovedTopic, func(d amqp.Delivery) error {
		var ids []types.VehicleId
		if err := json.Unmarshal(d.Body, &ids); err != nil {
			log.Printf("Failed to unmarshal remove message %v", err)
			return nil
		}
		a.catalog.Remove(ids...)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to listen for vehicle removals: %v", err)
	}
	log.Printf("Listening for vehicle feed on %s", country)
}

func main() {
	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		dataDir = "data"
	}
	listenAddr, ok := os.LookupEnv("LISTEN_ADDR")
	if !ok {
		listenAddr = ":8080"
	}

	a := &app{
		catalog: index.NewCatalog(),
		storage: storage.NewDiskStorage(country, dataDir),
	}
	if err := a.storage.LoadVehicles(a.catalog); err != nil {
		log.Printf("Failed to load vehicle snapshot: %v", err)
	}

	if amqpUrl, ok := os.LookupEnv("AMQP_URL"); ok {
		a.ConnectAmqp(amqpUrl)
	} else {
		log.Printf("AMQP_URL not set, running without a live feed")
	}

	var parser query.Parser = query.NoopParser{}
	if _, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
		parser = query.NewOpenAIParser()
	}

	var savedSearches *storage.SavedSearchStore
	if redisAddr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		redisDb := 0
		if v, ok := os.LookupEnv("REDIS_DB"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				redisDb = n
			}
		}
		savedSearches = storage.NewSavedSearchStore(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDb)
	}

	ws := server.NewWebServer(a.catalog, engine.NewEngine(), parser, savedSearches)

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	saveHook := func(ctx context.Context) error {
		return a.storage.SaveVehicles(a.catalog)
	}
	common.RunServerWithShutdown(httpServer, "vehicle finder", 15*time.Second, saveHook)
}
