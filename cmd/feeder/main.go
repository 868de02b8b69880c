package main

import (
	"encoding/json"
	"log"
	"os"
	"slices"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/motorline/vehicle-finder/pkg/messaging"
	"github.com/motorline/vehicle-finder/pkg/types"
)

// feeder publishes a vehicle file onto the feed, used to seed or refresh a
// running finder. Usage: feeder <vehicles.json>

const batchSize = 500

var country = "in"

func init() {
	if c, ok := os.LookupEnv("COUNTRY"); ok {
		country = c
	}
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <vehicles.json>", os.Args[0])
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read vehicle file: %v", err)
	}
	var vehicles []*types.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		log.Fatalf("Failed to parse vehicle file: %v", err)
	}

	amqpUrl, ok := os.LookupEnv("AMQP_URL")
	if !ok {
		log.Fatalf("AMQP_URL not set")
	}
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	if err := messaging.DefineTopic(ch, country, messaging.VehiclesUpsertedTopic); err != nil {
		log.Fatalf("Failed to declare topic: %v", err)
	}
	ch.Close()

	sent := 0
	for batch := range slices.Chunk(vehicles, batchSize) {
		if err := messaging.SendChange(conn, country, messaging.VehiclesUpsertedTopic, batch); err != nil {
			log.Fatalf("Failed to publish batch after %d vehicles: %v", sent, err)
		}
		sent += len(batch)
	}
	log.Printf("Published %d vehicles on %s", sent, country)
}
