package messaging

type ChangeTopic = string

const (
	VehiclesUpsertedTopic ChangeTopic = "vehicle_added"
	VehiclesRemovedTopic  ChangeTopic = "vehicle_removed"
)
