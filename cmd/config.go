package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL                string
	KafkaHost              string
	KafkaStatusEventsTopic string

	// SLA thresholds in hours and the sweep interval in seconds. Parsed and
	// validated once at startup; an invalid value is fatal.
	SLAPickupHours          int
	SLADeliveryHours        int
	SLAInTransitHours       int
	SLASweepIntervalSeconds int
}
