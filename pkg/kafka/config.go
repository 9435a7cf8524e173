package kafka

import "time"

// Config holds broker connection parameters shared by producers and consumers.
type Config struct {
	Brokers       []string
	ConsumerGroup string

	// BatchTimeout bounds how long a writer buffers before flushing.
	// Zero means 10ms, which keeps publish latency low for the clearing SLA.
	BatchTimeout time.Duration

	// TLS enables TLS for broker connections.
	TLS bool

	// SASL authentication. Mechanism is one of "PLAIN", "SCRAM-SHA-256",
	// "SCRAM-SHA-512"; empty means PLAIN when SASLEnabled is set.
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}
