// Package constants holds shared literal values used across layers.
package constants

// Pub/Sub provider identifiers, matched against the pubsub.provider config key.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
