package publisher

// Publisher represents a service for announcing freshly scraped program
// lists to downstream consumers
type Publisher interface {
	// Publish publishes a message under the given field key
	Publish(key string, message []byte) error

	// Trim trims the stream to the configured maximum length
	Trim() error

	// Close closes the publisher connection
	Close() error
}
