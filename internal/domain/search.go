package domain

// SearchResult is one entry of a discovery search: a local business or an
// external directory candidate, annotated for ranking.
type SearchResult struct {
	Business *Business
	// Great-circle distance from the search center in miles; negative when
	// no coordinate basis exists.
	Distance float64
	// Whether the requested name matched this record (geo searches keep
	// non-matching nearby businesses and rank them lower).
	NameMatch bool
	// External directory candidates are not persisted locally.
	External   bool
	ExternalID string
}

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}

type SubscriberPort interface {
	Subscribe(topic, groupID string) (<-chan Message, error)
}
