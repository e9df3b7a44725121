package domain

// Item is a content item tracked by the vector store.
type Item struct {
	ID     int64
	Vector []float32
}

// Interaction is a single user action on an item, supplied per request
// and never persisted. Timestamp is seconds since the Unix epoch.
type Interaction struct {
	ItemID    int64   `json:"id"`
	Action    string  `json:"action"`
	Timestamp float64 `json:"timestamp"`
}

// ScoredItem is a similarity search result.
type ScoredItem struct {
	ID    int64
	Score float64
}

// UpsertAction distinguishes first-time creation from re-embedding of
// existing content.
type UpsertAction string

const (
	UpsertCreate UpsertAction = "create"
	UpsertUpdate UpsertAction = "update"
)

type StoreStats struct {
	Count     int
	Dimension int
}
