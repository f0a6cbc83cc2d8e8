package models

// FeedState describes the lifecycle of the client's journal feed cache.
type FeedState string

const (
	// FeedIdle means no fetch has been attempted yet.
	FeedIdle FeedState = "idle"

	// FeedLoading means a full fetch is in flight.
	FeedLoading FeedState = "loading"

	// FeedReady means the cache reflects the last successful fetch (or the
	// empty feed of an absent identity).
	FeedReady FeedState = "ready"

	// FeedErrored means the last fetch failed; the cache holds whatever the
	// previous successful fetch produced.
	FeedErrored FeedState = "errored"
)
