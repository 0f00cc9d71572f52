package types

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// MessageBody acknowledges mutations that return no resource.
type MessageBody struct {
	Message string `json:"message"`
}

// PurgeResult reports how many rows a bulk delete removed.
type PurgeResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// PagedList is the envelope for offset-paginated listings.
type PagedList[T any] struct {
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"currentPage"`
	Data        []T   `json:"data"`
}

// List is the envelope for unpaginated listings.
type List[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewList wraps data, keeping the count in step with it.
func NewList[T any](data []T) List[T] {
	if data == nil {
		data = []T{}
	}
	return List[T]{Count: len(data), Data: data}
}

// MessageWithData acknowledges a mutation and returns the updated resource.
type MessageWithData[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}
