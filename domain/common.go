package domain

import (
	"errors"

	"roktoSheba/pkg/utils"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrAlreadyExists       = errors.New("already exists")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrInvalidToken        = errors.New("invalid token")
)

// Identity is what the access control layer learns from a verified token.
type Identity struct {
	UID   string
	Email string
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Page is the envelope for every list response.
type Page[T any] struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Data       []T   `json:"data"`
}

type Stats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalFunding  float64 `json:"totalFunding"`
	TotalRequests int64   `json:"totalRequests"`
}

// NewPage wraps one page of results. A zero limit means the data is the
// complete result set.
func NewPage[T any](data []T, total int64, page, limit int) Page[T] {
	if data == nil {
		data = []T{}
	}
	if limit <= 0 {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Page[T]{Total: total, Page: 1, TotalPages: pages, Data: data}
	}
	return Page[T]{
		Total:      total,
		Page:       page,
		TotalPages: utils.TotalPages(total, limit),
		Data:       data,
	}
}
