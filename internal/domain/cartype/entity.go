package cartype

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTypeID         = errors.New("car type id cannot be empty")
	ErrNonPositiveQuantity = errors.New("total quantity must be positive")
	ErrNegativePrice       = errors.New("price per day cannot be negative")
)

// CarType is the catalog entry for a rentable category (SEDAN, SUV, ...).
// The fleet size and price are managed externally; this service only reads
// them.
type CarType struct {
	id               string
	displayName      string
	description      string
	pricePerDayCents int64
	currency         string
	totalQuantity    int
	photoURL         string
	metadata         map[string]any
}

func NewCarType(id, displayName, description string, pricePerDayCents int64, currency string, totalQuantity int, photoURL string, metadata map[string]any) (*CarType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyTypeID
	}
	if totalQuantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if pricePerDayCents < 0 {
		return nil, ErrNegativePrice
	}
	return &CarType{
		id:               id,
		displayName:      displayName,
		description:      description,
		pricePerDayCents: pricePerDayCents,
		currency:         currency,
		totalQuantity:    totalQuantity,
		photoURL:         photoURL,
		metadata:         metadata,
	}, nil
}

func (t *CarType) ID() string               { return t.id }
func (t *CarType) DisplayName() string      { return t.displayName }
func (t *CarType) Description() string      { return t.description }
func (t *CarType) PricePerDayCents() int64  { return t.pricePerDayCents }
func (t *CarType) Currency() string         { return t.currency }
func (t *CarType) TotalQuantity() int       { return t.totalQuantity }
func (t *CarType) PhotoURL() string         { return t.photoURL }
func (t *CarType) Metadata() map[string]any { return t.metadata }

// EstimatedTotalCents prices a rental of the given day count at today's
// rate. Only a quote; bookings snapshot their own price.
func (t *CarType) EstimatedTotalCents(days int) int64 {
	if days < 1 {
		days = 1
	}
	return t.pricePerDayCents * int64(days)
}
