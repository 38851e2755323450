package domain

import (
	"errors"
	"fmt"
)

var (
	ErrHotelNotFound         = errors.New("hotel not found")
	ErrRoomTypeNotFound      = errors.New("room type not found")
	ErrMealPlanNotFound      = errors.New("meal plan not found")
	ErrMarketNotFound        = errors.New("market not found")
	ErrRateNotFound          = errors.New("rate not found")
	ErrInvalidQuery          = errors.New("invalid pricing query")
	ErrMalformedOverride     = errors.New("malformed override data")
	ErrRoomUnavailable       = errors.New("room is not available")
	ErrInsufficientAllotment = errors.New("insufficient allotment")
	ErrCacheMiss             = errors.New("cache miss")
)

// NotFoundError is returned when a referenced configuration document is missing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Entity {
	case EntityHotel:
		return ErrHotelNotFound
	case EntityRoomType:
		return ErrRoomTypeNotFound
	case EntityMealPlan:
		return ErrMealPlanNotFound
	case EntityMarket:
		return ErrMarketNotFound
	case EntityRate:
		return ErrRateNotFound
	}
	return nil
}

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// BadRequestError marks invalid input or malformed configuration.
type BadRequestError struct {
	Reason string
	Err    error
}

func (e *BadRequestError) Error() string {
	return "bad request: " + e.Reason
}

func (e *BadRequestError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidQuery
}

func NewBadRequest(format string, args ...any) error {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...)}
}

func NewMalformedOverride(format string, args ...any) error {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...), Err: ErrMalformedOverride}
}
