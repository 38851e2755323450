package grpcapi

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
	"github.com/LavaJover/shvark-pricing-service/internal/usecase/pricing"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type PricingHandler struct {
	pricingUsecase pricing.PricingUsecase
}

func NewPricingHandler(pricingUsecase pricing.PricingUsecase) *PricingHandler {
	return &PricingHandler{pricingUsecase: pricingUsecase}
}

func (h *PricingHandler) CalculatePrice(ctx context.Context, r *CalculatePriceRequest) (*CalculatePriceResponse, error) {
	query, err := ToPriceQuery(r)
	if err != nil {
		return nil, toStatus(err)
	}
	result, err := h.pricingUsecase.CalculatePriceWithCampaigns(ctx, query)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CalculatePriceResponse{Result: result}, nil
}

func (h *PricingHandler) CalculateMultiRoomPrice(ctx context.Context, r *CalculateMultiRoomPriceRequest) (*CalculateMultiRoomPriceResponse, error) {
	input, err := ToMultiRoomInput(r)
	if err != nil {
		return nil, toStatus(err)
	}
	booking, err := h.pricingUsecase.CalculateMultiRoomBookingPrice(ctx, input)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CalculateMultiRoomPriceResponse{Booking: booking}, nil
}

func (h *PricingHandler) CalculateTierPricing(ctx context.Context, r *CalculateTierPricingRequest) (*CalculateTierPricingResponse, error) {
	tiers, err := h.pricingUsecase.CalculateTierPricing(ctx, &pricingdto.TierInput{
		BasePrice:  r.BasePrice,
		Commercial: r.Commercial,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &CalculateTierPricingResponse{Tiers: tiers}, nil
}

func (h *PricingHandler) InvalidateCache(ctx context.Context, r *InvalidateCacheRequest) (*InvalidateCacheResponse, error) {
	removed, err := h.pricingUsecase.InvalidateCache(ctx, ToConfigChangedEvent(r))
	if err != nil {
		return nil, toStatus(err)
	}
	return &InvalidateCacheResponse{Removed: removed}, nil
}

func toStatus(err error) error {
	var (
		notFound   *domain.NotFoundError
		badRequest *domain.BadRequestError
	)
	switch {
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &badRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case pricing.IsRoomUnavailable(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		slog.Error("pricing request failed", "error", err)
		return status.Error(codes.Internal, "internal pricing error")
	}
}
