package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"restaurant-pos/internal/pos"
	"restaurant-pos/proto/posv1"
)

// --- Request payloads ---

type listMenuRequest struct {
	Query         string `json:"query"`
	OnlyAvailable bool   `json:"onlyAvailable"`
}

type idRequest struct {
	ID string `json:"id"`
}

type availabilityRequest struct {
	ID          string `json:"id"`
	IsAvailable bool   `json:"isAvailable"`
}

type imageRequest struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type cartItemRequest struct {
	ItemID string `json:"itemId"`
}

type updateQuantityRequest struct {
	ItemID string `json:"itemId"`
	Delta  int    `json:"delta"`
}

type periodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type settingsRequest struct {
	UPIID string `json:"upiId"`
	QRURL string `json:"qrUrl"`
}

// --- Helpers ---

func decode(req *structpb.Struct, v interface{}) error {
	if req == nil {
		return nil
	}
	raw, err := json.Marshal(req.AsMap())
	if err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

// respond wraps data in the {success, message, data} envelope.
func respond(message string, data interface{}) (*structpb.Struct, error) {
	payload := map[string]interface{}{
		"success": true,
		"message": message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "encode response: %v", err)
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, status.Errorf(codes.Internal, "encode response: %v", err)
		}
		payload["data"] = v
	}

	out, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

type POSHandler struct {
	svc    *pos.Service
	logger *zap.Logger
}

func NewPOSHandler(svc *pos.Service, logger *zap.Logger) *POSHandler {
	return &POSHandler{
		svc:    svc,
		logger: logger,
	}
}

var _ posv1.POSServiceServer = (*POSHandler)(nil)

// toStatus maps cashier notices to their gRPC code and everything else to
// Internal.
func (s *POSHandler) toStatus(method string, err error) error {
	if notice, ok := pos.AsNotice(err); ok {
		code := codes.InvalidArgument
		switch notice.Code {
		case pos.NoticeFailedPrecondition:
			code = codes.FailedPrecondition
		case pos.NoticeNotFound:
			code = codes.NotFound
		}
		return status.Error(code, notice.Message)
	}

	s.logger.Error("pos operation failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}

// -- Menu --

func (s *POSHandler) ListMenu(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listMenuRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	items := s.svc.ListMenu(ctx, pos.MenuFilter{Query: in.Query, OnlyAvailable: in.OnlyAvailable})
	return respond("Menu retrieved successfully", items)
}

func (s *POSHandler) UpsertItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in pos.ItemInput
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	item, err := s.svc.UpsertItem(ctx, in)
	if err != nil {
		return nil, s.toStatus(posv1.MethodUpsertItem, err)
	}
	return respond("Menu item saved successfully", item)
}

func (s *POSHandler) RemoveItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	if err := s.svc.RemoveItem(ctx, in.ID); err != nil {
		return nil, s.toStatus(posv1.MethodRemoveItem, err)
	}
	return respond("Menu item removed successfully", nil)
}

func (s *POSHandler) SetAvailability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in availabilityRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	item, err := s.svc.SetAvailability(ctx, in.ID, in.IsAvailable)
	if err != nil {
		return nil, s.toStatus(posv1.MethodSetAvailability, err)
	}
	return respond("Availability updated successfully", item)
}

func (s *POSHandler) SetImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in imageRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	item, err := s.svc.SetImage(ctx, in.ID, in.ImageURL)
	if err != nil {
		return nil, s.toStatus(posv1.MethodSetImage, err)
	}
	return respond("Image updated successfully", item)
}

// -- Cart --

func (s *POSHandler) GetCart(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return respond("Cart retrieved successfully", s.svc.GetCart(ctx))
}

func (s *POSHandler) AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in cartItemRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	cart, err := s.svc.AddItem(ctx, in.ItemID)
	if err != nil {
		return nil, s.toStatus(posv1.MethodAddItem, err)
	}
	return respond("Item added to cart successfully", cart)
}

func (s *POSHandler) UpdateQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateQuantityRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	cart, err := s.svc.UpdateQty(ctx, in.ItemID, in.Delta)
	if err != nil {
		return nil, s.toStatus(posv1.MethodUpdateQuantity, err)
	}
	return respond("Quantity updated successfully", cart)
}

func (s *POSHandler) RemoveLine(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in cartItemRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	cart, err := s.svc.RemoveLine(ctx, in.ItemID)
	if err != nil {
		return nil, s.toStatus(posv1.MethodRemoveLine, err)
	}
	return respond("Item removed from cart successfully", cart)
}

func (s *POSHandler) ClearCart(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cart, err := s.svc.ClearCart(ctx)
	if err != nil {
		return nil, s.toStatus(posv1.MethodClearCart, err)
	}
	return respond("Cart cleared successfully", cart)
}

// CompleteSale reports a recorded sale as a success even when the cart
// could not be reset; the message tells the cashier to clear it.
func (s *POSHandler) CompleteSale(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sale, err := s.svc.CompleteSale(ctx)
	if errors.Is(err, pos.ErrCartResetFailed) {
		s.logger.Warn("sale recorded without cart reset", zap.String("sale_id", sale.ID), zap.Error(err))
		return respond(pos.ErrCartResetFailed.Error(), sale)
	}
	if err != nil {
		return nil, s.toStatus(posv1.MethodCompleteSale, err)
	}
	return respond("Sale completed successfully", sale)
}

func (s *POSHandler) Receipt(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return respond("Receipt generated successfully", s.svc.Receipt(ctx))
}

// -- Reports --

func (s *POSHandler) period(req *structpb.Struct) (int, time.Month, error) {
	var in periodRequest
	if err := decode(req, &in); err != nil {
		return 0, 0, err
	}
	if in.Year <= 0 {
		return 0, 0, status.Error(codes.InvalidArgument, "year is required")
	}
	return in.Year, time.Month(in.Month), nil
}

func (s *POSHandler) MonthlySales(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	year, month, err := s.period(req)
	if err != nil {
		return nil, err
	}

	sales, err := s.svc.MonthlySales(ctx, year, month)
	if err != nil {
		return nil, s.toStatus(posv1.MethodMonthlySales, err)
	}
	return respond(fmt.Sprintf("%d sales found", len(sales)), sales)
}

func (s *POSHandler) MonthlyReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	year, month, err := s.period(req)
	if err != nil {
		return nil, err
	}

	report, err := s.svc.MonthlyReport(ctx, year, month)
	if err != nil {
		return nil, s.toStatus(posv1.MethodMonthlyReport, err)
	}
	return respond("Report generated successfully", report)
}

// -- Settings & payment --

func (s *POSHandler) GetSettings(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return respond("Settings retrieved successfully", s.svc.GetSettings(ctx))
}

func (s *POSHandler) SetSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in settingsRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	settings, err := s.svc.SetSettings(ctx, in.UPIID, in.QRURL)
	if err != nil {
		return nil, s.toStatus(posv1.MethodSetSettings, err)
	}
	return respond("Settings saved successfully", settings)
}

func (s *POSHandler) PaymentRequest(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return respond("Payment request generated successfully", s.svc.PaymentRequest(ctx))
}
