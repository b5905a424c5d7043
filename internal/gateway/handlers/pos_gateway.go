package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/pos"
	"restaurant-pos/proto/posv1"
)

const (
	thumbnailSize  = 256
	maxUploadBytes = 5 << 20
)

// POSCaller is the slice of the POS gRPC client the gateway needs.
type POSCaller interface {
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type POSHTTPHandler struct {
	posClient POSCaller
	logger    *zap.Logger
}

func NewPOSHTTPHandler(posClient POSCaller, logger *zap.Logger) *POSHTTPHandler {
	return &POSHTTPHandler{
		posClient: posClient,
		logger:    logger,
	}
}

// Request structs
type UpsertItemRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required,money"`
	ImageURL    string `json:"imageUrl"`
	IsAvailable *bool  `json:"isAvailable"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type AddCartItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type SettingsRequest struct {
	UPIID string `json:"upiId"`
	QRURL string `json:"qrUrl" binding:"omitempty,url"`
}

// Query structs
type ListMenuQuery struct {
	Search        string `form:"search"`
	OnlyAvailable bool   `form:"available"`
}

type MonthQuery struct {
	Year   int    `form:"year" binding:"required,min=2000,max=9999"`
	Month  int    `form:"month" binding:"required,min=1,max=12"`
	Format string `form:"format,default=csv" binding:"omitempty,oneof=csv xlsx"`
}

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// RegisterValidators adds the "money" tag: a non-negative decimal string.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
}

// --- Helper for handling gRPC errors ---
func handleGRPCError(c *gin.Context, err error) {
	if err != nil {
		if s, ok := status.FromError(err); ok {
			switch s.Code() {
			case codes.InvalidArgument:
				c.JSON(http.StatusBadRequest, errorResponse(s.Message()))
			case codes.NotFound:
				c.JSON(http.StatusNotFound, errorResponse(s.Message()))
			case codes.FailedPrecondition:
				c.JSON(http.StatusBadRequest, errorResponse(s.Message()))
			case codes.Unavailable:
				c.JSON(http.StatusServiceUnavailable, errorResponse("POS service is currently unavailable"))
			default:
				c.JSON(http.StatusInternalServerError, errorResponse("Service error: "+s.Message()))
			}
		} else {
			c.JSON(http.StatusInternalServerError, errorResponse("Unknown service error"))
		}
		c.Abort()
	}
}

// invoke calls method with the JSON-shaped payload and returns the reply
// envelope's message and data.
func (h *POSHTTPHandler) invoke(c *gin.Context, method string, payload map[string]interface{}) (string, interface{}, bool) {
	in, err := structpb.NewStruct(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return "", nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.posClient.Call(ctx, method, in)
	if err != nil {
		h.logger.Debug("pos call failed", zap.String("method", method), zap.Error(err))
		handleGRPCError(c, err)
		return "", nil, false
	}

	var data interface{}
	if v, ok := resp.Fields["data"]; ok {
		data = v.AsInterface()
	}
	return resp.Fields["message"].GetStringValue(), data, true
}

func (h *POSHTTPHandler) forward(c *gin.Context, method string, payload map[string]interface{}) {
	message, data, ok := h.invoke(c, method, payload)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, successResponse(message, data))
}

// --- Menu Handlers ---

func (h *POSHTTPHandler) ListMenu(c *gin.Context) {
	var query ListMenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	h.forward(c, posv1.MethodListMenu, map[string]interface{}{
		"query":         query.Search,
		"onlyAvailable": query.OnlyAvailable,
	})
}

func (h *POSHTTPHandler) UpsertItem(c *gin.Context) {
	var req UpsertItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	payload := map[string]interface{}{
		"id":       req.ID,
		"name":     req.Name,
		"price":    req.Price,
		"imageUrl": req.ImageURL,
	}
	if req.IsAvailable != nil {
		payload["isAvailable"] = *req.IsAvailable
	}

	h.forward(c, posv1.MethodUpsertItem, payload)
}

func (h *POSHTTPHandler) RemoveItem(c *gin.Context) {
	h.forward(c, posv1.MethodRemoveItem, map[string]interface{}{"id": c.Param("id")})
}

func (h *POSHTTPHandler) SetAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	h.forward(c, posv1.MethodSetAvailability, map[string]interface{}{
		"id":          c.Param("id"),
		"isAvailable": *req.IsAvailable,
	})
}

// UploadImage shrinks the uploaded picture to a JPEG thumbnail and stores it
// on the item as a data URL.
func (h *POSHTTPHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Image file required"))
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse("Image must be 5MB or smaller"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Could not read image"))
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Unsupported image format"))
		return
	}

	thumbnail := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to process image"))
		return
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	h.forward(c, posv1.MethodSetImage, map[string]interface{}{
		"id":       id,
		"imageUrl": dataURL,
	})
}

// --- Cart Handlers ---

func (h *POSHTTPHandler) GetCart(c *gin.Context) {
	h.forward(c, posv1.MethodGetCart, nil)
}

func (h *POSHTTPHandler) ClearCart(c *gin.Context) {
	h.forward(c, posv1.MethodClearCart, nil)
}

func (h *POSHTTPHandler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	h.forward(c, posv1.MethodAddItem, map[string]interface{}{"itemId": req.ItemID})
}

func (h *POSHTTPHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	h.forward(c, posv1.MethodUpdateQuantity, map[string]interface{}{
		"itemId": c.Param("id"),
		"delta":  req.Delta,
	})
}

func (h *POSHTTPHandler) RemoveCartItem(c *gin.Context) {
	h.forward(c, posv1.MethodRemoveLine, map[string]interface{}{"itemId": c.Param("id")})
}

func (h *POSHTTPHandler) Checkout(c *gin.Context) {
	message, data, ok := h.invoke(c, posv1.MethodCompleteSale, nil)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, successResponse(message, data))
}

func (h *POSHTTPHandler) Receipt(c *gin.Context) {
	h.forward(c, posv1.MethodReceipt, nil)
}

// --- Settings & Payment Handlers ---

func (h *POSHTTPHandler) PaymentRequest(c *gin.Context) {
	h.forward(c, posv1.MethodPaymentRequest, nil)
}

func (h *POSHTTPHandler) GetSettings(c *gin.Context) {
	h.forward(c, posv1.MethodGetSettings, nil)
}

func (h *POSHTTPHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	h.forward(c, posv1.MethodSetSettings, map[string]interface{}{
		"upiId": req.UPIID,
		"qrUrl": req.QRURL,
	})
}

// --- Report Handlers ---

func (h *POSHTTPHandler) MonthlyReport(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("year and month are required"))
		return
	}

	h.forward(c, posv1.MethodMonthlyReport, map[string]interface{}{
		"year":  query.Year,
		"month": query.Month,
	})
}

func (h *POSHTTPHandler) ExportMonthly(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("year, month and format (csv or xlsx) are required"))
		return
	}

	_, data, ok := h.invoke(c, posv1.MethodMonthlySales, map[string]interface{}{
		"year":  query.Year,
		"month": query.Month,
	})
	if !ok {
		return
	}

	var sales []models.Sale
	if err := remarshal(data, &sales); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Unexpected sales payload"))
		return
	}

	month := time.Month(query.Month)
	var (
		buf         bytes.Buffer
		filename    string
		contentType string
		err         error
	)
	switch query.Format {
	case "xlsx":
		filename = pos.XLSXFilename(query.Year, month)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = pos.ExportXLSX(&buf, sales)
	default:
		filename = pos.CSVFilename(query.Year, month)
		contentType = "text/csv; charset=utf-8"
		err = pos.ExportCSV(&buf, sales)
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to export sales"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func remarshal(in interface{}, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
