package http

import (
	"net/http"
	"time"

	"nlivrilik/internal/core/application/usecases/queries"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the request validator used by the server.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type createOrderRequest struct {
	CustomerName   string  `json:"customer_name" validate:"required,max=255"`
	CustomerEmail  string  `json:"customer_email" validate:"required,email"`
	CustomerPhone  string  `json:"customer_phone" validate:"required,max=32"`
	Address        string  `json:"address" validate:"required,max=512"`
	Longitude      float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude       float64 `json:"latitude" validate:"min=-90,max=90"`
	AdditionalInfo string  `json:"additional_info" validate:"max=512"`
	Content        string  `json:"content" validate:"required,max=2048"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"max=512"`
}

type completeDeliveryRequest struct {
	Subtotal      int64  `json:"subtotal" validate:"min=0"`
	DeliveryFee   int64  `json:"delivery_fee" validate:"min=0"`
	Total         *int64 `json:"total,omitempty"`
	PaymentMethod string `json:"payment_method" validate:"max=32"`
	IsPaid        bool   `json:"is_paid"`
	Notes         string `json:"notes" validate:"max=512"`
}

type submitRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

type setAvailabilityRequest struct {
	Available bool `json:"available"`
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN USER DELIVERY_MAN"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type historyEntryResponse struct {
	Status    order.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Note      string       `json:"note,omitempty"`
}

type financialsResponse struct {
	Subtotal      int64  `json:"subtotal"`
	DeliveryFee   int64  `json:"delivery_fee"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"payment_method"`
	IsPaid        bool   `json:"is_paid"`
}

type orderResponse struct {
	ID                    string                 `json:"id"`
	Status                order.Status           `json:"status"`
	CustomerName          string                 `json:"customer_name"`
	CustomerEmail         string                 `json:"customer_email"`
	CustomerPhone         string                 `json:"customer_phone"`
	Address               string                 `json:"address"`
	AdditionalInfo        string                 `json:"additional_info,omitempty"`
	Longitude             float64                `json:"longitude"`
	Latitude              float64                `json:"latitude"`
	Content               string                 `json:"content"`
	History               []historyEntryResponse `json:"history"`
	Financials            *financialsResponse    `json:"financials,omitempty"`
	CourierID             *string                `json:"courier_id,omitempty"`
	EstimatedDeliveryTime *time.Time             `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time             `json:"actual_delivery_time,omitempty"`
	DeliveryNotes         string                 `json:"delivery_notes,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type orderSummaryResponse struct {
	ID                    string       `json:"id"`
	Status                order.Status `json:"status"`
	CustomerName          string       `json:"customer_name"`
	Address               string       `json:"address"`
	Content               string       `json:"content"`
	CourierID             *string      `json:"courier_id,omitempty"`
	EstimatedDeliveryTime *time.Time   `json:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
}

type activeDeliveryResponse struct {
	OrderID               string       `json:"order_id"`
	Status                order.Status `json:"status"`
	CustomerName          string       `json:"customer_name"`
	CustomerPhone         string       `json:"customer_phone"`
	Address               string       `json:"address"`
	Content               string       `json:"content"`
	EstimatedDeliveryTime *time.Time   `json:"estimated_delivery_time,omitempty"`
}

type courierResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	CompletedDeliveries int    `json:"completed_deliveries"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	CourierID string    `json:"courier_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ratingSummaryResponse struct {
	CourierID string      `json:"courier_id"`
	Average   float64     `json:"average"`
	Count     int         `json:"count"`
	Histogram map[int]int `json:"histogram"`
}

func toOrderResponse(r queries.GetOrderByIDQueryResponse) orderResponse {
	response := orderResponse{
		ID:                    r.ID.String(),
		Status:                r.Status,
		CustomerName:          r.CustomerName,
		CustomerEmail:         r.CustomerEmail,
		CustomerPhone:         r.CustomerPhone,
		Address:               r.AddressFormatted,
		AdditionalInfo:        r.AddressAdditionalInfo,
		Longitude:             r.Longitude,
		Latitude:              r.Latitude,
		Content:               r.Content,
		History:               make([]historyEntryResponse, 0, len(r.History)),
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		ActualDeliveryTime:    r.ActualDeliveryTime,
		DeliveryNotes:         r.DeliveryNotes,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}

	for _, entry := range r.History {
		response.History = append(response.History, historyEntryResponse{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		})
	}

	if r.Financials != nil {
		response.Financials = &financialsResponse{
			Subtotal:      int64(r.Financials.Subtotal),
			DeliveryFee:   int64(r.Financials.DeliveryFee),
			Total:         int64(r.Financials.Total),
			PaymentMethod: r.Financials.PaymentMethod,
			IsPaid:        r.Financials.IsPaid,
		}
	}

	if r.CourierID != nil {
		courierID := r.CourierID.String()
		response.CourierID = &courierID
	}

	return response
}

func toOrderSummaryResponse(r queries.GetOrdersByStatusQueryResponse) orderSummaryResponse {
	response := orderSummaryResponse{
		ID:                    r.ID.String(),
		Status:                r.Status,
		CustomerName:          r.CustomerName,
		Address:               r.AddressFormatted,
		Content:               r.Content,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		CreatedAt:             r.CreatedAt,
	}
	if r.CourierID != nil {
		courierID := r.CourierID.String()
		response.CourierID = &courierID
	}
	return response
}

func toActiveDeliveryResponse(r queries.GetActiveDeliveriesQueryResponse) activeDeliveryResponse {
	return activeDeliveryResponse{
		OrderID:               r.OrderID.String(),
		Status:                r.Status,
		CustomerName:          r.CustomerName,
		CustomerPhone:         r.CustomerPhone,
		Address:               r.AddressFormatted,
		Content:               r.Content,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
	}
}

// pathUUID parses a UUID path parameter. On failure it writes the 400
// response and reports ok=false.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, bool, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, false, ctx.JSON(http.StatusBadRequest,
			newErrorResponse(http.StatusBadRequest, "invalid "+name+" parameter"))
	}
	return id, true, nil
}

// bindAndValidate decodes the JSON body and runs struct validation. On
// failure it writes the 400 response and reports ok=false.
func bindAndValidate(ctx echo.Context, request interface{}) (bool, error) {
	if err := ctx.Bind(request); err != nil {
		return false, ctx.JSON(http.StatusBadRequest,
			newErrorResponse(http.StatusBadRequest, "invalid request body"))
	}
	if err := ctx.Validate(request); err != nil {
		return false, ctx.JSON(http.StatusBadRequest,
			newErrorResponse(http.StatusBadRequest, "validation failed: "+err.Error()))
	}
	return true, nil
}
