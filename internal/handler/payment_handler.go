package handler

import (
	"net/http"

	"github.com/colleco/booking-engine/internal/dto"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/payments/webhook", h.Webhook)
}

func (h *PaymentHandler) Webhook(c echo.Context) error {
	var req dto.WebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.HandleWebhook(c.Request().Context(), service.WebhookInput{
		SessionID: req.SessionID,
		BookingID: req.BookingID,
		Status:    req.Status,
		Amount:    req.Amount,
	})
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.WebhookResponse{OK: true}
	if booking != nil {
		b := dto.ToBookingResponse(booking, nil)
		resp.Booking = &b
	}
	return c.JSON(http.StatusOK, resp)
}
