package handler

import (
	"net/http"

	"github.com/colleco/booking-engine/internal/dto"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("/accommodation", h.BookAccommodation)
	bookings.POST("/flight", h.BookFlight)
	bookings.POST("/car", h.BookCar)
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) BookAccommodation(c echo.Context) error {
	var req dto.BookAccommodationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.BookAccommodation(c.Request().Context(), service.AccommodationInput{
		HotelName:           req.HotelName,
		RoomType:            req.RoomType,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Nights:              req.Nights,
		Qty:                 req.Qty,
		UnitPrice:           req.UnitPrice,
		Extras:              toExtras(req.Extras),
		HoldID:              req.HoldID,
		Customer:            toCustomer(req.Customer),
		PartnerBookingCount: req.PartnerBookingCount,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result.Booking, result.Session))
}

func (h *BookingHandler) BookFlight(c echo.Context) error {
	var req dto.BookFlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.BookFlight(c.Request().Context(), service.FlightInput{
		Airline:             req.Airline,
		FlightNumber:        req.FlightNumber,
		Origin:              req.Origin,
		Destination:         req.Destination,
		DepartDate:          req.DepartDate,
		Passengers:          req.Passengers,
		UnitPrice:           req.UnitPrice,
		Extras:              toExtras(req.Extras),
		Customer:            toCustomer(req.Customer),
		PartnerBookingCount: req.PartnerBookingCount,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result.Booking, result.Session))
}

func (h *BookingHandler) BookCar(c echo.Context) error {
	var req dto.BookCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.BookCar(c.Request().Context(), service.CarInput{
		PickupLocation:      req.PickupLocation,
		Vehicle:             req.Vehicle,
		Days:                req.Days,
		UnitPrice:           req.UnitPrice,
		Extras:              toExtras(req.Extras),
		Customer:            toCustomer(req.Customer),
		PartnerBookingCount: req.PartnerBookingCount,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result.Booking, result.Session))
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	items := make([]service.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ItemInput{
			Product:   models.ProductType(item.Product),
			Name:      item.Name,
			RoomType:  item.RoomType,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Extras:    toExtras(item.Extras),
			HoldID:    item.HoldID,
		}
	}

	result, err := h.svc.CreateBooking(c.Request().Context(), service.MultiItemInput{
		Items:               items,
		Customer:            toCustomer(req.Customer),
		PartnerBookingCount: req.PartnerBookingCount,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result.Booking, result.Session))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func toCustomer(c dto.Customer) models.Customer {
	return models.Customer{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func toExtras(extras []dto.Extra) []service.Extra {
	if len(extras) == 0 {
		return nil
	}
	out := make([]service.Extra, len(extras))
	for i, e := range extras {
		out[i] = service.Extra{Name: e.Name, Price: e.Price}
	}
	return out
}
