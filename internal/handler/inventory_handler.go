package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/colleco/booking-engine/internal/dto"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	inventory service.InventoryService
	holds     service.HoldService
}

func NewInventoryHandler(inventory service.InventoryService, holds service.HoldService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, holds: holds}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/holds", h.CreateHold)
	api.DELETE("/holds/:id", h.ReleaseHold)
	api.GET("/availability", h.CheckAvailability)

	admin := api.Group("/admin")
	admin.GET("/inventory", h.GetInventory)
	admin.PUT("/room-types", h.ReplaceRoomTypes)
	admin.POST("/room-types", h.UpsertRoomType)
	admin.DELETE("/room-types/:name", h.DeleteRoomType)
}

func (h *InventoryHandler) CreateHold(c echo.Context) error {
	var req dto.CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomType == "" || req.StartDate == "" || req.EndDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_type, start_date and end_date are required")
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	hold, err := h.holds.CreateHold(c.Request().Context(), service.CreateHoldInput{
		RoomType:    req.RoomType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Qty:         req.Qty,
		HoldMinutes: req.HoldMinutes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, hold)
}

func (h *InventoryHandler) ReleaseHold(c echo.Context) error {
	if err := h.holds.ReleaseHold(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *InventoryHandler) CheckAvailability(c echo.Context) error {
	roomType := c.QueryParam("room_type")
	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")
	if roomType == "" || startDate == "" || endDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_type, start_date and end_date are required")
	}
	qty := 1
	if q := c.QueryParam("qty"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "qty must be an integer")
		}
		qty = parsed
	}

	available, err := h.inventory.CheckAvailability(c.Request().Context(), roomType, startDate, endDate, qty)
	if err != nil {
		var notAvailable *service.NotAvailableError
		if errors.As(err, &notAvailable) {
			return c.JSON(http.StatusOK, dto.AvailabilityResponse{
				OK:        false,
				Available: notAvailable.Available,
				Details:   notAvailable.Error(),
			})
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.AvailabilityResponse{OK: true, Available: available})
}

func (h *InventoryHandler) GetInventory(c echo.Context) error {
	snapshot, err := h.inventory.Snapshot(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *InventoryHandler) ReplaceRoomTypes(c echo.Context) error {
	var req dto.ReplaceRoomTypesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	specs := make(map[string]service.RoomTypeSpec, len(req.RoomTypes))
	for name, spec := range req.RoomTypes {
		specs[name] = service.RoomTypeSpec{Total: spec.Total, Price: spec.Price}
	}

	roomTypes, err := h.inventory.ReplaceRoomTypes(c.Request().Context(), specs, req.ResetBooked)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, roomTypes)
}

func (h *InventoryHandler) UpsertRoomType(c echo.Context) error {
	var req dto.UpsertRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	rt, err := h.inventory.UpsertRoomType(c.Request().Context(), req.Name, req.Total, req.Price)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rt)
}

func (h *InventoryHandler) DeleteRoomType(c echo.Context) error {
	if err := h.inventory.DeleteRoomType(c.Request().Context(), c.Param("name")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
