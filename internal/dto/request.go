package dto

type CreateHoldRequest struct {
	RoomType    string `json:"room_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Qty         int    `json:"qty"`
	HoldMinutes int    `json:"hold_minutes"`
}

type RoomTypeSpec struct {
	Total int     `json:"total"`
	Price float64 `json:"price"`
}

type ReplaceRoomTypesRequest struct {
	RoomTypes   map[string]RoomTypeSpec `json:"room_types"`
	ResetBooked bool                    `json:"reset_booked"`
}

type UpsertRoomTypeRequest struct {
	Name  string  `json:"name"`
	Total int     `json:"total"`
	Price float64 `json:"price"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Extra struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type BookAccommodationRequest struct {
	HotelName           string   `json:"hotel_name"`
	RoomType            string   `json:"room_type"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	Nights              int      `json:"nights"`
	Qty                 int      `json:"qty"`
	UnitPrice           float64  `json:"unit_price"`
	Extras              []Extra  `json:"extras"`
	HoldID              string   `json:"hold_id"`
	Customer            Customer `json:"customer"`
	PartnerBookingCount int      `json:"partner_booking_count"`
}

type BookFlightRequest struct {
	Airline             string   `json:"airline"`
	FlightNumber        string   `json:"flight_number"`
	Origin              string   `json:"origin"`
	Destination         string   `json:"destination"`
	DepartDate          string   `json:"depart_date"`
	Passengers          int      `json:"passengers"`
	UnitPrice           float64  `json:"unit_price"`
	Extras              []Extra  `json:"extras"`
	Customer            Customer `json:"customer"`
	PartnerBookingCount int      `json:"partner_booking_count"`
}

type BookCarRequest struct {
	PickupLocation      string   `json:"pickup_location"`
	Vehicle             string   `json:"vehicle"`
	Days                int      `json:"days"`
	UnitPrice           float64  `json:"unit_price"`
	Extras              []Extra  `json:"extras"`
	Customer            Customer `json:"customer"`
	PartnerBookingCount int      `json:"partner_booking_count"`
}

type BookingItemRequest struct {
	Product   string  `json:"product"`
	Name      string  `json:"name"`
	RoomType  string  `json:"room_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Extras    []Extra `json:"extras"`
	HoldID    string  `json:"hold_id"`
}

type CreateBookingRequest struct {
	Items               []BookingItemRequest `json:"items"`
	Customer            Customer             `json:"customer"`
	PartnerBookingCount int                  `json:"partner_booking_count"`
}

type WebhookRequest struct {
	SessionID string   `json:"session_id"`
	BookingID string   `json:"booking_id"`
	Status    string   `json:"status"`
	Amount    *float64 `json:"amount"`
}
