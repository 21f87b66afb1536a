package response

import (
	"carrental/internal/usecase/queries"
)

type BookingStatusResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

type ConfirmBookingResponse struct {
	BookingID             string `json:"bookingId"`
	Status                string `json:"status"`
	CarRegistrationNumber string `json:"carRegistrationNumber"`
}

type AdminBookingListResponse struct {
	Items []queries.AdminBookingItem `json:"items"`
	Count int                        `json:"count"`
}

type StatsResponse struct {
	From  string              `json:"from"`
	To    string              `json:"to"`
	Items []queries.TypeStats `json:"items"`
}
