package response

import (
	"carrental/internal/domain/cartype"
)

type CarTypeResponse struct {
	TypeID           string         `json:"typeId"`
	DisplayName      string         `json:"displayName"`
	Description      string         `json:"description,omitempty"`
	PricePerDayCents int64          `json:"pricePerDayCents"`
	Currency         string         `json:"currency"`
	TotalQuantity    int            `json:"totalQuantity"`
	PhotoURL         string         `json:"photoUrl,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// CarTypeDetailResponse adds window-scoped availability when the caller
// supplied a from/to pair.
type CarTypeDetailResponse struct {
	CarTypeResponse
	Available           *int   `json:"available,omitempty"`
	EstimatedTotalCents *int64 `json:"estimatedTotal,omitempty"`
}

type CarSearchItem struct {
	CarTypeResponse
	Available           int   `json:"available"`
	EstimatedTotalCents int64 `json:"estimatedTotal"`
}

type CarSearchResponse struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Items []CarSearchItem `json:"items"`
}

func CarTypeFromDomain(ct *cartype.CarType) CarTypeResponse {
	return CarTypeResponse{
		TypeID:           ct.ID(),
		DisplayName:      ct.DisplayName(),
		Description:      ct.Description(),
		PricePerDayCents: ct.PricePerDayCents(),
		Currency:         ct.Currency(),
		TotalQuantity:    ct.TotalQuantity(),
		PhotoURL:         ct.PhotoURL(),
		Metadata:         ct.Metadata(),
	}
}
