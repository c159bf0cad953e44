package models

// Requests for the read/settings HTTP endpoints.

type AlertsQuery struct {
	Category string `query:"category" json:"category"`
	Limit    int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

type SetupsQuery struct {
	Status string `query:"status" json:"status" default:"ACTIVE" validate:"oneof=ACTIVE INVALIDATED CLOSED"`
}

type AlertSettingUpdate struct {
	AlertType   string `json:"alert_type" validate:"required"`
	ShowInPanel bool   `json:"show_in_panel"`
	Importance  string `json:"importance" default:"normal" validate:"oneof=normal high"`
}

type WatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}
