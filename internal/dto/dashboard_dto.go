package dto

import "time"

type CategoryCounts struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
}

type DashboardStats struct {
	LocalModels       CategoryCounts `json:"localModels"`
	ForeignModels     CategoryCounts `json:"foreignModels"`
	TotalBookings     int64          `json:"totalBookings"`
	PendingBookings   int64          `json:"pendingBookings"`
	ConfirmedBookings int64          `json:"confirmedBookings"`
	TotalUsers        int64          `json:"totalUsers"`
}

type StatsResponse struct {
	Success bool            `json:"success"`
	Stats   *DashboardStats `json:"stats"`
}

type Activity struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type ActivityResponse struct {
	Success    bool       `json:"success"`
	Activities []Activity `json:"activities"`
}
