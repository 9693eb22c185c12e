package models

// Response is the JSON envelope of every API answer. Successful answers carry
// Message and/or Data, failed ones carry Error.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Dashboard is the back-office overview returned by GET /user/dashboard.
type Dashboard struct {
	Tyres           int64 `json:"tyres"`
	Reviews         int64 `json:"reviews"`
	PendingReviews  int64 `json:"pendingReviews"`
	Enquiries       int64 `json:"enquiries"`
	Subscribers     int64 `json:"subscribers"`
	Stories         int64 `json:"stories"`
	TrustedStories  int64 `json:"trustedStories"`
	Testimonials    int64 `json:"testimonials"`
	ShopByVehicle   int64 `json:"shopByVehicle"`
	GrowthRecords   int64 `json:"growth"`
	SectionsPresent int64 `json:"sections"`
}
