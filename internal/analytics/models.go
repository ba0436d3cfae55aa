package analytics

// Statistics is the admin dashboard summary.
type Statistics struct {
	TotalEvents     int64 `json:"totalEvents"`
	EventsThisMonth int64 `json:"eventsThisMonth"`
	TotalCities     int64 `json:"totalCities"`
	TotalCustomers  int64 `json:"totalCustomers"`
}
