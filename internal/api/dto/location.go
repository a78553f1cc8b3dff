package dto

type LocationResponse struct {
	LocationID   int     `json:"location_id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Locality     string  `json:"locality"`
	PackageCount int     `json:"package_count"`
	IsDepot      bool    `json:"is_depot"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

type LocalityCountResponse struct {
	Locality      string `json:"locality"`
	Stops         int    `json:"stops"`
	TotalPackages int    `json:"total_packages"`
}

type LocalitySummaryResponse struct {
	Localities []LocalityCountResponse `json:"localities"`
}
