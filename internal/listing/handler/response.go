package handler

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CalibersResponse struct {
	Calibers []string `json:"calibers"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	Listings       int    `json:"listings"`
	CatalogVersion string `json:"catalog_version"`
}
