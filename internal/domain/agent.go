package domain

// Agent is a service provider as supplied by the catalog.
type Agent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Service      string   `json:"service"`
	BasePrice    float64  `json:"basePrice"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews"`
	Description  string   `json:"description"`
	Services     []string `json:"services"`
	Availability string   `json:"availability"`
	Location     string   `json:"location"`
}
