package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "BOOKED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// Draft accumulates the booking parameters handed from stage to stage before
// pricing is derived. Fields are only ever added, never changed.
type Draft struct {
	AgentID     string       `json:"agentId"`
	ServiceName string       `json:"serviceName"`
	DateTime    string       `json:"dateTime,omitempty"`
	Location    LocationKind `json:"location,omitempty"`
}

// BookingData is the priced snapshot handed to the payment stage.
type BookingData struct {
	AgentID   string       `json:"agentId"`
	AgentName string       `json:"agentName"`
	Service   string       `json:"service"`
	DateTime  string       `json:"dateTime"`
	Location  LocationKind `json:"location"`
	Duration  string       `json:"duration"`
	BasePrice float64      `json:"basePrice"`
	TravelFee float64      `json:"travelFee"`
	Tax       float64      `json:"tax"`
}

// Total is the single place the payable amount is computed.
func (b BookingData) Total() float64 {
	return b.BasePrice + b.TravelFee + b.Tax
}

type Booking struct {
	ID            string
	Data          BookingData
	PaymentMethod PaymentMethod
	TransactionID string
	Amount        float64
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Review struct {
	ID        int64
	BookingID string
	AgentID   string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// StatusStep is one row of the booking progress tracker.
type StatusStep struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
