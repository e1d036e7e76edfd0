package domain

// LocationKind identifies where the service takes place. The display text is
// resolved from it only when rendering.
type LocationKind string

const (
	LocationHome LocationKind = "home"
	LocationShop LocationKind = "shop"
)

func (k LocationKind) Valid() bool {
	return k == LocationHome || k == LocationShop
}

// Option returns the render data for the location, false for unknown kinds.
func (k LocationKind) Option() (LocationOption, bool) {
	for _, o := range LocationOptions {
		if o.ID == k {
			return o, true
		}
	}
	return LocationOption{}, false
}

func (k LocationKind) Title() string {
	o, _ := k.Option()
	return o.Title
}

type LocationOption struct {
	ID          LocationKind `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Price       string       `json:"price"`
}

var LocationOptions = []LocationOption{
	{
		ID:          LocationHome,
		Title:       "At Your Home",
		Description: "Agent comes to your location",
		Icon:        "🏠",
		Price:       "+$20 travel fee",
	},
	{
		ID:          LocationShop,
		Title:       "At the Shop",
		Description: "Visit the agent's location",
		Icon:        "🏪",
		Price:       "No extra fee",
	},
}

type DateOption struct {
	ID       string `json:"id"`
	Label    string `json:"date"`
	FullDate string `json:"fullDate"`
	Day      string `json:"day"`
}

var DateOptions = []DateOption{
	{ID: "1", Label: "Today", FullDate: "2024-01-15", Day: "Mon"},
	{ID: "2", Label: "Tomorrow", FullDate: "2024-01-16", Day: "Tue"},
	{ID: "3", Label: "Jan 17", FullDate: "2024-01-17", Day: "Wed"},
	{ID: "4", Label: "Jan 18", FullDate: "2024-01-18", Day: "Thu"},
	{ID: "5", Label: "Jan 19", FullDate: "2024-01-19", Day: "Fri"},
}

var TimeOptions = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodMobile
}

type PaymentOption struct {
	ID          PaymentMethod `json:"id"`
	Title       string        `json:"title"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
}

var PaymentOptions = []PaymentOption{
	{ID: PaymentMethodCard, Title: "Credit/Debit Card", Icon: "💳", Description: "Visa, Mastercard, American Express"},
	{ID: PaymentMethodMobile, Title: "Mobile Money", Icon: "📱", Description: "MTN, Orange, Moov"},
}

const CancellationPolicy = "Free cancellation up to 24 hours before your appointment. " +
	"Cancellations within 24 hours may incur a 50% fee."
