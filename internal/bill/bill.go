package bill

// Status values assigned by the remote store. The submission path only
// ever proposes StatusPending; the other two are set remotely and
// observed on the next list fetch.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// Route tokens understood by the navigation collaborator.
const (
	RouteBills   = "#employee/bills"
	RouteNewBill = "#employee/bill/new"
)

// Categories is the closed expense-category vocabulary. The labels are
// user-facing and must match the remote store verbatim.
var Categories = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// ValidCategory reports whether typ is one of the known expense categories.
func ValidCategory(typ string) bool {
	for _, c := range Categories {
		if c == typ {
			return true
		}
	}
	return false
}

// Bill represents one expense record. Date is kept raw (YYYY-MM-DD) and
// formatted only at display time. ID is assigned by the store on
// creation and absent on an in-memory draft.
type Bill struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	Date       string `json:"date"`
	VAT        string `json:"vat"`
	Pct        int    `json:"pct"`
	Commentary string `json:"commentary"`
	FileURL    string `json:"fileUrl"`
	FileName   string `json:"fileName"`
	Status     string `json:"status,omitempty"`
}
