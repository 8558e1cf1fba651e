package bill

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Previewer displays a receipt image to the employee.
type Previewer interface {
	ShowReceipt(fileURL string)
}

// BillView is a Bill decorated with display fields. The raw date and
// status are preserved alongside the formatted ones; sorting must use
// the raw date, since a malformed formatted string would not compare
// correctly.
type BillView struct {
	Bill
	FormattedDate   string
	FormattedStatus string
}

// ListingService fetches bills from the store and prepares them for
// display.
type ListingService struct {
	store     Store
	previewer Previewer
}

// NewListingService creates a ListingService. Both collaborators may be
// nil: a nil store makes GetBills a no-op, a nil previewer makes
// PreviewReceipt a no-op.
func NewListingService(store Store, previewer Previewer) *ListingService {
	return &ListingService{
		store:     store,
		previewer: previewer,
	}
}

// GetBills fetches every bill, attaches formatted display fields and
// sorts the result from most recent to least recent. Each call
// re-fetches; nothing is cached. A record whose date does not format
// keeps its raw date string rather than aborting the batch.
func (s *ListingService) GetBills(ctx context.Context) ([]BillView, error) {
	if s.store == nil {
		return nil, nil
	}

	raw, err := s.store.Bills().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	views := make([]BillView, 0, len(raw))
	for _, b := range raw {
		formatted := FormatDate(b.Date)
		if formatted == b.Date && b.Date != "" {
			// Raw passthrough means the stored date did not parse.
			slog.Debug("bill date did not format, keeping raw value", "id", b.ID, "date", b.Date)
		}
		views = append(views, BillView{
			Bill:            b,
			FormattedDate:   formatted,
			FormattedStatus: FormatStatus(b.Status),
		})
	}

	// Most recent first; ties keep store order.
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})

	return views, nil
}

// PreviewReceipt asks the view to display the receipt behind fileURL.
// Pure pass-through, no state.
func (s *ListingService) PreviewReceipt(fileURL string) {
	if s.previewer == nil {
		return
	}
	s.previewer.ShowReceipt(fileURL)
}
