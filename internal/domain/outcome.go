package domain

// Outcome is the discriminated result of a cart mutation. The presentation
// layer maps each outcome to a user-visible notification.
type Outcome string

const (
	OutcomeAdded             Outcome = "ADDED"
	OutcomeQuantityIncreased Outcome = "QUANTITY_INCREASED"
	OutcomeQuantityUpdated   Outcome = "QUANTITY_UPDATED"
	OutcomeQuantityLimited   Outcome = "QUANTITY_LIMITED"
	OutcomeStockExceeded     Outcome = "STOCK_EXCEEDED"
	OutcomeRemoved           Outcome = "REMOVED"
	OutcomeCleared           Outcome = "CLEARED"
	OutcomeUnchanged         Outcome = "UNCHANGED"
)

// String representation (for logging)
func (o Outcome) String() string {
	return string(o)
}
