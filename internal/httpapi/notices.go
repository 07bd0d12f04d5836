package httpapi

import (
	"fmt"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
)

// noticeFor maps a cart mutation outcome to the user-visible message. Each
// outcome has a distinct message so the storefront can toast them apart.
func noticeFor(outcome domain.Outcome, productName string) string {
	switch outcome {
	case domain.OutcomeAdded:
		return fmt.Sprintf("%s added to cart", productName)
	case domain.OutcomeQuantityIncreased:
		return fmt.Sprintf("Quantity of %s increased", productName)
	case domain.OutcomeQuantityUpdated:
		return fmt.Sprintf("Quantity of %s updated", productName)
	case domain.OutcomeQuantityLimited:
		return "Quantity adjusted to the available stock"
	case domain.OutcomeStockExceeded:
		return "Not enough stock to add more of this product"
	case domain.OutcomeRemoved:
		return fmt.Sprintf("%s removed from cart", productName)
	case domain.OutcomeCleared:
		return "All products removed from cart"
	}
	return ""
}
