package cart

import (
	"Recipebook-Backend/domain"
	"context"
	"fmt"
	"sort"
	"strings"
)

type (
	CartService interface {
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, userID string) (string, error)
	}

	cartService struct {
		cartRepository CartRepository
	}
)

func NewCartService(cartRepository CartRepository) CartService {
	return &cartService{cartRepository: cartRepository}
}

// GetShoppingList merges the cart's ingredient lines into one entry per
// distinct (name, unit) pair with the amounts summed, ordered by
// ingredient name ascending.
func (s *cartService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	lines, err := s.cartRepository.GetCartIngredientLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregateLines(lines), nil
}

func (s *cartService) DownloadShoppingList(ctx context.Context, userID string) (string, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}
	return formatShoppingList(items), nil
}

func aggregateLines(lines []domain.ShoppingListLine) []domain.ShoppingListItem {
	type key struct {
		name string
		unit string
	}

	totals := map[key]int{}
	for _, line := range lines {
		totals[key{line.Name, line.MeasurementUnit}] += line.Amount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			TotalAmount:     total,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

// formatShoppingList renders the plain-text report. The format is a
// compatibility contract with existing clients, down to the trailing
// comma on every line.
func formatShoppingList(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Список покупок:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s в количестве: %d %s,\n", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return b.String()
}
