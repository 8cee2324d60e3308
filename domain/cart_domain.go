package domain

var MessageFailedDownloadCart = "failed to download shopping list"

// ShoppingListLine is a single raw ingredient line pulled from a recipe
// in the user's shopping cart, before aggregation.
type ShoppingListLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ShoppingListItem is one aggregated group: a distinct (ingredient
// name, measurement unit) pair with the summed amount.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}
