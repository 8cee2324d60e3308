package domain

import "errors"

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)

// SubscriptionResponse is an author together with a truncated list of
// their recipes. RecipesCount always reflects the true total, even when
// Recipes is cut down by a recipes_limit parameter.
type SubscriptionResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}
