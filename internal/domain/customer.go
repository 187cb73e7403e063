package domain

// CustomerInfo is the shipping/contact block embedded in an order. It is
// owned by its order and has no independent lifecycle.
type CustomerInfo struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
