package types

// RentAction is one of the two actions recorded in the rental ledger.
type RentAction string

const (
	RentActionRent  RentAction = "rent"
	RentActionRenew RentAction = "renew"
)

func (a RentAction) Valid() bool {
	return a == RentActionRent || a == RentActionRenew
}

// Verb returns the past-tense verb used in the human-readable history feed.
func (a RentAction) Verb() string {
	if a == RentActionRenew {
		return "renewed"
	}
	return "rented"
}
