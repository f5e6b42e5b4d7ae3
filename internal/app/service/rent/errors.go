package rent

import "github.com/reelhouse/rental/pkg/apperr"

// Business-rule violations surfaced by the lifecycle engine. All map to
// 400 at the HTTP boundary; messages are user-safe and returned verbatim.
var (
	ErrAlreadyRented     = apperr.New(apperr.Conflict, "Movie already rented by this user.")
	ErrUserLimitReached  = apperr.New(apperr.Conflict, "User already have rented 5 movies")
	ErrOutOfStock        = apperr.New(apperr.Conflict, "Movie out of stock.")
	ErrRenewLimitReached = apperr.New(apperr.Conflict, "Rent renew limit reached.")
	ErrAlreadyReturned   = apperr.New(apperr.Conflict, "Rent already returned.")

	ErrReturnDateNotFuture = apperr.New(apperr.InvalidInput, "Return date must be in the future.")
	ErrInvalidRenewDays    = apperr.New(apperr.InvalidInput, "Renew days must be greater than zero.")
)
