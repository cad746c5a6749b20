package booking

import "github.com/latinbarber/booking-api/internal/httperr"

// storeFailure wraps a transient persistence error as the one retryable
// outcome, carrying the underlying message.
func storeFailure(err error) error {
	return httperr.ErrBusiness(httperr.CodeStoreUnavailable, err.Error())
}
