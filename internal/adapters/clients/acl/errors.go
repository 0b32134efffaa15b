package acl

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsamuelsen/growdaily/internal/adapters/clients"
	"github.com/jsamuelsen/growdaily/internal/domain"
)

// mapClientError translates client-level errors to domain errors.
func (c *NotifierClient) mapClientError(err error, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(c.serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(c.serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(c.serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapStatusCode translates HTTP status codes to domain errors.
func mapStatusCode(status int, serviceName, operation, entityID string) error {
	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, entityID)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", fmt.Sprintf("%s rejected by notifier", operation))

	case http.StatusForbidden, http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "rejected by notifier")

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed with status %d", operation, status))
	}
}
