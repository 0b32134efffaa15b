package ports

import (
	"context"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// NotificationGateway is the platform notification-delivery queue. It has no
// persistent server behind it and can be wiped or reinstalled at any time, so
// callers reconcile desired state against ListPending rather than trusting
// their own bookkeeping.
//
// Add, list and remove operations are asynchronous on real platforms and may
// complete out of order; callers must not assume a request is visible in
// ListPending immediately after Add returns. The scheduling engine therefore
// always cancels before inserting.
type NotificationGateway interface {
	// Add schedules a notification request. Failures are per-request and
	// must not abort sibling requests in the same reconcile pass.
	Add(ctx context.Context, req *domain.NotificationRequest) error

	// ListPending returns every request that has not fired yet.
	ListPending(ctx context.Context) ([]*domain.NotificationRequest, error)

	// RemovePending cancels the requests with the given identifiers.
	// Unknown identifiers are ignored.
	RemovePending(ctx context.Context, identifiers []string) error

	// RemoveAllPending cancels every pending request.
	RemoveAllPending(ctx context.Context) error

	// ListDelivered returns notifications that already fired and are still
	// visible in the platform's notification list.
	ListDelivered(ctx context.Context) ([]*domain.DeliveredNotification, error)

	// RemoveDelivered clears delivered notifications from the visible list.
	RemoveDelivered(ctx context.Context, identifiers []string) error

	// RequestAuthorization asks the platform for permission to show alerts.
	// Most platforms accept requests regardless of the answer; denial just
	// means nothing ever fires.
	RequestAuthorization(ctx context.Context, opts domain.AuthorizationOptions) (bool, error)
}
