package service

import (
	"context"
	"errors"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// withAuthRetry runs an authorized boundary call. When the boundary rejects
// the access token (401), exactly one refresh is attempted and the call is
// retried with the new token; a failed refresh surfaces as
// domain.ErrSessionExpired. The session is updated in place on refresh so
// the caller keeps working with live tokens.
func withAuthRetry[T any](
	ctx context.Context,
	sessions ports.SessionService,
	session *domain.Session,
	call func(accessToken string) (T, error),
) (T, error) {
	result, err := call(session.AccessToken)
	if err == nil || !errors.Is(err, domain.ErrSessionExpired) {
		return result, err
	}

	refreshed, refreshErr := sessions.Refresh(ctx, session.ID)
	if refreshErr != nil {
		var zero T
		if errors.Is(refreshErr, domain.ErrUnavailable) {
			return zero, refreshErr
		}
		return zero, domain.ErrSessionExpired
	}
	*session = *refreshed

	return call(session.AccessToken)
}
