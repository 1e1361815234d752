package goSession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventLoginSuccess         = "login_success"
	auditEventLoginFailure         = "login_failure"
	auditEventLoginRateLimited     = "login_rate_limited"
	auditEventRefreshSuccess       = "refresh_success"
	auditEventRefreshFailure       = "refresh_failure"
	auditEventLogout               = "logout"
	auditEventHydrateCorruptState  = "hydrate_corrupt_state"
	auditEventSessionExpired       = "session_expired"
	auditEventGateDenied           = "gate_denied"
	auditEventUnauthorizedResponse = "unauthorized_response"
)

// AuditErrorCode defines a public type used by goSession APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrRateLimited        AuditErrorCode = "rate_limited"
	auditErrNetwork            AuditErrorCode = "network_unavailable"
	auditErrMalformedResponse  AuditErrorCode = "malformed_response"
	auditErrLoginFailed        AuditErrorCode = "login_failed"
	auditErrRefreshFailed      AuditErrorCode = "refresh_failed"
	auditErrCorruptState       AuditErrorCode = "corrupt_state"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (s *Store) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	username string,
	reason string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if s == nil || s.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Username:  username,
		Reason:    reason,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	s.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrNetworkUnavailable):
		return auditErrNetwork
	case errors.Is(err, ErrMalformedResponse):
		return auditErrMalformedResponse
	case errors.Is(err, ErrLoginFailed):
		return auditErrLoginFailed
	case errors.Is(err, ErrRefreshFailed):
		return auditErrRefreshFailed
	case errors.Is(err, ErrCorruptState):
		return auditErrCorruptState
	default:
		return auditErrInternal
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full. It returns zero when auditing is disabled.
func (s *Store) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}
