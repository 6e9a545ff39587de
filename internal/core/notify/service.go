package notify

import (
	"context"
	"errors"
	"fmt"
)

// ListParams filters a remote notification fetch.
type ListParams struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// ListResult is the remote response to a fetch.
type ListResult struct {
	Items []Notification `json:"items"`
}

// Service is the remote notification endpoint. It owns durability; the
// store only mirrors what it returns.
type Service interface {
	GetNotifications(ctx context.Context, params ListParams) (ListResult, error)
	AcknowledgeNotification(ctx context.Context, id string) error
}

// FailureKind separates transport failures from failures reported by the
// server.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureServer  FailureKind = "server"
)

var (
	ErrNetworkFailure = errors.New("notification service unreachable")
	ErrServerFailure  = errors.New("notification service error")
)

// ServiceError describes a failed call to the notification service. Use
// errors.Is with ErrNetworkFailure or ErrServerFailure to classify it.
type ServiceError struct {
	Kind       FailureKind
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failure (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == FailureNetwork
	case ErrServerFailure:
		return e.Kind == FailureServer
	}
	return false
}

// NetworkError wraps err as a transport failure.
func NetworkError(op string, err error) error {
	return &ServiceError{Kind: FailureNetwork, Op: op, Err: err}
}

// ServerError wraps err as a failure reported by the server.
func ServerError(op string, status int, err error) error {
	return &ServiceError{Kind: FailureServer, Op: op, StatusCode: status, Err: err}
}
