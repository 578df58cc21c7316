// Package apperror defines the failure kinds surfaced by the persistence layer
// and translated to HTTP status codes at the API boundary.
package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a failure.
type Kind int

const (
	// KindInternal is any store or infrastructure fault.
	KindInternal Kind = iota
	// KindNotFound means the requested channel or video does not exist in the given scope.
	KindNotFound
	// KindAlreadyExists means a write would violate a uniqueness invariant.
	KindAlreadyExists
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	default:
		return "internal"
	}
}

// Resource names the entity a failure refers to.
type Resource string

const (
	ResourceChannel Resource = "channel"
	ResourceVideo   Resource = "video"
)

// Error is a failure with its kind and structured context.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Error struct {
	Kind      Kind
	Resource  Resource
	ID        uuid.UUID
	ChannelID uuid.UUID
	Reason    string
	Op        string
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		if e.Resource == ResourceVideo {
			return fmt.Sprintf("A YouTube video with ID: %s from a channel with ID: %s could not be found.", e.ID, e.ChannelID)
		}
		return fmt.Sprintf("A YouTube channel with ID: %s could not be found.", e.ID)
	case KindAlreadyExists:
		if e.Resource == ResourceVideo {
			return fmt.Sprintf("This video (%s) related to the channel with ID: %s already exists.", e.Reason, e.ChannelID)
		}
		return fmt.Sprintf("This channel (%s) already exists.", e.Reason)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Op, e.Err)
		}
		return e.Op
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ChannelNotFound reports a missing channel.
func ChannelNotFound(op string, channelID uuid.UUID) *Error {
	return &Error{Kind: KindNotFound, Resource: ResourceChannel, ID: channelID, Op: op}
}

// VideoNotFound reports a video missing under an existing channel.
func VideoNotFound(op string, channelID, videoID uuid.UUID) *Error {
	return &Error{Kind: KindNotFound, Resource: ResourceVideo, ID: videoID, ChannelID: channelID, Op: op}
}

// ChannelAlreadyExists reports a channel name or link collision.
func ChannelAlreadyExists(op string, cause error) *Error {
	return &Error{Kind: KindAlreadyExists, Resource: ResourceChannel, Reason: "name or link or both", Op: op, Err: cause}
}

// VideoAlreadyExists reports a video name or description collision within a channel.
func VideoAlreadyExists(op string, channelID uuid.UUID, cause error) *Error {
	return &Error{Kind: KindAlreadyExists, Resource: ResourceVideo, ChannelID: channelID, Reason: "name or description", Op: op, Err: cause}
}

// Internal wraps an unclassified failure.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsAlreadyExists reports whether err carries KindAlreadyExists.
func IsAlreadyExists(err error) bool {
	return KindOf(err) == KindAlreadyExists
}
