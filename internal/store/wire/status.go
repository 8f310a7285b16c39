package wire

import (
	"context"
	"errors"
	"strings"

	"github.com/litetable/litetable-schema/internal/litetable"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeErrors = map[codes.Code][]error{
	codes.NotFound:           {litetable.ErrTableNotFound},
	codes.AlreadyExists:      {litetable.ErrTableAlreadyExists},
	codes.InvalidArgument:    {litetable.ErrInvalidRequest, litetable.ErrInvalidLayout},
	codes.FailedPrecondition: {litetable.ErrIllegalState, litetable.ErrTableDisabled},
}

// ToStatus converts a store error into a gRPC status error.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		for c, sentinels := range codeErrors {
			for _, s := range sentinels {
				if errors.Is(err, s) {
					code = c
				}
			}
		}
	}
	return status.Error(code, err.Error())
}

// FromStatus converts a gRPC error back into the store error it was created from. Errors with
// no matching sentinel are remote store failures.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return litetable.NewError(litetable.ErrRemoteStore, "%v", err)
	}

	msg := st.Message()
	sentinels, ok := codeErrors[st.Code()]
	if !ok {
		return litetable.NewError(litetable.ErrRemoteStore, "%s: %s", st.Code(), msg)
	}

	for _, s := range sentinels {
		if prefix := s.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return litetable.NewError(s, "%s", strings.TrimPrefix(msg, prefix))
		}
		if msg == s.Error() {
			return s
		}
	}
	return litetable.NewError(sentinels[0], "%s", msg)
}
