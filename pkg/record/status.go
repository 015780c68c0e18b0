package record

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts a domain error into a gRPC status error. Status errors
// that carry no *Error pass through unchanged. The lookup server never
// sends NotFound this way; a miss travels in the reply body.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		if _, ok := status.FromError(err); ok {
			return err
		}
	}

	switch KindOf(err) {
	case KindInvalidArgument:
		return status.Error(codes.InvalidArgument, err.Error())
	case KindCanceled:
		if errors.Is(err, context.DeadlineExceeded) {
			return status.Error(codes.DeadlineExceeded, err.Error())
		}
		return status.Error(codes.Canceled, err.Error())
	case KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case KindUnavailable:
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromStatus maps a gRPC call error onto the domain taxonomy, keeping the
// original error as the cause.
func FromStatus(op string, err error) error {
	if err == nil {
		return nil
	}
	return Wrap(kindForCode(status.Code(err)), op, err)
}

func kindForCode(c codes.Code) Kind {
	switch c {
	case codes.NotFound:
		return KindNotFound
	case codes.InvalidArgument, codes.OutOfRange:
		return KindInvalidArgument
	case codes.Unavailable:
		return KindUnavailable
	case codes.Canceled, codes.DeadlineExceeded:
		return KindCanceled
	default:
		return KindInternal
	}
}
