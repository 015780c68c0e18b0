package supplyfinder

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// CodecName is the content-subtype clients send ("application/grpc+json").
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("supplyfinder: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("supplyfinder: unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return CodecName
}

// decodeError reports a request body that does not fit its message as
// InvalidArgument; grpc would otherwise answer Internal.
func decodeError(err error) error {
	if s, ok := status.FromError(err); ok && s.Code() != codes.Internal && s.Code() != codes.Unknown {
		return err
	}
	return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
