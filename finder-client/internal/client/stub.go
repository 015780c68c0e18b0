package client

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
)

// RPCFailed is the greeting returned alongside an error from SayHelloTo.
const RPCFailed = "RPC failed"

// Options configures a Stub.
type Options struct {
	DialTimeout time.Duration
	CallTimeout time.Duration
	Logger      zerolog.Logger
}

// Stub issues Greet and InquireRecord calls against any number of targets,
// reusing one connection per target for its whole lifetime.
type Stub struct {
	pool        *ConnPool
	callTimeout time.Duration
}

// NewStub creates a stub. Extra dial options are passed to every dial.
func NewStub(opts Options, dialOpts ...grpc.DialOption) *Stub {
	dialOpts = append([]grpc.DialOption{
		grpc.WithChainUnaryInterceptor(log.UnaryClientInterceptor(opts.Logger)),
	}, dialOpts...)

	return &Stub{
		pool:        NewConnPool(opts.DialTimeout, dialOpts...),
		callTimeout: opts.CallTimeout,
	}
}

// SayHelloTo greets name on target. On failure it returns RPCFailed and an
// error whose kind callers can inspect with record.KindOf or errors.Is.
func (s *Stub) SayHelloTo(ctx context.Context, target, name string) (string, error) {
	entry, err := s.pool.get(ctx, target)
	if err != nil {
		return RPCFailed, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := entry.greeter.Greet(ctx, &pb.GreetRequest{Name: name})
	if err != nil {
		return RPCFailed, record.FromStatus("say hello to "+target, err)
	}
	return resp.GetMessage(), nil
}

// LookupRecord asks target for id. A miss is a NotFound result with a nil
// error; any failure comes back both as a Failed result and as the error.
func (s *Stub) LookupRecord(ctx context.Context, target string, id uint32) (record.Result, error) {
	entry, err := s.pool.get(ctx, target)
	if err != nil {
		return record.Failed(err), err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := entry.lookup.InquireRecord(ctx, &pb.InquireRecordRequest{Id: id})
	if err != nil {
		err = record.FromStatus("lookup record on "+target, err)
		if record.KindOf(err) == record.KindNotFound {
			return record.NotFound(), nil
		}
		return record.Failed(err), err
	}
	if !resp.GetFound() {
		return record.NotFound(), nil
	}

	rec := resp.GetRecord()
	return record.Found(record.Record{
		ID:       id,
		URL:      rec.GetUrl(),
		Name:     rec.GetName(),
		Location: rec.GetLocation(),
	}), nil
}

// Close releases every connection held by the stub.
func (s *Stub) Close() error {
	return s.pool.Close()
}

func (s *Stub) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}
