package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/weiawesome/supplyfinder/pkg/greeter"
	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
)

const bufTarget = "supplier.bufnet"

type fakeLookup struct {
	pb.UnimplementedLookupServer

	mu         sync.Mutex
	requestIDs []string
}

func (f *fakeLookup) InquireRecord(ctx context.Context, req *pb.InquireRecordRequest) (*pb.InquireRecordReply, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, md.Get(pkglog.MetadataKeyRequestID)...)
		f.mu.Unlock()
	}

	switch req.GetId() {
	case 0:
		return nil, status.Error(codes.InvalidArgument, "id must be non-zero")
	case 1:
		return &pb.InquireRecordReply{Found: true, Record: &pb.Record{
			Url: "localhost:10933", Name: "Kroger", Location: "Ann Arbor, MI",
		}}, nil
	case 404:
		return nil, status.Error(codes.NotFound, "gone")
	case 500:
		return nil, status.Error(codes.Internal, "boom")
	case 999:
		<-ctx.Done()
		return nil, ctx.Err()
	default:
		return &pb.InquireRecordReply{Found: false}, nil
	}
}

func (f *fakeLookup) seenRequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

type testEnv struct {
	stub   *Stub
	lookup *fakeLookup
	dials  *atomic.Int64
}

func newTestEnv(t *testing.T, callTimeout time.Duration) *testEnv {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	lookup := &fakeLookup{}
	s := grpc.NewServer()
	pb.RegisterGreeterServer(s, greeter.NewServer())
	pb.RegisterLookupServer(s, lookup)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	dials := &atomic.Int64{}
	stub := NewStub(Options{CallTimeout: callTimeout, Logger: zerolog.Nop()},
		grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
			if addr != bufTarget {
				return nil, errors.New("connection refused")
			}
			dials.Add(1)
			return lis.DialContext(ctx)
		}),
	)
	t.Cleanup(func() { stub.Close() })

	return &testEnv{stub: stub, lookup: lookup, dials: dials}
}

func TestStub_SayHelloTo(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)

	msg, err := env.stub.SayHelloTo(context.Background(), bufTarget, "supplier")
	require.NoError(t, err)
	assert.Equal(t, "Hello supplier", msg)
}

func TestStub_SayHelloToUnavailable(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)

	msg, err := env.stub.SayHelloTo(context.Background(), "nowhere:1", "vendor")
	assert.Equal(t, RPCFailed, msg)
	assert.ErrorIs(t, err, record.ErrUnavailable)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
}

func TestStub_LookupRecord(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	ctx := context.Background()

	res, err := env.stub.LookupRecord(ctx, bufTarget, 1)
	require.NoError(t, err)
	assert.Equal(t, record.OutcomeFound, res.Outcome)
	assert.Equal(t, record.Record{ID: 1, URL: "localhost:10933", Name: "Kroger", Location: "Ann Arbor, MI"}, res.Record)

	res, err = env.stub.LookupRecord(ctx, bufTarget, 2)
	require.NoError(t, err)
	assert.Equal(t, record.OutcomeNotFound, res.Outcome)
	assert.Equal(t, record.KindNotFound, res.Kind())

	res, err = env.stub.LookupRecord(ctx, bufTarget, 404)
	require.NoError(t, err, "a NotFound status is still a miss")
	assert.Equal(t, record.OutcomeNotFound, res.Outcome)
}

func TestStub_LookupRecordFailureKinds(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	ctx := context.Background()

	tests := []struct {
		name   string
		target string
		id     uint32
		want   record.Kind
	}{
		{"invalid argument", bufTarget, 0, record.KindInvalidArgument},
		{"internal", bufTarget, 500, record.KindInternal},
		{"unavailable", "127.0.0.1:1", 1, record.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.stub.LookupRecord(ctx, tt.target, tt.id)
			require.Error(t, err)
			assert.Equal(t, record.OutcomeFailed, res.Outcome)
			assert.Equal(t, tt.want, res.Kind())
			assert.Equal(t, tt.want, record.KindOf(err))
			assert.Same(t, err, res.Err)
		})
	}
}

func TestStub_LookupRecordDeadline(t *testing.T) {
	env := newTestEnv(t, 50*time.Millisecond)

	res, err := env.stub.LookupRecord(context.Background(), bufTarget, 999)
	require.Error(t, err)
	assert.Equal(t, record.KindCanceled, res.Kind())
}

func TestStub_LookupRecordCallerCancel(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := env.stub.LookupRecord(ctx, bufTarget, 1)
	require.Error(t, err)
	assert.Equal(t, record.KindCanceled, res.Kind())
}

func TestStub_ReusesOneConnectionPerTarget(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.stub.LookupRecord(ctx, bufTarget, 1)
			assert.NoError(t, err)
			_, err = env.stub.SayHelloTo(ctx, bufTarget, "supplier")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, env.stub.pool.Len())
	assert.Equal(t, int64(1), env.dials.Load())

	a, err := env.stub.pool.Conn(ctx, bufTarget)
	require.NoError(t, err)
	b, err := env.stub.pool.Conn(ctx, bufTarget)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestStub_PropagatesRequestID(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)

	ctx := pkglog.WithRequestID(context.Background(), "req-123")
	_, err := env.stub.LookupRecord(ctx, bufTarget, 1)
	require.NoError(t, err)

	_, err = env.stub.LookupRecord(context.Background(), bufTarget, 2)
	require.NoError(t, err)

	ids := env.lookup.seenRequestIDs()
	require.Len(t, ids, 2)
	assert.Equal(t, "req-123", ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, "req-123", ids[1])
}

func TestStub_Close(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	ctx := context.Background()

	_, err := env.stub.SayHelloTo(ctx, bufTarget, "supplier")
	require.NoError(t, err)

	require.NoError(t, env.stub.Close())
	require.NoError(t, env.stub.Close())
	assert.Equal(t, 0, env.stub.pool.Len())

	msg, err := env.stub.SayHelloTo(ctx, bufTarget, "supplier")
	assert.Equal(t, RPCFailed, msg)
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.ErrorIs(t, err, record.ErrUnavailable)
}
