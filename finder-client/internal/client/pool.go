package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
)

const defaultDialTimeout = 20 * time.Second

// ErrPoolClosed is returned for calls made after Close.
var ErrPoolClosed = errors.New("connection pool closed")

type connEntry struct {
	conn    *grpc.ClientConn
	greeter pb.GreeterClient
	lookup  pb.LookupClient
}

// ConnPool keeps one long-lived *grpc.ClientConn per target. Connections
// are never re-dialed per call; grpc reconnects them in the background.
type ConnPool struct {
	mu     sync.RWMutex
	conns  map[string]*connEntry
	closed bool

	dialGroup singleflight.Group
	dialOpts  []grpc.DialOption
}

// NewConnPool creates a pool. dialTimeout bounds each connection attempt;
// extra options are appended after the defaults.
func NewConnPool(dialTimeout time.Duration, opts ...grpc.DialOption) *ConnPool {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff:           backoff.DefaultConfig,
			MinConnectTimeout: dialTimeout,
		}),
	}

	return &ConnPool{
		conns:    make(map[string]*connEntry),
		dialOpts: append(base, opts...),
	}
}

// Conn returns the connection for target, dialing it on first use.
func (p *ConnPool) Conn(ctx context.Context, target string) (*grpc.ClientConn, error) {
	entry, err := p.get(ctx, target)
	if err != nil {
		return nil, err
	}
	return entry.conn, nil
}

// Len returns the number of open connections.
func (p *ConnPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns)
}

func (p *ConnPool) get(ctx context.Context, target string) (*connEntry, error) {
	p.mu.RLock()
	entry, ok := p.conns[target]
	closed := p.closed
	p.mu.RUnlock()

	if closed {
		return nil, record.Wrap(record.KindUnavailable, "dial "+target, ErrPoolClosed)
	}
	if ok {
		return entry, nil
	}

	// Concurrent first calls for the same target share one dial.
	v, err, _ := p.dialGroup.Do(target, func() (interface{}, error) {
		p.mu.RLock()
		existing, ok := p.conns[target]
		p.mu.RUnlock()
		if ok {
			return existing, nil
		}
		return p.dial(ctx, target)
	})
	if err != nil {
		return nil, err
	}
	return v.(*connEntry), nil
}

// dial is non-blocking and shared by every waiter in the singleflight, so it
// must not fail because the first caller gave up.
func (p *ConnPool) dial(ctx context.Context, target string) (*connEntry, error) {
	conn, err := grpc.DialContext(context.WithoutCancel(ctx), target, p.dialOpts...)
	if err != nil {
		return nil, record.Wrap(record.KindUnavailable, "dial "+target, err)
	}

	entry := &connEntry{
		conn:    conn,
		greeter: pb.NewGreeterClient(conn),
		lookup:  pb.NewLookupClient(conn),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	l := log.Ctx(ctx)
	if p.closed {
		// Close ran while this dial was in flight.
		closeErr := conn.Close()
		l.Debug().Err(closeErr).Str(log.FieldTarget, target).Msg("discarding connection dialed after close")
		return nil, record.Wrap(record.KindUnavailable, "dial "+target, ErrPoolClosed)
	}
	p.conns[target] = entry

	l.Debug().Str(log.FieldTarget, target).Msg("grpc connection opened")
	return entry, nil
}

// Close closes every connection. Later calls fail with ErrPoolClosed.
func (p *ConnPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for target, entry := range p.conns {
		if err := entry.conn.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(p.conns, target)
	}
	return errors.Join(errs...)
}
