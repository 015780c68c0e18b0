package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/supplyfinder/finder-client/internal/client"
	"github.com/weiawesome/supplyfinder/finder-client/internal/config"
	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if ue, ok := config.IsUsage(err); ok {
			fmt.Println(ue.Message)
			return
		}
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "finder-client",
	})
	logger := pkglog.L()
	logger.Debug().Str("config", cfg.String()).Msg("starting finder-client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stub := client.NewStub(client.Options{
		DialTimeout: cfg.Client.DialTimeout,
		CallTimeout: cfg.Client.CallTimeout,
		Logger:      logger,
	})
	defer stub.Close()

	replies, results := collect(ctx, stub, cfg)

	for _, reply := range replies {
		fmt.Printf("Greeter received: %s\n", reply)
	}
	for i, res := range results {
		id := cfg.Lookup.IDs[i]
		if res.Outcome == record.OutcomeFailed {
			logger.Warn().Err(res.Err).Uint32(pkglog.FieldRecordID, id).Stringer("kind", res.Kind()).Msg("lookup failed")
		}
		switch res.Outcome {
		case record.OutcomeFound:
			fmt.Printf("Vendor %d: %s at %s (%s)\n", id, res.Record.Name, res.Record.URL, res.Record.Location)
		case record.OutcomeNotFound:
			fmt.Printf("Vendor %d: not found\n", id)
		default:
			fmt.Printf("Vendor %d: lookup failed (%s): %v\n", id, res.Kind(), res.Err)
		}
	}
}

// collect greets both endpoints and looks up every configured id
// concurrently. Each call reports into its own slot: a failed greeting
// leaves RPCFailed, a failed lookup a Failed result. The goroutines never
// return an error, so one unreachable endpoint does not cancel the rest;
// only the caller's ctx does.
func collect(ctx context.Context, stub *client.Stub, cfg *config.Config) ([]string, []record.Result) {
	greetings := []config.EndpointConfig{cfg.Supplier, cfg.Vendor}
	replies := make([]string, len(greetings))
	results := make([]record.Result, len(cfg.Lookup.IDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ep := range greetings {
		i, ep := i, ep
		g.Go(func() error {
			replies[i], _ = stub.SayHelloTo(gctx, ep.Target, ep.Name)
			return nil
		})
	}
	for i, id := range cfg.Lookup.IDs {
		i, id := i, id
		g.Go(func() error {
			results[i], _ = stub.LookupRecord(gctx, cfg.Supplier.Target, id)
			return nil
		})
	}
	g.Wait()

	return replies, results
}
