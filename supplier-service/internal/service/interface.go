package service

import (
	"context"

	"github.com/weiawesome/supplyfinder/pkg/record"
)

// LookupService answers greeting and record queries over a registry.
type LookupService interface {
	Greet(ctx context.Context, name string) string
	InquireRecord(ctx context.Context, id uint32) (record.Reply, error)
	UpsertRecord(ctx context.Context, rec record.Record) error
	Records(ctx context.Context) []record.Record
	RecordCount() int
}
