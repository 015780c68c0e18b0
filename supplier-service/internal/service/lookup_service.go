package service

import (
	"context"
	"errors"

	"github.com/weiawesome/supplyfinder/pkg/greeter"
	"github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/registry"
)

// lookupServiceImpl implements LookupService.
type lookupServiceImpl struct {
	registry *registry.Registry
}

// NewLookupService creates a lookup service that owns reg.
func NewLookupService(reg *registry.Registry) LookupService {
	return &lookupServiceImpl{registry: reg}
}

func (s *lookupServiceImpl) Greet(ctx context.Context, name string) string {
	return greeter.Greet(name)
}

// InquireRecord looks id up. A miss is a Reply with Found false and a nil
// error; errors are reserved for bad input, cancellation and faults.
func (s *lookupServiceImpl) InquireRecord(ctx context.Context, id uint32) (record.Reply, error) {
	if id == 0 {
		return record.Reply{}, record.Errorf(record.KindInvalidArgument, "inquire record", "id must be non-zero")
	}
	if err := ctx.Err(); err != nil {
		return record.Reply{}, record.Wrap(record.KindCanceled, "inquire record", err)
	}

	rec, err := s.registry.Get(id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			l := log.Ctx(ctx)
			l.Debug().Uint32(log.FieldRecordID, id).Msg("record not found")
			return record.Reply{Found: false}, nil
		}
		return record.Reply{}, record.Wrap(record.KindInternal, "inquire record", err)
	}

	return record.Reply{Found: true, Record: rec}, nil
}

func (s *lookupServiceImpl) UpsertRecord(ctx context.Context, rec record.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return record.Wrap(record.KindCanceled, "upsert record", err)
	}

	s.registry.Insert(rec)

	l := log.Ctx(ctx)
	l.Info().Uint32(log.FieldRecordID, rec.ID).Str("name", rec.Name).Msg("record upserted")
	return nil
}

func (s *lookupServiceImpl) Records(ctx context.Context) []record.Record {
	return s.registry.List()
}

func (s *lookupServiceImpl) RecordCount() int {
	return s.registry.Len()
}
