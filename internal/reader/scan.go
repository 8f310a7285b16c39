package reader

import (
	"context"

	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/request"
	"github.com/rs/zerolog/log"
)

const defaultBatchSize = 100

// ScanOptions bound a table scan. StartRow is inclusive; an empty StopRow scans to the end.
type ScanOptions struct {
	StartRow  string
	StopRow   string
	BatchSize int
}

// Scanner iterates the rows of a table. Pagers and row data of a row are only valid while it is
// the current row: advancing or closing the scanner invalidates them.
type Scanner struct {
	table      *Table
	req        *request.DataRequest
	opts       ScanOptions
	next       string
	keys       []string
	drained    bool
	current    *RowData
	generation int
	closed     bool
	err        error
}

// Scan opens a scanner over the table.
func (t *Table) Scan(ctx context.Context, req *request.DataRequest, opts ScanOptions) (*Scanner,
	error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.BatchSize < 0 {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "batch size must not be negative")
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = defaultBatchSize
	}

	log.Debug().Str("table", t.Name()).Str("start", opts.StartRow).Msg("scan opened")
	return &Scanner{
		table: t,
		req:   req,
		opts:  opts,
		next:  opts.StartRow,
	}, nil
}

// Next advances to the next row. It returns false at the end of the scan or on error.
func (s *Scanner) Next(ctx context.Context) bool {
	if s.closed || s.err != nil {
		return false
	}
	s.generation++
	s.current = nil

	if len(s.keys) == 0 && !s.drained {
		keys, err := s.table.store.RowKeys(ctx, s.table.physical, s.next, s.opts.BatchSize)
		if err != nil {
			s.err = err
			return false
		}
		if len(keys) < s.opts.BatchSize {
			s.drained = true
		}
		if len(keys) > 0 {
			// smallest key after the last one listed
			s.next = keys[len(keys)-1] + "\x00"
		}
		s.keys = keys
	}
	if len(s.keys) == 0 {
		return false
	}

	key := s.keys[0]
	s.keys = s.keys[1:]
	if s.opts.StopRow != "" && key >= s.opts.StopRow {
		s.keys = nil
		s.drained = true
		return false
	}

	row, err := s.table.get(ctx, key, s.req, s.guard(s.generation))
	if err != nil {
		s.err = err
		return false
	}
	s.current = row
	return true
}

// Row is the current row.
func (s *Scanner) Row() *RowData {
	return s.current
}

func (s *Scanner) Err() error {
	return s.err
}

// Close ends the scan and invalidates the current row. It is idempotent.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.current = nil
	s.keys = nil
	log.Debug().Str("table", s.table.Name()).Msg("scan closed")
	return nil
}

func (s *Scanner) guard(generation int) func() error {
	return func() error {
		if s.closed {
			return litetable.NewError(litetable.ErrIllegalState, "scan of %s is closed",
				s.table.Name())
		}
		if s.generation != generation {
			return litetable.NewError(litetable.ErrIllegalState,
				"row is no longer the current row of the scan")
		}
		return nil
	}
}
