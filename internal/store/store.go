package store

import (
	"context"
	"sync"
	"time"

	"yoyboard/domain/core"
	"yoyboard/domain/expenditure"
	"yoyboard/internal"
	"yoyboard/internal/errors"

	"golang.org/x/sync/singleflight"
)

// ParseFunc turns raw workbook bytes into the wide table plus the workbook's
// sheet list. The store stays ignorant of the file format behind it.
type ParseFunc func(ctx context.Context, content []byte) (*expenditure.WideTable, []string, error)

// Dataset is one parsed upload held in memory for the session. Wide and Long
// are recomputed fresh on ingest and treated as read-only afterwards.
type Dataset struct {
	ID        core.DatasetID
	Hash      core.DatasetHash
	Filename  string
	Source    string // "upload" or "sample"
	Sheets    []string
	Wide      *expenditure.WideTable
	Long      *expenditure.LongTable
	CreatedAt time.Time
}

// DatasetStore memoizes parsed workbooks by content hash so that UI-only
// changes (switching chart type, adjusting the country filter) never re-parse
// the uploaded file. The memoization is an optimization with no correctness
// weight: dropping an entry only costs a re-parse on the next upload.
type DatasetStore struct {
	parse ParseFunc

	mu     sync.RWMutex
	byID   map[core.DatasetID]*Dataset
	byHash map[core.DatasetHash]core.DatasetID

	group singleflight.Group
}

// NewDatasetStore creates a dataset store around the given parser
func NewDatasetStore(parse ParseFunc) *DatasetStore {
	return &DatasetStore{
		parse:  parse,
		byID:   make(map[core.DatasetID]*Dataset),
		byHash: make(map[core.DatasetHash]core.DatasetID),
	}
}

// Ingest parses workbook bytes into a dataset, reusing the previous parse when
// the same content was seen before. Concurrent uploads of identical bytes
// collapse into a single parse.
func (s *DatasetStore) Ingest(ctx context.Context, content []byte, filename, source string) (*Dataset, error) {
	hash := core.NewDatasetHash(content)

	if ds := s.getByHash(hash); ds != nil {
		internal.DefaultLogger.Debug("Dataset cache hit for %s (%s)", filename, ds.ID)
		return ds, nil
	}

	v, err, _ := s.group.Do(hash.String(), func() (interface{}, error) {
		// Re-check under the flight: a racing call may have stored it.
		if ds := s.getByHash(hash); ds != nil {
			return ds, nil
		}

		wide, sheets, err := s.parse(ctx, content)
		if err != nil {
			return nil, err
		}
		long, err := expenditure.Melt(wide)
		if err != nil {
			return nil, err
		}

		ds := &Dataset{
			ID:        core.DatasetID(core.NewID()),
			Hash:      hash,
			Filename:  filename,
			Source:    source,
			Sheets:    sheets,
			Wide:      wide,
			Long:      long,
			CreatedAt: time.Now(),
		}

		s.mu.Lock()
		s.byID[ds.ID] = ds
		s.byHash[hash] = ds.ID
		s.mu.Unlock()

		internal.DefaultLogger.Info("Ingested %s dataset %s (%d countries, %d year columns)",
			source, filename, wide.RowCount(), wide.YearCount())

		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Get returns a dataset by ID
func (s *DatasetStore) Get(id core.DatasetID) (*Dataset, error) {
	s.mu.RLock()
	ds, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("dataset")
	}
	return ds, nil
}

// Len returns the number of datasets currently held
func (s *DatasetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *DatasetStore) getByHash(hash core.DatasetHash) *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byHash[hash]; ok {
		return s.byID[id]
	}
	return nil
}
