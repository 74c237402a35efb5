package vscroll

import "log/slog"

// Source tells where a cached height came from.
type Source uint8

const (
	Predicted Source = iota
	Actual
)

func (s Source) String() string {
	switch s {
	case Actual:
		return "actual"
	default:
		return "predicted"
	}
}

// HeightRecord is the cached height of one row.
type HeightRecord struct {
	Value  int
	Source Source
}

type cacheEntry struct {
	HeightRecord
	// stale counts consecutive sweeps the id was missing from the list.
	stale int
}

// HeightCache holds one HeightRecord per row id. A record only ever moves
// from Predicted to Actual; once Actual it is never overwritten.
//
// Nothing is evicted unless Sweep is called. Lookups are always scoped to
// the caller's current list, so stale records cost memory but never affect
// range or size computations.
type HeightCache struct {
	predictor HeightPredictor
	records   map[string]*cacheEntry
	log       *slog.Logger
}

// NewHeightCache returns an empty cache that fills misses from p.
func NewHeightCache(p HeightPredictor) *HeightCache {
	if p == nil {
		p = DefaultPredictor()
	}
	return &HeightCache{
		predictor: p,
		records:   make(map[string]*cacheEntry),
		log:       logger,
	}
}

// GetOrPredict returns the cached height for item, predicting and storing a
// Predicted record on a miss.
func (c *HeightCache) GetOrPredict(item Item) int {
	id := item.ID()
	if e, ok := c.records[id]; ok {
		return e.Value
	}
	h := max(c.predictor.Predict(item), 1)
	c.records[id] = &cacheEntry{HeightRecord: HeightRecord{Value: h, Source: Predicted}}
	return h
}

// RecordActual stores a measured height for id and reports whether the
// cache changed. Measurements for ids that already have an Actual record are
// ignored, as are non-positive measurements.
func (c *HeightCache) RecordActual(id string, height int) bool {
	if height <= 0 {
		c.log.Debug("ignoring non-positive measurement", "id", id, "height", height)
		return false
	}
	e, ok := c.records[id]
	if ok && e.Source == Actual {
		return false
	}
	if !ok {
		e = &cacheEntry{}
		c.records[id] = e
	} else if e.Value != height {
		c.log.Debug("prediction corrected", "id", id, "predicted", e.Value, "actual", height)
	}
	e.Value = height
	e.Source = Actual
	e.stale = 0
	return true
}

// Lookup returns the record for id without predicting.
func (c *HeightCache) Lookup(id string) (HeightRecord, bool) {
	e, ok := c.records[id]
	if !ok {
		return HeightRecord{}, false
	}
	return e.HeightRecord, true
}

// Len returns the number of cached records.
func (c *HeightCache) Len() int { return len(c.records) }

// Counts returns the number of predicted and actual records.
func (c *HeightCache) Counts() (predicted, actual int) {
	for _, e := range c.records {
		if e.Source == Actual {
			actual++
		} else {
			predicted++
		}
	}
	return predicted, actual
}

// Reset drops every record.
func (c *HeightCache) Reset() {
	c.records = make(map[string]*cacheEntry)
}

// Sweep ages records whose id is absent from items and drops those that have
// been absent for after consecutive sweeps. Ids present in items have their
// age reset. It returns the number of records dropped. after <= 0 disables
// eviction.
func (c *HeightCache) Sweep(items []Item, after int) int {
	if after <= 0 || len(c.records) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(items))
	for _, it := range items {
		present[it.ID()] = struct{}{}
	}
	dropped := 0
	for id, e := range c.records {
		if _, ok := present[id]; ok {
			e.stale = 0
			continue
		}
		e.stale++
		if e.stale >= after {
			delete(c.records, id)
			dropped++
		}
	}
	if dropped > 0 {
		c.log.Debug("evicted stale heights", "dropped", dropped, "remaining", len(c.records))
	}
	return dropped
}
