package grib

// RecordStore is an ordered, queryable collection of records, typically the
// decoded contents of one grid-message file. It owns its records for the
// lifetime of one remapping operation and is read-only after construction.
type RecordStore struct {
	records []*Record
}

// NewRecordStore wraps an ordered record sequence. The slice is retained, not
// copied; callers hand over ownership.
func NewRecordStore(records []*Record) *RecordStore {
	return &RecordStore{records: records}
}

// Records returns the store's records in load order.
func (s *RecordStore) Records() []*Record {
	return s.records
}

// Len returns the number of records in the store.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// Filter returns a new store retaining, in order, only the records satisfying
// every matcher. The records themselves are shared, not copied.
func (s *RecordStore) Filter(matchers Matchers) *RecordStore {
	if len(matchers) == 0 {
		return NewRecordStore(s.records)
	}
	var kept []*Record
	for _, r := range s.records {
		if matchers.Match(r) {
			kept = append(kept, r)
		}
	}
	return NewRecordStore(kept)
}
