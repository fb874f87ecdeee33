package fortune

import (
	"github.com/roach88/tianshu/internal/canon"
)

// Fingerprint returns a stable content hash of a record. Two computations
// of the same date produce the same fingerprint; a change to any table that
// affects the record changes it.
func Fingerprint(r ScoreRecord) (string, error) {
	return canon.Hash(canon.DomainReading, fingerprintObject(r))
}

func fingerprintObject(r ScoreRecord) canon.Object {
	effective := make(canon.Array, 0, len(r.Palace.All()))
	for _, a := range r.Palace.All() {
		effective = append(effective, a.String())
	}
	hits := make(canon.Array, 0, len(r.Hits))
	for _, h := range r.Hits {
		hits = append(hits, canon.Object{
			"slot": h.Slot.Name(),
			"star": h.Star.String(),
		})
	}
	return canon.Object{
		"date":     r.Date.Format(DateLayout),
		"code":     r.Code.String(),
		"palace":   r.Palace.Name,
		"position": r.Palace.Position.Name(),
		"stars":    effective,
		"score":    r.Score,
		"hits":     hits,
	}
}
