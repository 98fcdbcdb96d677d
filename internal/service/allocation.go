package service

import (
	"github.com/museconnect/tutor-admin-api/internal/models"
)

// EligibleTutors returns the subsequence of the catalog whose instrument set
// intersects the student's requested set. Matching is exact string
// membership over normalized sets; catalog order is preserved and no ranking
// by strikes, rate or distance is applied. An empty student set yields an
// empty result: no tutor is eligible by default.
func EligibleTutors(requested models.InstrumentList, catalog []models.Tutor) []models.Tutor {
	requested = requested.Normalize()
	if len(requested) == 0 {
		return nil
	}

	var eligible []models.Tutor
	for _, tutor := range catalog {
		if tutor.Instruments.Normalize().Intersects(requested) {
			eligible = append(eligible, tutor)
		}
	}
	return eligible
}
