package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

func TestEligibleTutorsMatchesOnOverlap(t *testing.T) {
	catalog := []models.Tutor{
		{ID: "t1", Name: "A", Instruments: models.InstrumentList{"Piano", "Violin"}},
		{ID: "t2", Name: "B", Instruments: models.InstrumentList{"Guitar"}},
	}

	eligible := EligibleTutors(models.InstrumentList{"Piano", "Drums"}, catalog)

	assert.Len(t, eligible, 1)
	assert.Equal(t, "t1", eligible[0].ID)
}

func TestEligibleTutorsPreservesCatalogOrder(t *testing.T) {
	catalog := []models.Tutor{
		{ID: "t1", Instruments: models.InstrumentList{"Drums"}},
		{ID: "t2", Instruments: models.InstrumentList{"Piano"}},
		{ID: "t3", Instruments: models.InstrumentList{"Piano", "Drums"}},
	}

	eligible := EligibleTutors(models.InstrumentList{"Piano", "Drums"}, catalog)

	ids := make([]string, 0, len(eligible))
	for _, tutor := range eligible {
		ids = append(ids, tutor.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids)
}

func TestEligibleTutorsEmptyRequestYieldsNoTutors(t *testing.T) {
	catalog := []models.Tutor{
		{ID: "t1", Instruments: models.InstrumentList{"Piano"}},
	}

	assert.Nil(t, EligibleTutors(nil, catalog))
	assert.Nil(t, EligibleTutors(models.InstrumentList{"  ", ""}, catalog))
}

func TestEligibleTutorsExactMembershipNoCaseFolding(t *testing.T) {
	catalog := []models.Tutor{
		{ID: "t1", Instruments: models.InstrumentList{"piano"}},
	}

	assert.Nil(t, EligibleTutors(models.InstrumentList{"Piano"}, catalog))
}

func TestEligibleTutorsNormalizesWhitespace(t *testing.T) {
	catalog := []models.Tutor{
		{ID: "t1", Instruments: models.InstrumentList{" Piano "}},
	}

	eligible := EligibleTutors(models.InstrumentList{"Piano "}, catalog)
	assert.Len(t, eligible, 1)
}
