package pipeline

import (
	"testing"

	"github.com/fileandclaim/fcidash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func sampleDeals() []model.DealRecord {
	return []model.DealRecord{
		{Title: "A", Value: fptr(100), Stage: "CRA Processing", Engineer: "Dana"},
		{Title: "B", Value: nil, ValueText: "TBD", Stage: "CRA Processing", Engineer: "Lee"},
		{Title: "C", Value: fptr(300), Stage: "CRA Processing", Engineer: "Lee"},
		{Title: "D", Value: fptr(50), Stage: "Complete", Engineer: "Sam"},
		{Title: "E", Value: fptr(10), Stage: "cra processing", Engineer: "Dana"},
		{Title: "F", Value: fptr(20), Stage: " Complete", Engineer: ""},
		{Title: "G", Value: fptr(30), Stage: "", Engineer: "   "},
		{Title: "H", Value: fptr(40), Stage: "Portal Set Up", Engineer: "Sam"},
	}
}

func TestCountByStage_Exact(t *testing.T) {
	deals := sampleDeals()

	assert.Equal(t, 3, CountByStage(deals, "CRA Processing"))
	assert.Equal(t, 1, CountByStage(deals, "Complete"), "leading space is not trimmed")
	assert.Equal(t, 1, CountByStage(deals, "cra processing"))
	assert.Equal(t, 0, CountByStage(deals, "Financial Assessment"))
	assert.Equal(t, 0, CountByStage(deals, "Unknown"))
	assert.Equal(t, 0, CountByStage(nil, "Complete"))
}

func TestCountByStage_MatchesFilter(t *testing.T) {
	deals := sampleDeals()
	for _, s := range Stages {
		want := 0
		for _, d := range deals {
			if d.Stage == s {
				want++
			}
		}
		assert.Equal(t, want, CountByStage(deals, s), s)
	}
}

func TestCountStages(t *testing.T) {
	deals := sampleDeals()
	got := CountStages(deals)

	require.Len(t, got, len(Stages))
	total := 0
	for i, sc := range got {
		assert.Equal(t, Stages[i], sc.Stage)
		total += sc.Count
	}
	// Sum over known stages equals the rows whose stage is one of the six.
	assert.Equal(t, len(deals)-UnrecognisedStages(deals), total)
	assert.Equal(t, 3, UnrecognisedStages(deals))

	cra := got[0]
	assert.Equal(t, 3, cra.Count)
	assert.Equal(t, 2, cra.ValuedDeals)
	assert.InDelta(t, 400, cra.TotalValue, 1e-9)
	assert.InDelta(t, 200, cra.MeanValue, 1e-9)
	assert.InDelta(t, 200, cra.MedianValue, 1e-9)

	fin := got[2]
	assert.Equal(t, "Financial Assessment", fin.Stage)
	assert.Zero(t, fin.Count)
	assert.Zero(t, fin.TotalValue)
}

func TestSelectStageField(t *testing.T) {
	deals := sampleDeals()

	assert.Equal(t, []string{"A", "B", "C"}, SelectStageField(deals, "CRA Processing", model.FieldDealTitle))
	assert.Equal(t, []string{"100", "TBD", "300"}, SelectStageField(deals, "CRA Processing", model.FieldDealValue))
	assert.Empty(t, SelectStageField(deals, "Financial Assessment", model.FieldDealTitle))
}

func TestCountByEngineer(t *testing.T) {
	got := CountByEngineer(sampleDeals())

	require.Equal(t, []model.EngineerCount{
		{Engineer: "Dana", Count: 2},
		{Engineer: "Lee", Count: 2},
		{Engineer: "Sam", Count: 2},
	}, got)
}

func TestCountByEngineer_SortedStable(t *testing.T) {
	deals := []model.DealRecord{
		{Engineer: "Zoe"},
		{Engineer: "Amir"},
		{Engineer: "Kim"},
		{Engineer: "Kim"},
		{Engineer: "Amir"},
		{Engineer: "Kim"},
		{Engineer: ""},
		{Engineer: "Bo"},
	}

	got := CountByEngineer(deals)
	require.Len(t, got, 4)
	assert.Equal(t, model.EngineerCount{Engineer: "Kim", Count: 3}, got[0])
	assert.Equal(t, model.EngineerCount{Engineer: "Amir", Count: 2}, got[1])
	// ties keep first-seen order: Zoe before Bo
	assert.Equal(t, "Zoe", got[2].Engineer)
	assert.Equal(t, "Bo", got[3].Engineer)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestCountByEngineer_ExcludesEmpty(t *testing.T) {
	got := CountByEngineer([]model.DealRecord{{Engineer: ""}, {Engineer: "  "}})
	assert.Empty(t, got)
}

func TestSelectEngineerField(t *testing.T) {
	deals := sampleDeals()

	assert.Equal(t, []string{"CRA Processing", "cra processing"}, SelectEngineerField(deals, "Dana", model.FieldDealStage))
	assert.Equal(t, []string{"B", "C"}, SelectEngineerField(deals, "Lee", model.FieldDealTitle))
	assert.Empty(t, SelectEngineerField(deals, "", model.FieldDealTitle))
	assert.Empty(t, SelectEngineerField(deals, "Nobody", model.FieldDealTitle))
}

func TestParseDealField(t *testing.T) {
	tests := []struct {
		in   string
		want model.DealField
		ok   bool
	}{
		{"Deal Title", model.FieldDealTitle, true},
		{"value", model.FieldDealValue, true},
		{"deal_stage", model.FieldDealStage, true},
		{" STAGE ", model.FieldDealStage, true},
		{"engineer", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDealField(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
