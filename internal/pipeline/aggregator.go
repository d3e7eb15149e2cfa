// Package pipeline loads the two source spreadsheets and computes the
// grouped views behind every chart.
package pipeline

import (
	"sort"
	"strings"

	"github.com/fileandclaim/fcidash/internal/model"

	"github.com/montanaflynn/stats"
)

// Stages is the fixed set of charted deal stages. The order drives layout
// (two charts per row) and the order of CountStages.
var Stages = []string{
	"CRA Processing",
	"Technical Assessment",
	"Financial Assessment",
	"Pending External Accountant",
	"Portal Set Up",
	"Complete",
}

// StageFields are the columns offered when drilling into a stage.
var StageFields = []model.DealField{model.FieldDealTitle, model.FieldDealValue}

// EngineerFields are the columns offered when drilling into an engineer.
var EngineerFields = []model.DealField{model.FieldDealStage, model.FieldDealTitle}

// IsKnownStage reports whether stage is one of Stages, compared exactly.
func IsKnownStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// FilterByStage returns deals whose stage equals stage exactly
// (case-sensitive, no trimming), in input order.
func FilterByStage(deals []model.DealRecord, stage string) []model.DealRecord {
	var result []model.DealRecord
	for _, d := range deals {
		if d.Stage == stage {
			result = append(result, d)
		}
	}
	return result
}

// CountByStage returns the number of deals whose stage equals stage exactly.
// An unknown stage yields 0.
func CountByStage(deals []model.DealRecord, stage string) int {
	n := 0
	for _, d := range deals {
		if d.Stage == stage {
			n++
		}
	}
	return n
}

// SelectStageField projects one column of the deals in stage.
func SelectStageField(deals []model.DealRecord, stage string, field model.DealField) []string {
	return selectField(FilterByStage(deals, stage), field)
}

// CountStages computes one StageCount per entry of Stages, in that order,
// including stages with no deals.
func CountStages(deals []model.DealRecord) []model.StageCount {
	out := make([]model.StageCount, len(Stages))
	for i, stage := range Stages {
		matched := FilterByStage(deals, stage)
		sc := model.StageCount{Stage: stage, Count: len(matched)}

		var values stats.Float64Data
		for _, d := range matched {
			if d.Value != nil {
				values = append(values, *d.Value)
			}
		}
		if len(values) > 0 {
			sc.ValuedDeals = len(values)
			sc.TotalValue, _ = values.Sum()
			sc.MeanValue, _ = values.Mean()
			sc.MedianValue, _ = values.Median()
		}
		out[i] = sc
	}
	return out
}

// UnrecognisedStages counts deals whose stage is not one of Stages. Those
// rows never reach a stage chart.
func UnrecognisedStages(deals []model.DealRecord) int {
	n := 0
	for _, d := range deals {
		if !IsKnownStage(d.Stage) {
			n++
		}
	}
	return n
}

// CountByEngineer counts deals per engineer, skipping deals with an empty
// engineer cell. Results are sorted by count descending; engineers with
// equal counts keep the order in which they were first seen.
func CountByEngineer(deals []model.DealRecord) []model.EngineerCount {
	idx := make(map[string]int)
	var counts []model.EngineerCount

	for _, d := range deals {
		if !hasEngineer(d) {
			continue
		}
		i, ok := idx[d.Engineer]
		if !ok {
			i = len(counts)
			idx[d.Engineer] = i
			counts = append(counts, model.EngineerCount{Engineer: d.Engineer})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// FilterByEngineer returns the deals assigned to engineer, in input order.
func FilterByEngineer(deals []model.DealRecord, engineer string) []model.DealRecord {
	var result []model.DealRecord
	for _, d := range deals {
		if hasEngineer(d) && d.Engineer == engineer {
			result = append(result, d)
		}
	}
	return result
}

// SelectEngineerField projects one column of the deals assigned to engineer.
func SelectEngineerField(deals []model.DealRecord, engineer string, field model.DealField) []string {
	return selectField(FilterByEngineer(deals, engineer), field)
}

func hasEngineer(d model.DealRecord) bool {
	return strings.TrimSpace(d.Engineer) != ""
}

func selectField(deals []model.DealRecord, field model.DealField) []string {
	values := make([]string, 0, len(deals))
	for _, d := range deals {
		values = append(values, d.Field(field))
	}
	return values
}

// ParseDealField resolves a column name or short alias ("title", "value",
// "stage") to a DealField.
func ParseDealField(s string) (model.DealField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deal title", "title", "deal_title":
		return model.FieldDealTitle, true
	case "deal value", "value", "deal_value":
		return model.FieldDealValue, true
	case "deal stage", "stage", "deal_stage":
		return model.FieldDealStage, true
	}
	return 0, false
}
