package model

// StageCount holds the number of deals in one pipeline stage.
type StageCount struct {
	Stage string
	Count int

	// Deal value statistics over rows with a numeric Deal Value.
	ValuedDeals int
	TotalValue  float64
	MeanValue   float64
	MedianValue float64
}

// EngineerCount holds the number of deals assigned to one engineer.
type EngineerCount struct {
	Engineer string
	Count    int
}

// StatusSummary holds the aggregate for one display status.
type StatusSummary struct {
	Display            string
	CompanyCount       int
	TotalInvoiceAmount float64
}

// CompanyRow is one drill-down row under a display status.
type CompanyRow struct {
	Company       string
	InvoiceAmount *float64
}
