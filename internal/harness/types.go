package harness

// TraceEvent records one scored day.
type TraceEvent struct {
	Date   string `json:"date"`
	Code   string `json:"code"`
	Palace string `json:"palace"`
	Score  int    `json:"score"`
	Band   string `json:"band"`
	Status string `json:"status"`
}

// RangeTrace records the statistics of a scenario's range. Real-valued
// statistics are kept as fixed-precision strings so snapshots stay
// byte-stable.
type RangeTrace struct {
	Start     string   `json:"start"`
	Days      int      `json:"days"`
	Count     int      `json:"count"`
	Min       int      `json:"min"`
	Max       int      `json:"max"`
	Mean      string   `json:"mean"`
	Median    string   `json:"median"`
	StdDev    string   `json:"std_dev"`
	Skewness  string   `json:"skewness"`
	Histogram [][3]int `json:"histogram"` // [min, max, count]
	Top       []string `json:"top"`
	Bottom    []string `json:"bottom"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the scored days in scenario order.
	Trace []TraceEvent `json:"trace"`

	// Range is set when the scenario has a range section.
	Range *RangeTrace `json:"range,omitempty"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
