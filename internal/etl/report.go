package etl

// ErrorKind classifies why a row was excluded from a load.
type ErrorKind string

const (
	ErrValidation ErrorKind = "validation_failed"
	ErrLookupMiss ErrorKind = "dimension_not_found"
	ErrDuplicate  ErrorKind = "duplicate_key"
)

// RowError records one excluded row. Row is the zero-based input index.
type RowError struct {
	Row    int       `json:"row"`
	Kind   ErrorKind `json:"kind"`
	Field  string    `json:"field,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// EntityReport summarizes one load unit.
type EntityReport struct {
	Entity string     `json:"entity"`
	Input  int        `json:"input"`
	Loaded int        `json:"loaded"`
	Errors []RowError `json:"errors"`
}

// AddError appends a structured row error.
func (r *EntityReport) AddError(row int, kind ErrorKind, field, detail string) {
	r.Errors = append(r.Errors, RowError{Row: row, Kind: kind, Field: field, Detail: detail})
}

// LoadSummary aggregates every entity report of a run, keyed by entity name.
type LoadSummary struct {
	Entities map[string]*EntityReport `json:"entities"`
}

func NewLoadSummary() *LoadSummary {
	return &LoadSummary{Entities: make(map[string]*EntityReport)}
}

// Add stores an entity report in the summary.
func (s *LoadSummary) Add(report *EntityReport) {
	s.Entities[report.Entity] = report
}

// TotalErrors counts row errors across every entity.
func (s *LoadSummary) TotalErrors() int {
	total := 0
	for _, report := range s.Entities {
		total += len(report.Errors)
	}
	return total
}
