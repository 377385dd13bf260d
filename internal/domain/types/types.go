// Package types contains common types used across the application
package types

// Report is the value form of one score summary, as rendered by the CLI.
type Report struct {
	ID           string   `json:"id" yaml:"id"`
	Scores       []uint32 `json:"scores" yaml:"scores"`
	Latest       *uint32  `json:"latest" yaml:"latest"`
	PersonalBest *uint32  `json:"personal_best" yaml:"personal_best"`
	TopThree     []uint32 `json:"personal_top_three" yaml:"personal_top_three"`
}

// IsEmpty reports whether the summarised input held no scores.
func (r Report) IsEmpty() bool {
	return len(r.Scores) == 0
}
