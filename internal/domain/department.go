package domain

// Department represents a top-level organizational unit.
type Department struct {
	ID   int64
	Name string
}
