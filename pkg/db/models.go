package db

// Run is one archived allocation run
type Run struct {
	ID        string
	CreatedAt string // RFC3339, UTC
	// Source is the CSV path, "form:<id>" or "sheet:<id>/<tab>" the candidates were read from
	Source string

	TotalProcessed   int
	DroppedRows      int
	UnmatchedCourses int
	CourseCount      int
	SelectedCount    int
}

// RunEntry is one list entry of an archived run
type RunEntry struct {
	ID    string
	RunID string

	Course   string
	List     string // published list title
	Category string
	Waiting  bool
	Rank     int

	CandidateID        string
	RegistrationNumber string
	Name               string
	FinalScore         float64
	Portuguese         float64 // tie-break average
	Mathematics        float64 // tie-break average
	Status             string
	AllocatedIn        string
	ViaReversion       bool
}
