package roster

// Entry is one row of the employee roster.
// FullName joins against the sign-in log, PTOName against the PTO calendar.
type Entry struct {
	FullName     string
	PTOName      string
	Department   string
	Office       string
	RequiredDays int
}
