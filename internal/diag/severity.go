package diag

// Severity ranks diagnostics. Only SevError makes a compilation fail;
// anything below renders and is otherwise ignored by the bag.
type Severity uint8

const (
	// SevInfo annotates a finding that needs no action.
	SevInfo Severity = iota
	// SevWarning flags input that compiles but looks wrong.
	SevWarning
	// SevError marks input the front end rejects.
	SevError
)

var sevNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(sevNames) {
		return sevNames[s]
	}
	return "UNKNOWN"
}
