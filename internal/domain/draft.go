package domain

// WizardState is the explicit current-step tag of an in-progress booking
// draft. Steps are strictly ordered; Edit jumps back to a single step and
// the flow returns straight to review afterwards.
type WizardState string

const (
	StateBizName    WizardState = "biz_name"
	StateBizDesc    WizardState = "biz_desc"
	StateRevenue    WizardState = "revenue"
	StateMonth      WizardState = "month"
	StateDay        WizardState = "day"
	StateTime       WizardState = "time"
	StateTimeManual WizardState = "time_manual"
	StateReview     WizardState = "review"
)

// Draft is the transient, per-requester booking under construction.
// Owned exclusively by one wizard session; discarded on cancel, converted
// into a Booking on confirm.
type Draft struct {
	RequesterID int64
	State       WizardState

	BizName string
	BizDesc string
	Revenue RevenueBand
	Year    int
	Month   int
	Day     int
	Time    string

	Lang string

	// Editing marks a targeted field patch from review: after the field
	// is re-collected the flow returns to review instead of advancing.
	Editing bool
}

// DateChosen reports whether the draft already carries a full date
func (d *Draft) DateChosen() bool {
	return d.Year != 0 && d.Month != 0 && d.Day != 0
}
