package model

// ToggleOutcome reports what a toggle actually did. A concurrent writer
// winning the insert race surfaces as ToggleAlreadyPresent, never as an error.
type ToggleOutcome int

const (
	ToggleCreated ToggleOutcome = iota
	ToggleRemoved
	ToggleAlreadyPresent
)

func (o ToggleOutcome) Present() bool {
	return o == ToggleCreated || o == ToggleAlreadyPresent
}

type ToggleFollowParams struct {
	TargetUserID   UserID `json:"targetUserId"`
	TargetUsername string `json:"targetUsername"`
}
