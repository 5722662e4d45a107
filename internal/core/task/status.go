package task

import (
	"encoding/json"
	"strings"
)

// StageState enumerates where a stage stands for one record.
type StageState int

const (
	StagePending StageState = iota
	StageInProgress
	StageDone
	StageFailed
)

// Persisted markers. The store schema predates this implementation and the
// table UI filters on these exact strings, so they are part of the contract.
const (
	markerDone       = "✅ Gotowe"
	markerInProgress = "🔄 W trakcie..."
	markerFailed     = "❌ Błąd: "
)

// StageStatus is the typed form of a per-stage status column. The persisted
// representation stays string-compatible with the store; transitions are
// last-write-wins, no state machine is enforced.
type StageStatus struct {
	State   StageState
	Message string
}

func Pending() StageStatus              { return StageStatus{State: StagePending} }
func InProgress() StageStatus           { return StageStatus{State: StageInProgress} }
func Done() StageStatus                 { return StageStatus{State: StageDone} }
func Failed(message string) StageStatus { return StageStatus{State: StageFailed, Message: message} }

// ParseStatus maps a persisted status string back to its typed form.
// Operator-typed free text that matches no marker is kept verbatim on a
// Pending status so that a round trip never loses data.
func ParseStatus(s string) StageStatus {
	switch {
	case s == "":
		return Pending()
	case strings.HasPrefix(s, markerDone):
		return Done()
	case strings.HasPrefix(s, markerInProgress):
		return InProgress()
	case strings.HasPrefix(s, markerFailed):
		return Failed(strings.TrimPrefix(s, markerFailed))
	default:
		return StageStatus{State: StagePending, Message: s}
	}
}

// String renders the persisted form.
func (s StageStatus) String() string {
	switch s.State {
	case StageDone:
		return markerDone
	case StageInProgress:
		return markerInProgress
	case StageFailed:
		return markerFailed + s.Message
	default:
		return s.Message
	}
}

func (s StageStatus) IsDone() bool   { return s.State == StageDone }
func (s StageStatus) IsFailed() bool { return s.State == StageFailed }

// MarshalJSON keeps the wire form identical to the persisted form so the table
// UI renders status cells unchanged.
func (s StageStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StageStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}
