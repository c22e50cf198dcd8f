package model

import "fmt"

// Stage is the lifecycle state of a course as seen by the client.
// Transitions only move forward: NeedsInit -> Generating on an accepted
// initialization request, Generating -> Active once generation finishes.
type Stage string

const (
	StageNeedsInit  Stage = "NEEDS_INIT"
	StageNotReady   Stage = "NOT_READY"
	StageGenerating Stage = "GENERATING"
	StageActive     Stage = "ACTIVE"
)

func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageNeedsInit, StageNotReady, StageGenerating, StageActive:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown course stage: %q", s)
}

func (s Stage) String() string {
	return string(s)
}
