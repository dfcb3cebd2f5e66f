package engine

// Stage is a state of the import state machine.
//
// A run moves Idle -> ValidatingInputs -> ParsingParameters -> SelectingContainer ->
// LoadingTextures -> ComposingAssets -> Persisted. Any failure moves to Failed; an empty
// folder selection moves straight to Cancelled.
type Stage int

const (
	StageIdle Stage = iota
	StageValidatingInputs
	StageParsingParameters
	StageSelectingContainer
	StageLoadingTextures
	StageComposingAssets
	StagePersisted
	StageFailed
	StageCancelled
)

var stageNames = map[Stage]string{
	StageIdle:               "Idle",
	StageValidatingInputs:   "ValidatingInputs",
	StageParsingParameters:  "ParsingParameters",
	StageSelectingContainer: "SelectingContainer",
	StageLoadingTextures:    "LoadingTextures",
	StageComposingAssets:    "ComposingAssets",
	StagePersisted:          "Persisted",
	StageFailed:             "Failed",
	StageCancelled:          "Cancelled",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further transition leaves s.
func (s Stage) Terminal() bool {
	return s == StagePersisted || s == StageFailed || s == StageCancelled
}
