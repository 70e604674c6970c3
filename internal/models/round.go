package models

// GameKind identifies a concrete game implementation
type GameKind string

const (
	// GameKindCountryGuessr is the flag guessing game
	GameKindCountryGuessr GameKind = "countryguessr"
)

// EndReason records why a session reached its terminal state
type EndReason string

const (
	// EndReasonCompleted indicates all rounds were played
	EndReasonCompleted EndReason = "completed"

	// EndReasonQuit indicates the gamemaster ended the session early
	EndReasonQuit EndReason = "quit"

	// EndReasonTimeout indicates a round expired with no qualifying answer
	EndReasonTimeout EndReason = "timeout"

	// EndReasonRemoved indicates a moderator deleted the session
	EndReasonRemoved EndReason = "removed"

	// EndReasonError indicates the session aborted after an unexpected failure
	EndReasonError EndReason = "error"
)

// RoundOutcome describes how a single round resolved
type RoundOutcome string

const (
	// RoundOutcomeAnswered indicates a participant's guess was accepted
	RoundOutcomeAnswered RoundOutcome = "answered"

	// RoundOutcomeSkipped indicates the gamemaster skipped the round
	RoundOutcomeSkipped RoundOutcome = "skipped"

	// RoundOutcomeTimedOut indicates no qualifying answer arrived in time
	RoundOutcomeTimedOut RoundOutcome = "timed_out"

	// RoundOutcomeAborted indicates the session ended mid-round
	RoundOutcomeAborted RoundOutcome = "aborted"
)

// ScoreEntry is one participant's line on a session scoreboard
type ScoreEntry struct {
	// PlayerID is the Discord user ID of the participant
	PlayerID string

	// PlayerName is the display name of the participant
	PlayerName string

	// Score is the participant's accumulated score for the session
	Score int
}
