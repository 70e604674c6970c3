package game

// Error is a custom error type for game-related errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotAuthorized       Error = "only the gamemaster may do that"
	ErrSessionNotFound     Error = "session not found"
	ErrDuplicateSession    Error = "a game of this kind is already running in this guild"
	ErrInvalidSetting      Error = "unknown setting"
	ErrInvalidValue        Error = "illegal value for setting"
	ErrInvalidSessionState Error = "session is not in a state that allows this"
	ErrNotEnoughCountries  Error = "not enough countries for the selected region and round count"
	ErrNilConfig           Error = "config cannot be nil"
	ErrNilRegistry         Error = "registry cannot be nil"
	ErrNilStatsRepo        Error = "stats repository cannot be nil"
	ErrNilPicker           Error = "picker cannot be nil"
	ErrNilCourier          Error = "courier cannot be nil"
	ErrNilNarrator         Error = "narrator cannot be nil"
	ErrNilClock            Error = "clock cannot be nil"
	ErrNilTokenGenerator   Error = "token generator cannot be nil"
)
