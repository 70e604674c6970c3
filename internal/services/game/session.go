package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/davemolk/countryguessr/internal/models"
)

// Session states
const (
	StateConfiguring      = "configuring"
	StateAwaitingPrompt   = "awaiting_prompt"
	StateAwaitingResponse = "awaiting_response"
	StateScored           = "scored"
	StateFinished         = "finished"
)

// Session events
const (
	eventStart  = "start"
	eventPrompt = "prompt"
	eventScore  = "score"
	eventNext   = "next"
	eventFinish = "finish"
)

// Session is one running (or pending) instance of the country guessing game.
// The round loop mutates it from its own goroutine; the service reads
// snapshots from interaction handlers, so shared fields sit behind the mutex.
type Session struct {
	id             string
	kind           models.GameKind
	guildID        string
	channelID      string
	gamemasterID   string
	gamemasterName string
	createdAt      time.Time

	fsm *fsm.FSM

	mu          sync.Mutex
	config      SessionConfig
	round       int
	pool        []models.Country
	scores      map[string]int
	playerNames map[string]string
	endReason   models.EndReason
	cancel      context.CancelFunc
	promptedAt  time.Time
}

func newSession(id, guildID, channelID, gamemasterID, gamemasterName string, cfg SessionConfig, createdAt time.Time) *Session {
	return &Session{
		id:             id,
		kind:           models.GameKindCountryGuessr,
		guildID:        guildID,
		channelID:      channelID,
		gamemasterID:   gamemasterID,
		gamemasterName: gamemasterName,
		createdAt:      createdAt,
		config:         cfg,
		scores:         make(map[string]int),
		playerNames:    make(map[string]string),
		fsm: fsm.NewFSM(
			StateConfiguring,
			fsm.Events{
				{Name: eventStart, Src: []string{StateConfiguring}, Dst: StateAwaitingPrompt},
				{Name: eventPrompt, Src: []string{StateAwaitingPrompt}, Dst: StateAwaitingResponse},
				{Name: eventScore, Src: []string{StateAwaitingResponse}, Dst: StateScored},
				{Name: eventNext, Src: []string{StateScored}, Dst: StateAwaitingPrompt},
				{Name: eventFinish, Src: []string{
					StateConfiguring, StateAwaitingPrompt, StateAwaitingResponse, StateScored,
				}, Dst: StateFinished},
			},
			fsm.Callbacks{},
		),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Kind returns the concrete game kind
func (s *Session) Kind() models.GameKind {
	return s.kind
}

// GuildID returns the guild the session is scoped to
func (s *Session) GuildID() string {
	return s.guildID
}

// ChannelID returns the channel rounds are played in
func (s *Session) ChannelID() string {
	return s.channelID
}

// GamemasterID returns the user ID of the session owner
func (s *Session) GamemasterID() string {
	return s.gamemasterID
}

// State returns the current lifecycle state
func (s *Session) State() string {
	return s.fsm.Current()
}

// Playing reports whether the round loop is live
func (s *Session) Playing() bool {
	switch s.fsm.Current() {
	case StateAwaitingPrompt, StateAwaitingResponse, StateScored:
		return true
	}
	return false
}

// Round returns the number of rounds started so far
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Config returns a copy of the session configuration
func (s *Session) Config() SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Session) setConfig(cfg SessionConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// setPool installs the drawn candidate pool. Start can be raced by two clicks
// on the same menu, so the write goes through the mutex like every other
// shared field.
func (s *Session) setPool(pool []models.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = pool
}

// nextCountry advances the round counter and returns the round's candidate.
// The counter never exceeds the configured round count.
func (s *Session) nextCountry(promptedAt time.Time) (models.Country, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round >= s.config.Rounds || s.round >= len(s.pool) {
		return models.Country{}, false
	}
	country := s.pool[s.round]
	s.round++
	s.promptedAt = promptedAt
	return country, true
}

// addScore credits a participant, creating their entry on first score
func (s *Session) addScore(playerID, playerName string, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores[playerID] += points
	s.playerNames[playerID] = playerName
}

// Scoreboard returns the score entries sorted by score, highest first
func (s *Session) Scoreboard() []models.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.ScoreEntry, 0, len(s.scores))
	for playerID, score := range s.scores {
		entries = append(entries, models.ScoreEntry{
			PlayerID:   playerID,
			PlayerName: s.playerNames[playerID],
			Score:      score,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries
}

// markEnded records the first end reason; later calls keep the original
func (s *Session) markEnded(reason models.EndReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.endReason == "" {
		s.endReason = reason
	}
}

// EndReason returns why the session ended, or empty while it is live
func (s *Session) EndReason() models.EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}

// stop cancels the round loop's context, if the loop has started
func (s *Session) stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *Session) setCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
}

// snapshot builds a read-only view for display
func (s *Session) snapshot() *SessionInfo {
	s.mu.Lock()
	cfg := s.config
	round := s.round
	s.mu.Unlock()

	return &SessionInfo{
		ID:             s.id,
		Kind:           s.kind,
		GuildID:        s.guildID,
		ChannelID:      s.channelID,
		GamemasterID:   s.gamemasterID,
		GamemasterName: s.gamemasterName,
		State:          s.fsm.Current(),
		Round:          round,
		Config:         cfg,
		Scores:         s.Scoreboard(),
	}
}
