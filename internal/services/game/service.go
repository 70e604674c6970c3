package game

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/common/clock"
	"github.com/davemolk/countryguessr/internal/common/token"
	"github.com/davemolk/countryguessr/internal/countries"
	"github.com/davemolk/countryguessr/internal/metrics"
	"github.com/davemolk/countryguessr/internal/models"
	"github.com/davemolk/countryguessr/internal/registry"
	statsRepo "github.com/davemolk/countryguessr/internal/repositories/stats"
	"github.com/davemolk/countryguessr/internal/services/narrator"
)

// service implements the Service interface
type service struct {
	registry  *registry.Registry
	statsRepo statsRepo.Repository
	picker    *countries.Picker
	courier   Courier
	narrator  narrator.Service
	clock     clock.Clock
	tokens    token.Generator
	metrics   *metrics.Set
	logger    *logrus.Logger

	responseTimeout time.Duration
	roundDelay      time.Duration

	// pending holds sessions still in the configuration menu; only playing
	// sessions live in the registry
	mu      sync.Mutex
	pending map[string]*Session
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}
	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}
	if cfg.Picker == nil {
		return nil, ErrNilPicker
	}
	if cfg.Courier == nil {
		return nil, ErrNilCourier
	}
	if cfg.Narrator == nil {
		return nil, ErrNilNarrator
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.TokenGenerator == nil {
		return nil, ErrNilTokenGenerator
	}

	responseTimeout := cfg.ResponseTimeout
	if responseTimeout == 0 {
		responseTimeout = DefaultResponseTimeout
	}
	roundDelay := cfg.RoundDelay
	if roundDelay == 0 {
		roundDelay = DefaultRoundDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &service{
		registry:        cfg.Registry,
		statsRepo:       cfg.StatsRepo,
		picker:          cfg.Picker,
		courier:         cfg.Courier,
		narrator:        cfg.Narrator,
		clock:           cfg.Clock,
		tokens:          cfg.TokenGenerator,
		metrics:         cfg.Metrics,
		logger:          logger,
		responseTimeout: responseTimeout,
		roundDelay:      roundDelay,
		pending:         make(map[string]*Session),
	}, nil
}

// CreateSession creates a pending session awaiting configuration
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.GuildID == "" || input.ChannelID == "" || input.GamemasterID == "" {
		return nil, errors.New("guild, channel and gamemaster are required")
	}

	cfg := SessionConfig{
		Region:          countries.RegionGlobal,
		Rounds:          DefaultRounds,
		ResponseTimeout: s.responseTimeout,
		RoundDelay:      s.roundDelay,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newSessionIDLocked()
	sess := newSession(id, input.GuildID, input.ChannelID, input.GamemasterID, input.GamemasterName, cfg, s.clock.Now())
	s.pending[id] = sess

	s.logger.WithFields(logrus.Fields{
		"session": id,
		"guild":   input.GuildID,
		"channel": input.ChannelID,
	}).Info("session created, awaiting configuration")

	return &CreateSessionOutput{
		SessionID: id,
		Config:    cfg,
	}, nil
}

// newSessionIDLocked generates a token not already in use. Collisions over a
// 36^6 space are vanishingly rare; the loop is a cheap guard, not a hot path.
func (s *service) newSessionIDLocked() string {
	for {
		id := s.tokens.NewToken()
		if _, exists := s.pending[id]; exists {
			continue
		}
		if _, err := s.registry.Get(id); err == nil {
			continue
		}
		return id
	}
}

// Configure changes one setting of a pending session
func (s *service) Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	sess, err := s.pendingSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.ActorID != sess.gamemasterID {
		return nil, ErrNotAuthorized
	}

	cfg := sess.Config()
	switch input.Setting {
	case SettingRegion:
		if !countries.ValidRegion(input.Value) {
			return nil, ErrInvalidValue
		}
		cfg.Region = input.Value
	case SettingRounds:
		rounds, ok := parseRoundChoice(input.Value)
		if !ok {
			return nil, ErrInvalidValue
		}
		cfg.Rounds = rounds
	default:
		return nil, ErrInvalidSetting
	}

	sess.setConfig(cfg)

	return &ConfigureOutput{Config: cfg}, nil
}

// StartSession registers a pending session and starts its round loop
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	sess, err := s.pendingSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.ActorID != sess.gamemasterID {
		return nil, ErrNotAuthorized
	}

	cfg := sess.Config()
	pool, err := s.picker.Draw(cfg.Region, cfg.Rounds)
	if err != nil {
		if errors.Is(err, countries.ErrPoolExhausted) {
			return nil, ErrNotEnoughCountries
		}
		return nil, err
	}
	sess.setPool(pool)

	// Register enforces one session per kind per guild; the pending menu
	// stays open on failure so the gamemaster can retry or cancel.
	if err := s.registry.Register(sess); err != nil {
		if errors.Is(err, registry.ErrDuplicateSession) {
			out := &StartSessionOutput{}
			if existing, ok := s.registry.Find(sess.kind, sess.guildID); ok {
				out.ExistingSessionID = existing.ID()
			}
			return out, ErrDuplicateSession
		}
		return nil, err
	}

	if err := sess.fsm.Event(ctx, eventStart); err != nil {
		s.registry.Remove(sess.id)
		return nil, ErrInvalidSessionState
	}

	s.mu.Lock()
	delete(s.pending, sess.id)
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	sess.setCancel(cancel)

	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}

	s.logger.WithFields(logrus.Fields{
		"session": sess.id,
		"guild":   sess.guildID,
		"region":  cfg.Region,
		"rounds":  cfg.Rounds,
	}).Info("session started")

	go s.run(runCtx, sess)

	return &StartSessionOutput{}, nil
}

// CancelSession discards a pending session without registering it
func (s *service) CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	sess, err := s.pendingSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.ActorID != sess.gamemasterID {
		return nil, ErrNotAuthorized
	}

	s.mu.Lock()
	delete(s.pending, input.SessionID)
	s.mu.Unlock()

	return &CancelSessionOutput{}, nil
}

// QuitSession lets the gamemaster end a running session early
func (s *service) QuitSession(ctx context.Context, input *QuitSessionInput) (*QuitSessionOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	entry, err := s.registry.Get(input.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	sess := entry.(*Session)

	if input.ActorID != sess.gamemasterID {
		return nil, ErrNotAuthorized
	}

	sess.markEnded(models.EndReasonQuit)
	sess.stop()

	return &QuitSessionOutput{}, nil
}

// DeleteSession force-removes a session by identifier (moderation)
func (s *service) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	// A playing session is stopped through its round loop so the terminal
	// path (scoreboard, stats, unregister) still runs.
	if entry, err := s.registry.Get(input.SessionID); err == nil {
		sess := entry.(*Session)
		sess.markEnded(models.EndReasonRemoved)
		sess.stop()
		return &DeleteSessionOutput{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[input.SessionID]; ok {
		delete(s.pending, input.SessionID)
		return &DeleteSessionOutput{}, nil
	}

	return nil, ErrSessionNotFound
}

// GetSession returns a snapshot of a session
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if entry, err := s.registry.Get(input.SessionID); err == nil {
		return &GetSessionOutput{Session: entry.(*Session).snapshot()}, nil
	}

	s.mu.Lock()
	sess, ok := s.pending[input.SessionID]
	s.mu.Unlock()
	if ok {
		return &GetSessionOutput{Session: sess.snapshot()}, nil
	}

	return nil, ErrSessionNotFound
}

// ListSessions returns snapshots of all active sessions
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	out := &ListSessionsOutput{}
	for _, entry := range s.registry.Snapshot() {
		sess := entry.(*Session)
		if input != nil && input.GuildID != "" && sess.guildID != input.GuildID {
			continue
		}
		out.Sessions = append(out.Sessions, sess.snapshot())
	}
	return out, nil
}

// GetPlayerStats reads a player's persisted counters
func (s *service) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("player ID is required")
	}

	stats, err := s.statsRepo.GetPlayerStats(ctx, &statsRepo.GetPlayerStatsInput{
		PlayerID: input.PlayerID,
		Kind:     models.GameKindCountryGuessr,
	})
	if err != nil {
		return nil, err
	}

	return &GetPlayerStatsOutput{Stats: stats}, nil
}

func (s *service) pendingSession(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.pending[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func parseRoundChoice(value string) (int, bool) {
	for _, choice := range RoundChoices {
		if value == strconv.Itoa(choice) {
			return choice, true
		}
	}
	return 0, false
}
