package game

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/match"
	"github.com/davemolk/countryguessr/internal/models"
	statsRepo "github.com/davemolk/countryguessr/internal/repositories/stats"
	"github.com/davemolk/countryguessr/internal/services/narrator"
)

// Control phrases, gamemaster-only
var (
	quitPhrases = map[string]bool{"quit": true, "stop": true}
	skipPhrases = map[string]bool{"skip": true, "idk": true}
)

// run is the session's round loop. It owns the session from start until the
// terminal announcement and is the only goroutine that advances rounds. The
// deferred Remove guarantees the registry entry is gone on every exit path.
func (s *service) run(ctx context.Context, sess *Session) {
	log := s.logger.WithFields(logrus.Fields{
		"session": sess.id,
		"guild":   sess.guildID,
		"channel": sess.channelID,
	})

	defer s.registry.Remove(sess.id)

	// the inbox opens before the first prompt so a guess typed the moment the
	// flag appears is never lost, and stays open across rounds
	s.courier.Subscribe(sess.channelID)
	defer s.courier.Unsubscribe(sess.channelID)

	reason := models.EndReasonCompleted
	var reveal *models.Country

	for {
		country, ok := sess.nextCountry(s.clock.Now())
		if !ok {
			break
		}

		if err := sess.fsm.Event(ctx, eventPrompt); err != nil {
			log.WithError(err).Error("round state transition failed")
			reason = models.EndReasonError
			break
		}

		err := s.courier.SendPrompt(ctx, &SendPromptInput{
			ChannelID: sess.channelID,
			SessionID: sess.id,
			Round:     sess.Round(),
			Rounds:    sess.Config().Rounds,
			Country:   country,
		})
		if err != nil {
			log.WithError(err).Error("failed to send round prompt, aborting session")
			reason = models.EndReasonError
			break
		}

		outcome, winner, accuracy := s.awaitAnswer(ctx, sess, country)

		if s.metrics != nil {
			s.metrics.RoundsPlayed.Inc()
		}

		if outcome == models.RoundOutcomeAborted {
			reason = sess.EndReason()
			if reason == "" {
				reason = models.EndReasonQuit
			}
			break
		}

		if outcome == models.RoundOutcomeTimedOut {
			// a silent round ends the whole session, not just the round
			reason = models.EndReasonTimeout
			reveal = &country
			break
		}

		if err := sess.fsm.Event(ctx, eventScore); err != nil {
			log.WithError(err).Error("round state transition failed")
			reason = models.EndReasonError
			break
		}

		result := &SendRoundResultInput{
			ChannelID: sess.channelID,
			Outcome:   outcome,
			Country:   country,
		}

		if outcome == models.RoundOutcomeAnswered && winner != nil {
			points := int(math.Round(accuracy * 100))
			sess.addScore(winner.AuthorID, winner.AuthorName, points)
			log.WithFields(logrus.Fields{
				"round":    sess.Round(),
				"winner":   winner.AuthorID,
				"accuracy": accuracy,
				"points":   points,
			}).Info("round answered")
		}

		line, err := s.narrator.GetRoundResultMessage(ctx, &narrator.GetRoundResultMessageInput{
			Outcome:     outcome,
			WinnerName:  winnerName(winner),
			CountryName: country.Name(),
			Accuracy:    accuracy,
		})
		if err == nil {
			result.Message = line.Message
		}

		if err := s.courier.SendRoundResult(ctx, result); err != nil {
			log.WithError(err).Warn("failed to announce round result")
		}

		if sess.Round() >= sess.Config().Rounds {
			break
		}

		if err := sess.fsm.Event(ctx, eventNext); err != nil {
			log.WithError(err).Error("round state transition failed")
			reason = models.EndReasonError
			break
		}

		// breather between rounds, interruptible only by session shutdown
		select {
		case <-time.After(sess.Config().RoundDelay):
		case <-ctx.Done():
			reason = sess.EndReason()
			if reason == "" {
				reason = models.EndReasonQuit
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	s.finish(sess, reason, reveal, log)
}

// awaitAnswer waits for the first qualifying message of the round. Every
// channel message is evaluated in arrival order; the gamemaster's control
// phrases short-circuit, anything else goes through the matcher.
func (s *service) awaitAnswer(ctx context.Context, sess *Session, country models.Country) (models.RoundOutcome, *IncomingMessage, float64) {
	waitCtx, cancel := context.WithTimeout(ctx, sess.Config().ResponseTimeout)
	defer cancel()

	for {
		msg, err := s.courier.NextMessage(waitCtx, sess.channelID)
		if err != nil {
			if ctx.Err() != nil {
				return models.RoundOutcomeAborted, nil, 0
			}
			return models.RoundOutcomeTimedOut, nil, 0
		}

		if msg.AuthorID == sess.gamemasterID {
			phrase := strings.ToLower(strings.TrimSpace(msg.Content))
			if quitPhrases[phrase] {
				sess.markEnded(models.EndReasonQuit)
				return models.RoundOutcomeAborted, nil, 0
			}
			if skipPhrases[phrase] {
				return models.RoundOutcomeSkipped, nil, 0
			}
		}

		accuracy, accepted := match.Evaluate(msg.Content, country.Names)
		if s.metrics != nil {
			s.metrics.GuessesEvaluated.Inc()
		}
		if accepted {
			return models.RoundOutcomeAnswered, msg, accuracy
		}
		// not close enough; keep listening until someone gets it or time runs out
	}
}

// finish runs the terminal path: announce standings, persist stats, and let
// the deferred registry removal in run do the unregistering.
func (s *service) finish(sess *Session, reason models.EndReason, reveal *models.Country, log *logrus.Entry) {
	sess.markEnded(reason)
	reason = sess.EndReason()

	// run's ctx may already be canceled (quit, moderation); the terminal
	// announcements and stats writes get their own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sess.fsm.Event(ctx, eventFinish); err != nil {
		log.WithError(err).Warn("finish transition failed")
	}

	entries := sess.Scoreboard()

	board := &SendScoreboardInput{
		ChannelID: sess.channelID,
		SessionID: sess.id,
		Reason:    reason,
		Reveal:    reveal,
		Entries:   entries,
	}
	if line, err := s.narrator.GetFarewellMessage(ctx, &narrator.GetFarewellMessageInput{Reason: reason}); err == nil {
		board.Message = line.Message
	}
	if err := s.courier.SendScoreboard(ctx, board); err != nil {
		log.WithError(err).Warn("failed to announce final scoreboard")
	}

	// one Record per participant with a nonzero score
	for _, entry := range entries {
		if entry.Score <= 0 {
			continue
		}
		err := s.statsRepo.Record(ctx, &statsRepo.RecordInput{
			PlayerID: entry.PlayerID,
			Kind:     sess.kind,
			Score:    entry.Score,
		})
		if err != nil {
			log.WithError(err).WithField("player", entry.PlayerID).Error("failed to record player stats")
		}
	}

	if s.metrics != nil {
		s.metrics.SessionsFinished.WithLabelValues(string(reason)).Inc()
	}

	log.WithFields(logrus.Fields{
		"reason":       reason,
		"rounds":       sess.Round(),
		"participants": len(entries),
	}).Info("session finished")
}

func winnerName(msg *IncomingMessage) string {
	if msg == nil {
		return ""
	}
	return msg.AuthorName
}
