package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/davemolk/countryguessr/internal/services/game"
)

type CourierTestSuite struct {
	suite.Suite
	courier *Courier
}

func (s *CourierTestSuite) SetupTest() {
	s.courier = &Courier{
		inboxes: make(map[string]chan *game.IncomingMessage),
	}
}

func TestCourierTestSuite(t *testing.T) {
	suite.Run(t, new(CourierTestSuite))
}

func (s *CourierTestSuite) TestNextMessage_DeliversDispatchedMessage() {
	s.courier.Subscribe("chan-1")

	type result struct {
		msg *game.IncomingMessage
		err error
	}
	got := make(chan result, 1)

	go func() {
		msg, err := s.courier.NextMessage(context.Background(), "chan-1")
		got <- result{msg, err}
	}()

	s.courier.Dispatch("chan-1", &game.IncomingMessage{
		AuthorID:   "user-1",
		AuthorName: "Scout",
		Content:    "France",
	})

	select {
	case r := <-got:
		s.Require().NoError(r.err)
		s.Equal("user-1", r.msg.AuthorID)
		s.Equal("France", r.msg.Content)
	case <-time.After(time.Second):
		s.FailNow("message was not delivered")
	}
}

// A message arriving while the round loop is busy (scoring the previous
// guess, pausing between rounds) must be held for the next NextMessage call,
// not dropped.
func (s *CourierTestSuite) TestNextMessage_HoldsMessagesBetweenCalls() {
	s.courier.Subscribe("chan-1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.courier.Dispatch("chan-1", &game.IncomingMessage{AuthorID: "user-1", Content: "zzz"})

	msg, err := s.courier.NextMessage(ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal("zzz", msg.Content)

	// no NextMessage call is outstanding here
	s.courier.Dispatch("chan-1", &game.IncomingMessage{AuthorID: "user-2", Content: "France"})

	msg, err = s.courier.NextMessage(ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal("France", msg.Content)
	s.Equal("user-2", msg.AuthorID)
}

func (s *CourierTestSuite) TestNextMessage_ArrivalOrder() {
	s.courier.Subscribe("chan-1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, content := range []string{"first", "second", "third"} {
		s.courier.Dispatch("chan-1", &game.IncomingMessage{Content: content})
	}

	for _, want := range []string{"first", "second", "third"} {
		msg, err := s.courier.NextMessage(ctx, "chan-1")
		s.Require().NoError(err)
		s.Equal(want, msg.Content)
	}
}

func (s *CourierTestSuite) TestNextMessage_NotSubscribed() {
	msg, err := s.courier.NextMessage(context.Background(), "chan-1")
	s.Nil(msg)
	s.ErrorIs(err, ErrNotSubscribed)
}

func (s *CourierTestSuite) TestNextMessage_ContextCancelled() {
	s.courier.Subscribe("chan-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, err := s.courier.NextMessage(ctx, "chan-1")
	s.Nil(msg)
	s.ErrorIs(err, context.Canceled)
}

func (s *CourierTestSuite) TestUnsubscribe_DiscardsInbox() {
	s.courier.Subscribe("chan-1")
	s.courier.Dispatch("chan-1", &game.IncomingMessage{Content: "Japan"})
	s.courier.Unsubscribe("chan-1")

	_, err := s.courier.NextMessage(context.Background(), "chan-1")
	s.ErrorIs(err, ErrNotSubscribed)
}

func (s *CourierTestSuite) TestDispatch_NoSubscriptionDropsMessage() {
	// must not panic or block
	s.courier.Dispatch("chan-1", &game.IncomingMessage{Content: "Japan"})

	s.courier.mu.Lock()
	defer s.courier.mu.Unlock()
	s.Empty(s.courier.inboxes)
}

func (s *CourierTestSuite) TestDispatch_OtherChannelNotDelivered() {
	s.courier.Subscribe("chan-1")
	s.courier.Dispatch("chan-2", &game.IncomingMessage{Content: "Brazil"})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	msg, err := s.courier.NextMessage(ctx, "chan-1")
	s.Nil(msg, "a message for another channel must not reach this inbox")
	s.ErrorIs(err, context.DeadlineExceeded)
}

func TestRenderConfigMenu(t *testing.T) {
	embed, components := renderConfigMenu("abc123", game.SessionConfig{
		Region: "europe",
		Rounds: 10,
	})

	if embed.Footer == nil || embed.Footer.Text != "Session abc123" {
		t.Fatalf("expected session footer, got %+v", embed.Footer)
	}

	if len(components) != 3 {
		t.Fatalf("expected 3 component rows, got %d", len(components))
	}

	regionRow, ok := components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected first row to be an actions row")
	}
	regionSelect, ok := regionRow.Components[0].(discordgo.SelectMenu)
	if !ok {
		t.Fatalf("expected a select menu in the first row")
	}
	if regionSelect.CustomID != "geo:region:abc123" {
		t.Errorf("unexpected region select custom ID: %s", regionSelect.CustomID)
	}

	foundDefault := false
	for _, opt := range regionSelect.Options {
		if opt.Value == "europe" && opt.Default {
			foundDefault = true
		}
	}
	if !foundDefault {
		t.Errorf("the configured region should be the default option")
	}
}
