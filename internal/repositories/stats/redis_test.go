package stats

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/davemolk/countryguessr/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestRecordAndGetPlayerStats() {
	ctx := context.Background()

	err := s.repo.Record(ctx, &RecordInput{
		PlayerID: "player-1",
		Kind:     models.GameKindCountryGuessr,
		Score:    87,
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetPlayerStats(ctx, &GetPlayerStatsInput{
		PlayerID: "player-1",
		Kind:     models.GameKindCountryGuessr,
	})
	s.Require().NoError(err)

	s.Equal("player-1", stats.PlayerID)
	s.Equal(int64(1), stats.GamesPlayed)
	s.Equal(int64(87), stats.TotalScore)
}

func (s *RedisRepositoryTestSuite) TestRecordAccumulates() {
	ctx := context.Background()

	for _, score := range []int{100, 65, 92} {
		err := s.repo.Record(ctx, &RecordInput{
			PlayerID: "player-1",
			Kind:     models.GameKindCountryGuessr,
			Score:    score,
		})
		s.Require().NoError(err)
	}

	stats, err := s.repo.GetPlayerStats(ctx, &GetPlayerStatsInput{
		PlayerID: "player-1",
		Kind:     models.GameKindCountryGuessr,
	})
	s.Require().NoError(err)

	s.Equal(int64(3), stats.GamesPlayed)
	s.Equal(int64(257), stats.TotalScore)
}

func (s *RedisRepositoryTestSuite) TestRecordWritesAuditEvent() {
	ctx := context.Background()

	err := s.repo.Record(ctx, &RecordInput{
		PlayerID: "player-1",
		Kind:     models.GameKindCountryGuessr,
		Score:    50,
	})
	s.Require().NoError(err)

	events, err := s.client.LRange(ctx, eventsKey, 0, -1).Result()
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Contains(events[0], "player-1")
	s.Contains(events[0], string(models.GameKindCountryGuessr))
}

func (s *RedisRepositoryTestSuite) TestGetPlayerStats_Unknown() {
	ctx := context.Background()

	stats, err := s.repo.GetPlayerStats(ctx, &GetPlayerStatsInput{
		PlayerID: "never-played",
		Kind:     models.GameKindCountryGuessr,
	})
	s.Require().NoError(err)

	s.Equal(int64(0), stats.GamesPlayed)
	s.Equal(int64(0), stats.TotalScore)
}

func (s *RedisRepositoryTestSuite) TestRecord_NilInput() {
	err := s.repo.Record(context.Background(), nil)
	s.Error(err)
}
