package service

import (
	"context"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/rs/zerolog/log"
)

// VoteService は投票の記録と集計のビジネスロジックを提供します
type VoteService struct {
	repo     repo.GameRepo
	notifier notify.Notifier
	clock    clockwork.Clock
	ttlSec   int
}

// NewVoteService は新しいVoteServiceを作成します
func NewVoteService(r repo.GameRepo, n notify.Notifier, clock clockwork.Clock, ttlSec int) *VoteService {
	return &VoteService{repo: r, notifier: n, clock: clock, ttlSec: ttlSec}
}

// TallyResult は投票の集計結果です
type TallyResult struct {
	Votes      map[string]string `json:"votes"`      // 投票者 → 投票先
	VoteCounts map[string]int    `json:"voteCounts"` // 投票先 → 得票数
	TotalVotes int               `json:"totalVotes"`
	MostVoted  []string          `json:"mostVoted"` // 最多得票者（同数は全員、昇順）
}

// Record は投票を記録し、記録後の投票者数を返します
// 同じ投票者の再投票は上書きされます（履歴は持たない）
// 投票者・投票先がルームのプレイヤーであることを検証します
// （ルームのゲーム状態が存在しない場合のみ無検証で受け付けます）
func (s *VoteService) Record(ctx context.Context, roomID, voter, target string) (int, error) {
	game, ok, err := s.repo.GetGame(ctx, roomID)
	if err != nil {
		return 0, err
	}
	// 保持期間を過ぎたルームのゲーム状態は検証に使わず、ここで日和見的に消します
	if ok && game.CreatedAt < s.clock.Now().UnixMilli()-int64(s.ttlSec)*1000 {
		if err := s.repo.DeleteGame(ctx, roomID); err != nil {
			log.Warn().Err(err).Str("room_id", roomID).Msg("failed to delete expired game")
		}
		ok = false
	}
	if ok {
		if _, voterOK := game.Assignments[voter]; !voterOK {
			return 0, ErrNotAPlayer
		}
		if _, targetOK := game.Assignments[target]; !targetOK {
			return 0, ErrNotAPlayer
		}
	}

	count, err := s.repo.PutVote(ctx, roomID, voter, target, s.ttlSec)
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("room_id", roomID).
		Str("voter", voter).
		Int("vote_count", count).
		Msg("vote recorded")

	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventVoteReceived, map[string]any{
		"roomId":    roomID,
		"voter":     voter,
		"target":    target,
		"voteCount": count,
	})
	return count, nil
}

// Tally はルームの投票を集計します
// 最多得票が同数の場合は該当者全員をMostVotedに含めます
func (s *VoteService) Tally(ctx context.Context, roomID string) (TallyResult, error) {
	votes, ok, err := s.repo.GetVotes(ctx, roomID)
	if err != nil {
		return TallyResult{}, err
	}
	if !ok {
		return TallyResult{}, ErrNoVotes
	}

	counts := make(map[string]int, len(votes))
	for _, target := range votes {
		counts[target]++
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	var most []string
	for target, c := range counts {
		if c == max {
			most = append(most, target)
		}
	}
	sort.Strings(most)

	return TallyResult{
		Votes:      votes,
		VoteCounts: counts,
		TotalVotes: len(votes),
		MostVoted:  most,
	}, nil
}
