package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
)

func newVoteService() (*VoteService, *GameService, *recordingNotifier) {
	store := repo.NewMemoryGameRepo()
	n := &recordingNotifier{}
	clock := clockwork.NewFakeClock()
	vote := NewVoteService(store, n, clock, testTTLSec)
	game := NewGameService(store, n, clock, NewShuffler(), testTTLSec)
	return vote, game, n
}

func TestVote_RevoteOverwrites(t *testing.T) {
	svc, _, _ := newVoteService()
	ctx := context.Background()

	count, err := svc.Record(ctx, "1", "alice", "bob")
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// 再投票は上書きで、投票数は増えない
	count, err = svc.Record(ctx, "1", "alice", "carol")
	if err != nil {
		t.Fatalf("re-vote error: %v", err)
	}
	if count != 1 {
		t.Errorf("count after re-vote = %d, want 1", count)
	}

	result, err := svc.Tally(ctx, "1")
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}
	if result.Votes["alice"] != "carol" {
		t.Errorf("alice's vote = %q, want carol", result.Votes["alice"])
	}
}

func TestVote_Tally(t *testing.T) {
	svc, _, _ := newVoteService()
	ctx := context.Background()

	for voter, target := range map[string]string{"alice": "xavier", "bob": "xavier", "carol": "yolanda"} {
		if _, err := svc.Record(ctx, "1", voter, target); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	result, err := svc.Tally(ctx, "1")
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}
	if result.TotalVotes != 3 {
		t.Errorf("totalVotes = %d, want 3", result.TotalVotes)
	}
	wantCounts := map[string]int{"xavier": 2, "yolanda": 1}
	if !reflect.DeepEqual(result.VoteCounts, wantCounts) {
		t.Errorf("voteCounts = %v, want %v", result.VoteCounts, wantCounts)
	}
	if !reflect.DeepEqual(result.MostVoted, []string{"xavier"}) {
		t.Errorf("mostVoted = %v, want [xavier]", result.MostVoted)
	}
}

func TestVote_TallyTieReturnsAllLeaders(t *testing.T) {
	svc, _, _ := newVoteService()
	ctx := context.Background()

	if _, err := svc.Record(ctx, "1", "alice", "xavier"); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if _, err := svc.Record(ctx, "1", "bob", "yolanda"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	result, err := svc.Tally(ctx, "1")
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}
	if !reflect.DeepEqual(result.MostVoted, []string{"xavier", "yolanda"}) {
		t.Errorf("mostVoted = %v, want [xavier yolanda]", result.MostVoted)
	}
}

func TestVote_TallyNoVotes(t *testing.T) {
	svc, _, _ := newVoteService()
	if _, err := svc.Tally(context.Background(), "1"); err != ErrNoVotes {
		t.Errorf("err = %v, want ErrNoVotes", err)
	}
}

func TestVote_MembershipValidation(t *testing.T) {
	svc, game, _ := newVoteService()
	ctx := context.Background()
	if _, err := game.AssignWords(ctx, "1", []string{"alice", "bob", "carol"}); err != nil {
		t.Fatalf("AssignWords error: %v", err)
	}

	if _, err := svc.Record(ctx, "1", "mallory", "alice"); err != ErrNotAPlayer {
		t.Errorf("outsider voter: err = %v, want ErrNotAPlayer", err)
	}
	if _, err := svc.Record(ctx, "1", "alice", "mallory"); err != ErrNotAPlayer {
		t.Errorf("outsider target: err = %v, want ErrNotAPlayer", err)
	}
	if _, err := svc.Record(ctx, "1", "alice", "bob"); err != nil {
		t.Errorf("member vote: err = %v", err)
	}
}

func TestVote_EmitsNotification(t *testing.T) {
	svc, _, n := newVoteService()
	if _, err := svc.Record(context.Background(), "1", "alice", "bob"); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	events := n.byEvent(notify.EventVoteReceived)
	if len(events) != 1 {
		t.Fatalf("got %d vote-received events, want 1", len(events))
	}
	payload, ok := events[0].Payload.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", events[0].Payload)
	}
	if payload["voteCount"] != 1 {
		t.Errorf("voteCount = %v, want 1", payload["voteCount"])
	}
}

func TestVote_ExpiredRoomSkipsMembershipValidation(t *testing.T) {
	store := repo.NewMemoryGameRepo()
	n := &recordingNotifier{}
	clock := clockwork.NewFakeClock()
	vote := NewVoteService(store, n, clock, testTTLSec)
	game := NewGameService(store, n, clock, NewShuffler(), testTTLSec)
	ctx := context.Background()

	if _, err := game.AssignWords(ctx, "1", []string{"alice", "bob", "carol"}); err != nil {
		t.Fatalf("AssignWords error: %v", err)
	}
	if _, err := vote.Record(ctx, "1", "mallory", "alice"); err != ErrNotAPlayer {
		t.Fatalf("outsider before expiry: err = %v, want ErrNotAPlayer", err)
	}

	// 保持期間を過ぎたルームの割り当てはもう検証に使われない
	clock.Advance(time.Duration(testTTLSec)*time.Second + time.Second)
	count, err := vote.Record(ctx, "1", "mallory", "alice")
	if err != nil {
		t.Fatalf("vote after expiry: err = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// ゲーム状態は日和見的に削除されている
	if _, ok, err := store.GetGame(ctx, "1"); err != nil || ok {
		t.Errorf("expired game still present: ok=%v err=%v", ok, err)
	}
}
