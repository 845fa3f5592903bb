package repo

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
)

func TestMemoryRepo_GameLifecycle(t *testing.T) {
	m := NewMemoryGameRepo()
	ctx := context.Background()

	game := models.Game{
		RoomID:      "1",
		ThemeID:     1,
		Order:       []string{"alice", "bob"},
		Assignments: map[string]models.Assignment{"alice": {Word: "犬", Role: models.RoleMajority}},
		CreatedAt:   100,
	}
	if err := m.SaveGame(ctx, game, 3600); err != nil {
		t.Fatalf("SaveGame error: %v", err)
	}

	got, ok, err := m.GetGame(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("GetGame = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, game) {
		t.Errorf("got %+v, want %+v", got, game)
	}

	ids, err := m.ListGameIDs(ctx)
	if err != nil {
		t.Fatalf("ListGameIDs error: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"1"}) {
		t.Errorf("ids = %v", ids)
	}

	if err := m.DeleteGame(ctx, "1"); err != nil {
		t.Fatalf("DeleteGame error: %v", err)
	}
	if _, ok, _ := m.GetGame(ctx, "1"); ok {
		t.Errorf("game still present after delete")
	}
}

func TestMemoryRepo_Votes(t *testing.T) {
	m := NewMemoryGameRepo()
	ctx := context.Background()

	if _, ok, _ := m.GetVotes(ctx, "1"); ok {
		t.Fatalf("votes present before any PutVote")
	}

	count, err := m.PutVote(ctx, "1", "alice", "bob", 3600)
	if err != nil || count != 1 {
		t.Fatalf("PutVote = %d, %v", count, err)
	}
	count, err = m.PutVote(ctx, "1", "alice", "carol", 3600)
	if err != nil || count != 1 {
		t.Fatalf("overwrite PutVote = %d, %v", count, err)
	}
	count, err = m.PutVote(ctx, "1", "bob", "alice", 3600)
	if err != nil || count != 2 {
		t.Fatalf("second voter PutVote = %d, %v", count, err)
	}

	votes, ok, err := m.GetVotes(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("GetVotes = %v, %v", ok, err)
	}
	want := map[string]string{"alice": "carol", "bob": "alice"}
	if !reflect.DeepEqual(votes, want) {
		t.Errorf("votes = %v, want %v", votes, want)
	}

	// 返したmapは内部状態のコピー
	votes["eve"] = "alice"
	if again, _, _ := m.GetVotes(ctx, "1"); len(again) != 2 {
		t.Errorf("internal vote state mutated through returned map")
	}
}

func TestMemoryRepo_UsedThemes(t *testing.T) {
	m := NewMemoryGameRepo()
	ctx := context.Background()

	for _, id := range []int{3, 1, 3} {
		if err := m.AddUsedTheme(ctx, id); err != nil {
			t.Fatalf("AddUsedTheme error: %v", err)
		}
	}
	got, err := m.ListUsedThemes(ctx)
	if err != nil {
		t.Fatalf("ListUsedThemes error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("used = %v, want [3 1]", got)
	}

	if err := m.ClearUsedThemes(ctx); err != nil {
		t.Fatalf("ClearUsedThemes error: %v", err)
	}
	if got, _ := m.ListUsedThemes(ctx); len(got) != 0 {
		t.Errorf("used after clear = %v", got)
	}
}

func TestMemoryRepo_Users(t *testing.T) {
	m := NewMemoryGameRepo()
	ctx := context.Background()

	added, err := m.AddUser(ctx, "alice")
	if err != nil || !added {
		t.Fatalf("AddUser = %v, %v", added, err)
	}
	added, err = m.AddUser(ctx, "alice")
	if err != nil {
		t.Fatalf("AddUser error: %v", err)
	}
	if added {
		t.Errorf("duplicate AddUser reported as added")
	}

	if _, err := m.AddUser(ctx, "bob"); err != nil {
		t.Fatalf("AddUser error: %v", err)
	}
	users, err := m.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	sort.Strings(users)
	if !reflect.DeepEqual(users, []string{"alice", "bob"}) {
		t.Errorf("users = %v", users)
	}
}

func TestMemoryRepo_Timer(t *testing.T) {
	m := NewMemoryGameRepo()
	ctx := context.Background()

	if _, ok, _ := m.GetTimer(ctx, "1"); ok {
		t.Fatalf("timer present before save")
	}
	timer := models.Timer{RoomID: "1", StartTime: 100, Duration: 240000, Phase: models.PhaseDiscussion, Generation: 1}
	if err := m.SaveTimer(ctx, timer, 3600); err != nil {
		t.Fatalf("SaveTimer error: %v", err)
	}
	got, ok, err := m.GetTimer(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("GetTimer = %v, %v", ok, err)
	}
	if got != timer {
		t.Errorf("got %+v, want %+v", got, timer)
	}
}
