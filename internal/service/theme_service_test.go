package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/nyk9/shuwa-word-wolf-api/internal/words"
)

func newThemeService() (*ThemeService, *recordingNotifier) {
	n := &recordingNotifier{}
	svc := NewThemeService(repo.NewMemoryGameRepo(), n, clockwork.NewFakeClock(), FixedHost("rustacean"), NewShuffler())
	return svc, n
}

func TestTheme_Select(t *testing.T) {
	svc, n := newThemeService()
	ctx := context.Background()

	if err := svc.Select(ctx, "1", 1, ""); err != nil {
		t.Errorf("anonymous select: err = %v", err)
	}
	if err := svc.Select(ctx, "1", 1, "rustacean"); err != nil {
		t.Errorf("host select: err = %v", err)
	}
	if err := svc.Select(ctx, "1", 1, "mallory"); err != ErrNotHost {
		t.Errorf("non-host select: err = %v, want ErrNotHost", err)
	}
	if err := svc.Select(ctx, "1", 999, ""); err != ErrThemeNotFound {
		t.Errorf("unknown word: err = %v, want ErrThemeNotFound", err)
	}

	if got := len(n.byEvent(notify.EventThemeSelected)); got != 2 {
		t.Errorf("got %d theme-selected events, want 2", got)
	}
}

func TestTheme_UsedThemesLifecycle(t *testing.T) {
	svc, n := newThemeService()
	ctx := context.Background()

	used, err := svc.MarkUsed(ctx, 2)
	if err != nil {
		t.Fatalf("MarkUsed error: %v", err)
	}
	if !reflect.DeepEqual(used, []int{2}) {
		t.Errorf("used = %v, want [2]", used)
	}

	// 同じお題を二重登録しても増えない
	if used, err = svc.MarkUsed(ctx, 2); err != nil {
		t.Fatalf("MarkUsed error: %v", err)
	}
	if !reflect.DeepEqual(used, []int{2}) {
		t.Errorf("used after dup = %v, want [2]", used)
	}

	if _, err = svc.MarkUsed(ctx, 3); err != nil {
		t.Fatalf("MarkUsed error: %v", err)
	}
	got, err := svc.UsedThemes(ctx)
	if err != nil {
		t.Fatalf("UsedThemes error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("used = %v, want [2 3]", got)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	got, err = svc.UsedThemes(ctx)
	if err != nil {
		t.Fatalf("UsedThemes error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("used after reset = %v, want empty", got)
	}

	if len(n.byEvent(notify.EventThemeUsed)) != 3 {
		t.Errorf("expected 3 theme-used events")
	}
	if len(n.byEvent(notify.EventThemesReset)) != 1 {
		t.Errorf("expected a themes-reset event")
	}
}

func TestTheme_WordListFlagsUsage(t *testing.T) {
	svc, _ := newThemeService()
	ctx := context.Background()

	if _, err := svc.MarkUsed(ctx, 1); err != nil {
		t.Fatalf("MarkUsed error: %v", err)
	}
	list, err := svc.WordList(ctx)
	if err != nil {
		t.Fatalf("WordList error: %v", err)
	}
	if len(list) != len(words.List) {
		t.Fatalf("got %d words, want %d", len(list), len(words.List))
	}
	for _, w := range list {
		if w.IsUsed != (w.ID == 1) {
			t.Errorf("word %d: isUsed = %v", w.ID, w.IsUsed)
		}
	}
}
