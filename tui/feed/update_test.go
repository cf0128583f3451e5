package feed

import (
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
)

func TestLoaded_NewestFirstAndDecorated(t *testing.T) {
	m := newTestModel(&stubStore{}, nil)
	m = loaded(m, post("a", 30), post("c", 1), post("b", 10))

	if got := ids(m.Posts()); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("expected newest first, got %v", got)
	}
	for _, p := range m.Posts() {
		if p.AuthorName != domain.DefaultUser.Name {
			t.Fatalf("expected author name %q, got %q", domain.DefaultUser.Name, p.AuthorName)
		}
	}
}

func TestLoaded_EqualTimestampsTieBreakOnID(t *testing.T) {
	m := newTestModel(&stubStore{}, nil)
	m = loaded(m, post("1", 5), post("3", 5), post("2", 5))
	if got := ids(m.Posts()); !reflect.DeepEqual(got, []string{"3", "2", "1"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRefresh_StaleResponseDropped(t *testing.T) {
	m := newTestModel(&stubStore{}, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	first := m.reqSeq
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	m, _ = m.Update(PostsLoadedMsg{Posts: []domain.Post{post("new", 1)}, ReqSeq: m.reqSeq})
	m, _ = m.Update(PostsLoadedMsg{Posts: []domain.Post{post("old", 9)}, ReqSeq: first})

	if got := ids(m.Posts()); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("stale refresh must not win, got %v", got)
	}
	if m.Loading() {
		t.Fatalf("expected loading cleared")
	}
}

func TestRefresh_ErrorKeepsPosts(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 1))
	cmd := m.refresh()
	if cmd == nil {
		t.Fatalf("expected fetch command")
	}
	m, _ = m.Update(PostsErrorMsg{Err: errRemote, ReqSeq: m.reqSeq})
	if m.Err() == nil || len(m.Posts()) != 1 {
		t.Fatalf("expected error surfaced and posts kept")
	}
}

func TestFetch_UsesStore(t *testing.T) {
	store := &stubStore{posts: []domain.Post{post("x", 1)}}
	m := newTestModel(store, nil)
	msg := m.refresh()()
	got, ok := msg.(PostsLoadedMsg)
	if !ok || len(got.Posts) != 1 || got.ReqSeq != m.reqSeq {
		t.Fatalf("unexpected fetch result: %#v", msg)
	}
	store.err = errRemote
	if _, ok := m.refresh()().(PostsErrorMsg); !ok {
		t.Fatalf("expected PostsErrorMsg on store failure")
	}
}

func subscribed(t *testing.T, m Model) (Model, *stubSub) {
	t.Helper()
	msg := m.subscribe()()
	sm, ok := msg.(SubscribedMsg)
	if !ok {
		t.Fatalf("expected SubscribedMsg, got %#v", msg)
	}
	m, _ = m.Update(sm)
	return m, sm.Sub.(*stubSub)
}

func TestNotification_TriggersExactlyOneRefresh(t *testing.T) {
	m := newTestModel(&stubStore{}, &stubFeed{})
	m, sub := subscribed(t, m)
	before := m.reqSeq

	m, cmd := m.Update(ChangeNotifiedMsg{Event: app.ChangeEvent{Op: app.OpInsert, PostID: "p"}, Sub: sub})
	if m.reqSeq != before+1 {
		t.Fatalf("expected exactly one refresh, seq moved %d", m.reqSeq-before)
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected refresh plus re-armed wait")
	}
}

func TestNotification_FromOldSubscriptionIgnored(t *testing.T) {
	m := newTestModel(&stubStore{}, &stubFeed{})
	m, _ = subscribed(t, m)
	before := m.reqSeq
	m, cmd := m.Update(ChangeNotifiedMsg{Sub: newStubSub()})
	if cmd != nil || m.reqSeq != before {
		t.Fatalf("expected notification from stale subscription to be ignored")
	}
}

func TestWaitForChange_ReportsClose(t *testing.T) {
	sub := newStubSub()
	sub.events <- app.ChangeEvent{Op: app.OpDelete, PostID: "p"}
	if msg, ok := waitForChange(sub)().(ChangeNotifiedMsg); !ok || msg.Event.PostID != "p" {
		t.Fatalf("expected change event")
	}
	sub.err = errRemote
	_ = sub.Close()
	msg, ok := waitForChange(sub)().(SubscriptionClosedMsg)
	if !ok || msg.Err != errRemote {
		t.Fatalf("expected SubscriptionClosedMsg with error")
	}
}

func TestSubscriptionLost_BacksOffThenResyncs(t *testing.T) {
	changes := &stubFeed{}
	m := newTestModel(&stubStore{}, changes)
	m, sub := subscribed(t, m)

	m, cmd := m.Update(SubscriptionClosedMsg{Sub: sub, Err: errRemote})
	if cmd == nil || m.Subscribed() {
		t.Fatalf("expected resubscribe scheduled")
	}
	if m.retryDelay != 2*time.Second {
		t.Fatalf("expected delay doubled to 2s, got %v", m.retryDelay)
	}

	m, cmd = m.Update(resubscribeMsg{})
	if cmd == nil {
		t.Fatalf("expected subscribe command")
	}
	before := m.reqSeq
	m, _ = m.Update(cmd())
	if !m.Subscribed() || len(changes.subs) != 2 {
		t.Fatalf("expected a fresh subscription")
	}
	if m.reqSeq != before+1 {
		t.Fatalf("expected a catch-up refresh after resubscribing")
	}
	if m.retryDelay != minResubscribeDelay {
		t.Fatalf("expected delay reset, got %v", m.retryDelay)
	}
}

func TestSubscribeError_DelayIsCapped(t *testing.T) {
	m := newTestModel(&stubStore{}, &stubFeed{err: errRemote})
	for i := 0; i < 10; i++ {
		m, _ = m.Update(SubscribeErrorMsg{Err: errRemote})
	}
	if m.retryDelay != maxResubscribeDelay {
		t.Fatalf("expected capped delay, got %v", m.retryDelay)
	}
}

func TestClose_StopsSubscription(t *testing.T) {
	m := newTestModel(&stubStore{}, &stubFeed{})
	m, sub := subscribed(t, m)
	m = m.Close()
	if !sub.closed {
		t.Fatalf("expected subscription closed")
	}
	if _, cmd := m.Update(SubscriptionClosedMsg{Sub: sub}); cmd != nil {
		t.Fatalf("closed feed must not resubscribe")
	}
	late := newStubSub()
	m, _ = m.Update(SubscribedMsg{Sub: late})
	if !late.closed || m.Subscribed() {
		t.Fatalf("late subscription must be closed immediately")
	}
}

func TestMenu_AtMostOneOpen(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 1), post("b", 2))
	m = m.ToggleMenu(0)
	m = m.ToggleMenu(1)
	if m.OpenMenu() != 1 {
		t.Fatalf("expected only menu 1 open, got %d", m.OpenMenu())
	}
	m = m.ToggleMenu(1)
	if m.OpenMenu() != -1 {
		t.Fatalf("expected menus closed")
	}
}

func TestRemove_EmitsDeleteAndClosesMenu(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 1), post("b", 2))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if m.OpenMenu() != 1 {
		t.Fatalf("expected menu on cursor")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected delete command")
	}
	msg, ok := cmd().(DeletePostMsg)
	if !ok || msg.ID != "b" || msg.Index != 1 {
		t.Fatalf("unexpected delete msg: %#v", msg)
	}
	if m.OpenMenu() != -1 {
		t.Fatalf("menu must close on selection")
	}
}

func TestRemove_WithoutIDIsNoOp(t *testing.T) {
	p := post("", 1)
	m := loaded(newTestModel(&stubStore{}, nil), p)
	if _, cmd := m.Remove(0); cmd != nil {
		t.Fatalf("expected no delete for a post without id")
	}
}

func TestDeleteResult(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 1), post("b", 2), post("c", 3))
	m = m.ToggleMenu(2)

	failed, _ := m.Update(DeleteResultMsg{ID: "b", Err: errRemote})
	if len(failed.Posts()) != 3 {
		t.Fatalf("failed delete must keep the post")
	}

	m, _ = m.Update(DeleteResultMsg{ID: "b"})
	if got := ids(m.Posts()); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("expected b removed, got %v", got)
	}
	if m.OpenMenu() != 1 {
		t.Fatalf("open menu must follow its post, got %d", m.OpenMenu())
	}
}

func TestPostCreated_PrependsOnce(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 5))
	created := post("z", 0)
	m, _ = m.Update(PostCreatedMsg{Post: created})
	m, _ = m.Update(PostCreatedMsg{Post: created})
	got := m.Posts()
	if !reflect.DeepEqual(ids(got), []string{"z", "a"}) {
		t.Fatalf("unexpected posts: %v", ids(got))
	}
	if got[0].AuthorName != domain.DefaultUser.Name {
		t.Fatalf("created post must be decorated")
	}
}

func TestRefresh_ClosesMenuWhenPostMoves(t *testing.T) {
	m := loaded(newTestModel(&stubStore{}, nil), post("a", 1), post("b", 2))
	m = m.ToggleMenu(0)
	m = loaded(m, post("new", 0), post("a", 1), post("b", 2))
	if m.OpenMenu() != -1 {
		t.Fatalf("expected menu closed when its index now holds another post")
	}
}

func TestLocalWrite_InvalidatesInFlightRefresh(t *testing.T) {
	m := newTestModel(&stubStore{}, nil)
	_ = m.refresh()
	stale := m.reqSeq

	m, cmd := m.Update(PostCreatedMsg{Post: post("z", 0)})
	if cmd == nil || m.reqSeq != stale+1 {
		t.Fatalf("expected in-flight refresh reissued")
	}
	m, _ = m.Update(PostsLoadedMsg{Posts: nil, ReqSeq: stale})
	if len(m.Posts()) != 1 {
		t.Fatalf("refresh issued before the write must not wipe the new post")
	}
}

func TestRefresh_Idempotent(t *testing.T) {
	snapshot := []domain.Post{post("a", 3), post("b", 3), post("c", 1)}
	m := loaded(newTestModel(&stubStore{}, nil), snapshot...)
	first := ids(m.Posts())
	m = loaded(m, snapshot...)
	if !reflect.DeepEqual(first, ids(m.Posts())) {
		t.Fatalf("repeated refresh changed order: %v vs %v", first, ids(m.Posts()))
	}
}

func TestSubscriptionDropped_EndedSubscriptionIsClosed(t *testing.T) {
	changes := &stubFeed{}
	m := newTestModel(&stubStore{}, changes)

	for i := 0; i < 5; i++ {
		var sub *stubSub
		m, sub = subscribed(t, m)
		sub.drop(errRemote)

		var cmd tea.Cmd
		m, cmd = m.Update(waitForChange(sub)())
		if cmd == nil {
			t.Fatalf("cycle %d: expected resubscribe scheduled", i)
		}
		if !sub.closed {
			t.Fatalf("cycle %d: dropped subscription was not closed", i)
		}
		m, _ = m.Update(resubscribeMsg{})
	}
	for i, sub := range changes.subs {
		if !sub.closed {
			t.Fatalf("subscription %d never closed", i)
		}
	}
}
