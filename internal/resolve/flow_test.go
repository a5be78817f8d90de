package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/queuecast/queuecast/internal/hub"
	"github.com/queuecast/queuecast/internal/player"
	"github.com/queuecast/queuecast/internal/present"
	"github.com/queuecast/queuecast/internal/search"
)

type fakePub struct {
	events []hub.Event
}

func (p *fakePub) Publish(ev hub.Event) { p.events = append(p.events, ev) }

type fakeSearch struct {
	results []search.Candidate
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, q string) ([]search.Candidate, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

type fakeSession struct {
	replies   []string
	presented []present.ResultListPayload
}

func (s *fakeSession) Reply(text string) { s.replies = append(s.replies, text) }
func (s *fakeSession) PresentCandidates(c []search.Candidate, i present.Intent) {
	s.presented = append(s.presented, present.ResultList(c, i))
}

func newFlow(srch Searcher) (*Flow, *fakePub) {
	pub := &fakePub{}
	f := &Flow{
		State: player.New("", pub),
		Hub:   pub,
	}
	if srch != nil {
		f.Search = srch
	}
	return f, pub
}

func TestDefaultWithDirectLink(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleText(context.Background(), "default https://youtu.be/dQw4w9WgXcQ", OriginMessaging, s)

	if got := f.State.Default(); got != "dQw4w9WgXcQ" {
		t.Fatalf("default = %q", got)
	}
	if len(pub.events) != 1 || pub.events[0].Type != hub.EventUpdateDefault {
		t.Fatalf("events = %+v, want one update-default", pub.events)
	}
	if len(s.replies) != 1 || s.replies[0] != ReplyDefaultChanged {
		t.Fatalf("replies = %v", s.replies)
	}
}

func TestDefaultKeywordWithoutSearchIsSilentNoop(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleText(context.Background(), "default lofi beats", OriginMessaging, s)

	if f.State.Default() != player.FallbackVideoID {
		t.Fatal("state mutated")
	}
	if len(pub.events) != 0 {
		t.Fatalf("broadcast fired: %+v", pub.events)
	}
	if len(s.replies) != 0 || len(s.presented) != 0 {
		t.Fatalf("caller was contacted: %v %v", s.replies, s.presented)
	}
}

func TestDefaultKeywordPresentsSetDefaultCandidates(t *testing.T) {
	srch := &fakeSearch{results: []search.Candidate{{VideoID: "aaaaaaaaaaa", Title: "A"}}}
	f, pub := newFlow(srch)
	s := &fakeSession{}

	f.HandleText(context.Background(), "default lofi beats", OriginMessaging, s)

	if len(s.presented) != 1 || s.presented[0].Intent != present.IntentSetDefault {
		t.Fatalf("presented = %+v", s.presented)
	}
	// Pending candidates are personal: nothing broadcast, nothing mutated.
	if len(pub.events) != 0 {
		t.Fatalf("broadcast fired: %+v", pub.events)
	}
	if srch.queries[0] != "lofi beats" {
		t.Fatalf("searched %q", srch.queries[0])
	}
}

func TestSequentialDefaultChangesLastWriteWins(t *testing.T) {
	f, _ := newFlow(nil)
	s := &fakeSession{}
	f.HandleText(context.Background(), "default https://youtu.be/aaaaaaaaaaa", OriginWeb, s)
	f.HandleText(context.Background(), "default https://youtu.be/bbbbbbbbbbb", OriginWeb, s)
	if got := f.State.Default(); got != "bbbbbbbbbbb" {
		t.Fatalf("default = %q, want B", got)
	}
}

func TestCommentBroadcastsVerbatim(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleText(context.Background(), "#great track", OriginWeb, s)

	if len(pub.events) != 1 || pub.events[0].Type != hub.EventFlowComment {
		t.Fatalf("events = %+v", pub.events)
	}
	if pub.events[0].Payload != "#great track" {
		t.Fatalf("payload = %v", pub.events[0].Payload)
	}
	if len(s.replies) != 0 {
		t.Fatalf("comment replied: %v", s.replies)
	}
}

func TestControlBroadcastsChatLine(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleText(context.Background(), "スキップ", OriginMessaging, s)

	if len(pub.events) != 1 || pub.events[0].Type != hub.EventChatMessage {
		t.Fatalf("events = %+v", pub.events)
	}
	if len(s.replies) != 1 || s.replies[0] != ReplyQueued {
		t.Fatalf("replies = %v", s.replies)
	}
}

func TestSearchQueryEmptyResultRepliesNotFound(t *testing.T) {
	f, pub := newFlow(&fakeSearch{})
	s := &fakeSession{}

	f.HandleText(context.Background(), "no such song", OriginMessaging, s)

	if len(s.replies) != 1 || s.replies[0] != ReplyNotFound {
		t.Fatalf("replies = %v", s.replies)
	}
	if len(pub.events) != 0 {
		t.Fatalf("broadcast fired: %+v", pub.events)
	}
}

func TestSearchQueryProviderErrorRepliesGenericFailure(t *testing.T) {
	f, _ := newFlow(&fakeSearch{err: errors.New("upstream timeout")})
	s := &fakeSession{}

	f.HandleText(context.Background(), "some song", OriginMessaging, s)

	if len(s.replies) != 1 || s.replies[0] != ReplySearchFailed {
		t.Fatalf("replies = %v", s.replies)
	}
}

func TestSearchQueryPresentsAppendCandidates(t *testing.T) {
	srch := &fakeSearch{results: []search.Candidate{
		{VideoID: "aaaaaaaaaaa", Title: "A"},
		{VideoID: "bbbbbbbbbbb", Title: "B"},
	}}
	f, _ := newFlow(srch)
	s := &fakeSession{}

	f.HandleText(context.Background(), "ＹＯＡＳＯＢＩ 夜に駆ける", OriginWeb, s)

	if len(s.presented) != 1 || s.presented[0].Intent != present.IntentAppendQueue {
		t.Fatalf("presented = %+v", s.presented)
	}
	// Search must receive the original text, not the normalized form.
	if srch.queries[0] != "ＹＯＡＳＯＢＩ 夜に駆ける" {
		t.Fatalf("searched %q", srch.queries[0])
	}
}

func TestSelectionAppendBroadcastsTaggedRequest(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleSelection("dQw4w9WgXcQ", "Song", present.IntentAppendQueue, OriginMessaging, s)

	if len(pub.events) != 1 || pub.events[0].Type != hub.EventAddQueue {
		t.Fatalf("events = %+v", pub.events)
	}
	req := pub.events[0].Payload.(Request)
	if req.VideoID != "dQw4w9WgXcQ" || req.Source != OriginMessaging {
		t.Fatalf("request = %+v", req)
	}
}

func TestSelectionSetDefaultMutatesAndBroadcasts(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleSelection("dQw4w9WgXcQ", "Song", present.IntentSetDefault, OriginWeb, s)

	if f.State.Default() != "dQw4w9WgXcQ" {
		t.Fatalf("default = %q", f.State.Default())
	}
	if len(pub.events) != 1 || pub.events[0].Type != hub.EventUpdateDefault {
		t.Fatalf("events = %+v", pub.events)
	}
}

func TestSelectionRejectsMalformedID(t *testing.T) {
	f, pub := newFlow(nil)
	s := &fakeSession{}

	f.HandleSelection("short", "Song", present.IntentAppendQueue, OriginWeb, s)

	if len(pub.events) != 0 || len(s.replies) != 0 {
		t.Fatalf("malformed id was accepted: %+v %v", pub.events, s.replies)
	}
}
