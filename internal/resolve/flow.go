// Package resolve implements the command resolution shared by both input
// channels. The LINE webhook and the websocket handler feed the same Flow;
// only the Session capability differs, so the two channels cannot drift.
package resolve

import (
	"context"
	"log"

	"github.com/queuecast/queuecast/internal/command"
	"github.com/queuecast/queuecast/internal/hub"
	"github.com/queuecast/queuecast/internal/player"
	"github.com/queuecast/queuecast/internal/present"
	"github.com/queuecast/queuecast/internal/search"
)

// Origin tags which channel a request came from.
type Origin string

const (
	OriginMessaging Origin = "line"
	OriginWeb       Origin = "web"
)

// Request is the add-queue broadcast payload: one accepted playback request.
type Request struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
	Source  Origin `json:"source"`
}

// User-visible reply strings for the messaging channel.
const (
	ReplyQueued         = "リクエストを受け付けました"
	ReplyDefaultChanged = "デフォルト曲を変更しました"
	ReplyNotFound       = "見つかりませんでした"
	ReplySearchFailed   = "検索に失敗しました。もう一度お試しください"
)

// Searcher is the search-provider contract. A nil Searcher on the Flow means
// search is not configured and every search-dependent branch is unreachable.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Candidate, error)
}

// Publisher is the broadcast side of the hub.
type Publisher interface {
	Publish(hub.Event)
}

// Recorder persists chat and comment lines for reconnecting clients.
type Recorder interface {
	Record(kind, body string)
}

// Session is what a single request can do toward its own caller. Reply is a
// no-op on the web channel (results are pushed, there is nothing to reply
// to); PresentCandidates unicasts on web and replies a carousel on LINE.
type Session interface {
	Reply(text string)
	PresentCandidates(cands []search.Candidate, intent present.Intent)
}

// Flow wires the shared state, the hub, and the optional collaborators.
type Flow struct {
	State   *player.State
	Hub     Publisher
	Search  Searcher // nil: search unavailable
	History Recorder // nil: history disabled
}

// HandleText resolves one line of free-form input from either channel.
func (f *Flow) HandleText(ctx context.Context, raw string, origin Origin, s Session) {
	cmd := command.Classify(raw)
	log.Printf("RESOLVE: [%s] %s command: %q", origin, cmd.Kind, cmd.Payload)

	switch cmd.Kind {
	case command.KindDefault:
		f.handleDefault(ctx, cmd.Payload, s)

	case command.KindComment:
		f.record("comment", cmd.Payload)
		f.Hub.Publish(hub.Event{Type: hub.EventFlowComment, Payload: cmd.Payload})

	case command.KindControl:
		f.record("chat", cmd.Payload)
		f.Hub.Publish(hub.Event{Type: hub.EventChatMessage, Payload: cmd.Payload})
		s.Reply(ReplyQueued)

	case command.KindSearch:
		if f.Search == nil {
			log.Printf("RESOLVE: %v, dropping query", search.ErrNotConfigured)
			return
		}
		cands, err := f.Search.Search(ctx, cmd.Payload)
		if err != nil {
			log.Printf("RESOLVE: search failed: %v", err)
			s.Reply(ReplySearchFailed)
			return
		}
		if len(cands) == 0 {
			s.Reply(ReplyNotFound)
			return
		}
		s.PresentCandidates(cands, present.IntentAppendQueue)
	}
}

// handleDefault resolves a default-change command: a direct link mutates the
// state immediately; a bare keyword goes through search, and the candidates
// return to the caller alone, never broadcast.
func (f *Flow) handleDefault(ctx context.Context, arg string, s Session) {
	if id, ok := command.ExtractVideoID(arg); ok {
		f.State.SetDefault(id)
		s.Reply(ReplyDefaultChanged)
		return
	}
	if f.Search == nil {
		// Silent no-op toward the caller, not an error.
		log.Printf("RESOLVE: %v, ignoring default keyword", search.ErrNotConfigured)
		return
	}
	cands, err := f.Search.Search(ctx, arg)
	if err != nil {
		log.Printf("RESOLVE: default search failed: %v", err)
		s.Reply(ReplySearchFailed)
		return
	}
	if len(cands) == 0 {
		s.Reply(ReplyNotFound)
		return
	}
	s.PresentCandidates(cands, present.IntentSetDefault)
}

// HandleSelection is the confirmation of a previously presented candidate,
// from either channel. It re-enters the mutation step of the flow.
func (f *Flow) HandleSelection(videoID, title string, intent present.Intent, origin Origin, s Session) {
	if len(videoID) != 11 {
		log.Printf("RESOLVE: [%s] rejecting selection with bad id %q", origin, videoID)
		return
	}
	switch intent {
	case present.IntentSetDefault:
		f.State.SetDefault(videoID)
		s.Reply(ReplyDefaultChanged)
	case present.IntentAppendQueue:
		f.Hub.Publish(hub.Event{
			Type:    hub.EventAddQueue,
			Payload: Request{VideoID: videoID, Title: title, Source: origin},
		})
		s.Reply(ReplyQueued)
	default:
		log.Printf("RESOLVE: [%s] unknown selection intent %q", origin, intent)
	}
}

func (f *Flow) record(kind, body string) {
	if f.History != nil {
		f.History.Record(kind, body)
	}
}
