package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/queuecast/queuecast/internal/hub"
	"github.com/queuecast/queuecast/internal/present"
	"github.com/queuecast/queuecast/internal/resolve"
	"github.com/queuecast/queuecast/internal/search"
)

// initState is the connection-time snapshot, unicast to the new client only.
type initState struct {
	DefaultID string `json:"defaultId"`
}

// selectPayload is the body of select-video and select-default messages.
type selectPayload struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

func serveWS(d Deps, w http.ResponseWriter, r *http.Request) {
	d.Hub.ServeWS(w, r,
		func(c *hub.Client) {
			c.Send(hub.Event{
				Type:    hub.EventInitState,
				Payload: initState{DefaultID: d.State.Default()},
			})
		},
		func(c *hub.Client, msgType string, payload json.RawMessage) {
			handleSocketMessage(d, c, msgType, payload)
		},
	)
}

// handleSocketMessage dispatches one inbound browser message. Text input may
// suspend inside the search call, so it runs on its own goroutine; the read
// pump stays free for the next message.
func handleSocketMessage(d Deps, c *hub.Client, msgType string, payload json.RawMessage) {
	switch msgType {
	case "client-input":
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			log.Printf("HTTP: client %s bad input payload: %v", c.ID, err)
			return
		}
		go d.Flow.HandleText(context.Background(), text, resolve.OriginWeb, &webSession{client: c})

	case "select-video":
		sel, ok := decodeSelect(c, payload)
		if !ok {
			return
		}
		d.Flow.HandleSelection(sel.VideoID, sel.Title, present.IntentAppendQueue, resolve.OriginWeb, &webSession{client: c})

	case "select-default":
		sel, ok := decodeSelect(c, payload)
		if !ok {
			return
		}
		d.Flow.HandleSelection(sel.VideoID, sel.Title, present.IntentSetDefault, resolve.OriginWeb, &webSession{client: c})

	default:
		log.Printf("HTTP: client %s sent unknown message type %q", c.ID, msgType)
	}
}

func decodeSelect(c *hub.Client, payload json.RawMessage) (selectPayload, bool) {
	var sel selectPayload
	if err := json.Unmarshal(payload, &sel); err != nil {
		log.Printf("HTTP: client %s bad select payload: %v", c.ID, err)
		return selectPayload{}, false
	}
	return sel, true
}

// webSession is the web-channel implementation of resolve.Session. There is
// no reply mechanism on a push-only socket, so Reply is a no-op; candidates
// are unicast to the requesting client, never broadcast.
type webSession struct {
	client *hub.Client
}

func (s *webSession) Reply(string) {}

func (s *webSession) PresentCandidates(cands []search.Candidate, intent present.Intent) {
	evType := hub.EventSearchResults
	if intent == present.IntentSetDefault {
		evType = hub.EventSearchResultsDefault
	}
	s.client.Send(hub.Event{Type: evType, Payload: present.ResultList(cands, intent)})
}
