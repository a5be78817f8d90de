// Package linebot adapts the LINE messaging webhook to the resolution flow.
// Signature verification and reply delivery belong to the SDK; this layer
// only maps webhook events onto the same Flow calls the web channel uses.
package linebot

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/queuecast/queuecast/internal/present"
	"github.com/queuecast/queuecast/internal/resolve"
	"github.com/queuecast/queuecast/internal/search"
)

// Handler is the webhook endpoint for the LINE channel.
type Handler struct {
	flow   *resolve.Flow
	api    *messaging_api.MessagingApiAPI
	secret string
}

// New builds the handler. Fails only when the SDK rejects the token.
func New(channelSecret, channelToken string, flow *resolve.Flow) (*Handler, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, err
	}
	return &Handler{flow: flow, api: api, secret: channelSecret}, nil
}

// ServeHTTP handles one webhook delivery. A malformed item is logged and
// skipped; the remaining items in the batch still run.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.secret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			log.Printf("LINE: invalid signature")
			w.WriteHeader(http.StatusBadRequest)
		} else {
			log.Printf("LINE: parse request: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	for _, event := range cb.Events {
		h.handleEvent(r.Context(), event)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleEvent(ctx context.Context, event webhook.EventInterface) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		m, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			return // stickers, images etc. carry no command
		}
		s := &session{api: h.api, replyToken: e.ReplyToken}
		h.flow.HandleText(ctx, m.Text, resolve.OriginMessaging, s)

	case webhook.PostbackEvent:
		sel, ok := present.DecodePostback(e.Postback.Data)
		if !ok {
			log.Printf("LINE: unrecognized postback data %q", e.Postback.Data)
			return
		}
		s := &session{api: h.api, replyToken: e.ReplyToken}
		h.flow.HandleSelection(sel.VideoID, sel.Title, sel.Intent, resolve.OriginMessaging, s)
	}
}

// session is the messaging-channel implementation of resolve.Session. The
// reply token is single-use; the flow contacts the caller at most once per
// request, either a text reply or a carousel.
type session struct {
	api        *messaging_api.MessagingApiAPI
	replyToken string
}

func (s *session) Reply(text string) {
	s.reply(messaging_api.TextMessage{Text: text})
}

func (s *session) PresentCandidates(cands []search.Candidate, intent present.Intent) {
	s.reply(present.Carousel(cands, intent))
}

func (s *session) reply(msg messaging_api.MessageInterface) {
	_, err := s.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: s.replyToken,
		Messages:   []messaging_api.MessageInterface{msg},
	})
	if err != nil {
		log.Printf("LINE: reply failed: %v", err)
	}
}
