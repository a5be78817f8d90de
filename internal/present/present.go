// Package present projects search candidates into channel-specific choice
// sets. No business decision is made here: every choice carries the intent
// the caller resolved, and confirming a choice re-enters the flow elsewhere.
package present

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/queuecast/queuecast/internal/search"
)

// Intent is the mutation a confirmed selection will perform.
type Intent string

const (
	IntentAppendQueue Intent = "append"
	IntentSetDefault  Intent = "default"
)

// LINE carousel limits.
const (
	maxColumnTitle = 40
	maxColumnText  = 60
	maxActionLabel = 20
)

// Selection is a decoded postback payload.
type Selection struct {
	VideoID string
	Title   string
	Intent  Intent
}

// Carousel renders candidates as a LINE carousel template, one card per
// candidate. Card text and action label differ by intent so a pending
// set-default choice cannot be mistaken for an append.
func Carousel(cands []search.Candidate, intent Intent) messaging_api.MessageInterface {
	colText, label := "キューに追加します", "追加"
	if intent == IntentSetDefault {
		colText, label = "デフォルト曲に設定します", "設定"
	}

	columns := make([]messaging_api.CarouselColumn, 0, len(cands))
	for _, c := range cands {
		columns = append(columns, messaging_api.CarouselColumn{
			ThumbnailImageUrl: c.ThumbnailURL,
			Title:             truncateRunes(c.Title, maxColumnTitle),
			Text:              truncateRunes(colText, maxColumnText),
			Actions: []messaging_api.ActionInterface{
				&messaging_api.PostbackAction{
					Label:       label,
					Data:        EncodePostback(c.VideoID, c.Title, intent),
					DisplayText: fmt.Sprintf("%s: %s", label, truncateRunes(c.Title, maxColumnTitle)),
				},
			},
		})
	}

	return &messaging_api.TemplateMessage{
		AltText: "検索結果",
		Template: &messaging_api.CarouselTemplate{
			Columns: columns,
		},
	}
}

// ResultListPayload is the web-channel projection: a plain ordered candidate
// list plus the intent tag, left to the client UI to render and confirm.
type ResultListPayload struct {
	Intent     Intent             `json:"intent"`
	Candidates []search.Candidate `json:"candidates"`
}

// ResultList tags candidates with the intent for the web channel.
func ResultList(cands []search.Candidate, intent Intent) ResultListPayload {
	return ResultListPayload{Intent: intent, Candidates: cands}
}

// maxPostbackData is LINE's byte limit for postback action data.
const maxPostbackData = 300

// EncodePostback packs a selection into an opaque postback data string.
// The title is trimmed rune by rune until the encoded form fits LINE's
// 300-byte cap (multibyte titles triple in size under percent-encoding).
func EncodePostback(videoID, title string, intent Intent) string {
	title = truncateRunes(title, maxColumnTitle)
	for {
		v := url.Values{}
		v.Set("v", videoID)
		v.Set("i", string(intent))
		v.Set("t", title)
		data := v.Encode()
		if len(data) <= maxPostbackData || title == "" {
			return data
		}
		runes := []rune(title)
		title = string(runes[:len(runes)-1])
	}
}

// DecodePostback unpacks EncodePostback's output. ok is false for payloads
// this process did not produce.
func DecodePostback(data string) (Selection, bool) {
	v, err := url.ParseQuery(data)
	if err != nil {
		return Selection{}, false
	}
	sel := Selection{
		VideoID: v.Get("v"),
		Title:   v.Get("t"),
		Intent:  Intent(v.Get("i")),
	}
	if sel.VideoID == "" {
		return Selection{}, false
	}
	if sel.Intent != IntentAppendQueue && sel.Intent != IntentSetDefault {
		return Selection{}, false
	}
	return sel, true
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
