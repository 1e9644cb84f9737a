package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

// NoticeCookie carries the success toast across the post/redirect/get hop.
const NoticeCookie = "eventforms_notice"

func putNotice(w http.ResponseWriter, n pipeline.Notification) {
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     NoticeCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice reads and clears the pending toast, if any.
func takeNotice(w http.ResponseWriter, r *http.Request) *pipeline.Notification {
	c, err := r.Cookie(NoticeCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     NoticeCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var n pipeline.Notification
	if err := json.Unmarshal(raw, &n); err != nil || n.Title == "" {
		return nil
	}
	return &n
}
