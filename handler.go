package main

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const bodyPrefix = "BARQ Lite OK: "

// rootHandler answers every request with 200 and the current instant. It is
// mounted directly on the server, so paths reach it exactly as sent.
type rootHandler struct {
	events *EventLog
	now    func() time.Time
}

func newRootHandler(events *EventLog) *rootHandler {
	return &rootHandler{events: events, now: time.Now}
}

func (h *rootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := bodyPrefix + h.now().UTC().Format(time.RFC3339Nano) + "\n"

	h.events.Logf("Request from %s %s %s", r.RemoteAddr, r.Method, r.RequestURI)

	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		logrus.Debugf("Failed to write response to %s: %v", r.RemoteAddr, err)
	}
}
