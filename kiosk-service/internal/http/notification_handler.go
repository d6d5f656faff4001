package http

import (
	"net/http"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
)

type Notifications interface {
	Current() (domain.Notification, bool)
}

type NotificationHandler struct {
	notifications Notifications
}

func NewNotificationHandler(notifications Notifications) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Get returns the visible notification, or 204 when there is none.
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifications.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, n)
}
