package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// Notifier shows desktop notifications for finished sessions
type Notifier struct {
	log  logrus.FieldLogger
	send func(title, message, icon string) error
}

// New creates a Notifier using the system notification service
func New(log logrus.FieldLogger) *Notifier {
	beeep.AppName = "horas"
	return &Notifier{
		log: log,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// SessionFinished is a tracker finish hook. Delivery failures are logged,
// never returned: a missing notification daemon must not fail a Finish.
func (n *Notifier) SessionFinished(item *models.WorkItem, session *models.Session) {
	defer func() {
		if r := recover(); r != nil {
			n.log.WithField("panic", r).Warn("desktop notification panicked")
		}
	}()

	name := "session"
	if item != nil {
		name = item.Name
	}
	message := fmt.Sprintf("%s: %s tracked", name, timecalc.FormatDuration(session.Accumulated()))

	if err := n.send("Session finished", message, ""); err != nil {
		n.log.WithError(err).Warn("desktop notification failed")
	}
}
