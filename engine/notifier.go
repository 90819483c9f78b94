package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// Notifier delivers an emergency escalation to a user's registered contacts.
// It reports whether at least one delivery went out; the engine treats any
// failure as "not sent" and never lets it fail the triggering operation.
type Notifier interface {
	Notify(user *models.User, contacts []models.EmergencyContact, alertCount int, startLocation, endLocation string) bool
}

// EmailNotifier sends escalation mail through the SMTP mailer to every
// contact with an email channel. SMS contacts are skipped; an SMS provider
// was never wired up.
type EmailNotifier struct {
	log *zap.SugaredLogger
}

// NewEmailNotifier creates an EmailNotifier. A nil logger is replaced with a
// no-op one.
func NewEmailNotifier(log *zap.SugaredLogger) *EmailNotifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &EmailNotifier{log: log}
}

func (n *EmailNotifier) Notify(user *models.User, contacts []models.EmergencyContact, alertCount int, startLocation, endLocation string) bool {
	subject := "DriveGuard emergency alert"
	body := fmt.Sprintf(
		"DriveGuard detected repeated drowsiness alerts for %s.\n\n"+
			"Alerts this trip: %d\nRoute: %s -> %s\n\n"+
			"Please try to reach them and make sure they take a break.",
		user.Email, alertCount, startLocation, endLocation,
	)

	delivered := false
	for _, c := range contacts {
		if c.Email == "" || c.NotificationType == models.NotifySMS {
			continue
		}
		if err := utils.SendMail(c.Email, subject, body); err != nil {
			n.log.Warnf("emergency mail to %s failed: %v", c.Email, err)
			continue
		}
		delivered = true
	}
	return delivered
}
