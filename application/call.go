package application

import (
	"time"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"

	log "github.com/sirupsen/logrus"
)

// Call carries what the host knows about an incoming invocation
type Call struct {
	// Caller is the identity of whoever made the call
	Caller entities.AccountID

	// Attached is the value supplied along with the call, 0 if none
	Attached int64
}

// issueDirective hands the directive to the unit of work's publisher so it is
// only released after commit. Directives that move nothing are dropped.
func issueDirective(publisher interfaces.EventPublisher, directive *entities.PaymentDirective) bool {
	if directive.IsZero() {
		return false
	}

	event := events.PaymentDirectiveEvent{
		Directive: *directive,
		IssuedAt:  time.Now().UTC(),
	}
	if err := publisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"directiveID": directive.ID,
			"recipient":   directive.Recipient,
			"error":       err,
		}).Error("Failed to queue payment directive")
		return false
	}
	return true
}
