package worker

import (
	"github.com/O-KenneDevWorks/Employee-Manager/internal/events"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/service"
)

// StartEventSubscribers registers the audit log and, when configured, the
// Redis publisher on the dispatcher.
func StartEventSubscribers(dispatcher events.Dispatcher, audit *service.AuditService, publisher *events.RedisPublisher) {
	if audit != nil {
		audit.RegisterHandlers()
	}
	if publisher != nil {
		publisher.Register(dispatcher)
	}
}
