package eventbus

import (
	"fmt"
	"strings"
)

func streamNameFor(prefix, eventType string) string {
	return nameFor(prefix, "events", eventType)
}

// dlqStreamName returns the DLQ stream name for the given event type.
func dlqStreamName(prefix, eventType string) string {
	return nameFor(prefix, "dlq", eventType)
}

// groupNameFor returns the Redis consumer group name for the event type.
func groupNameFor(prefix, eventType string) string {
	return nameFor(prefix, "group", eventType)
}

// nameFor turns "Loan.PaidOff" into "<prefix>events:loan:paidoff".
func nameFor(prefix, kind, eventType string) string {
	parts := strings.Split(eventType, ".")
	if len(parts) == 2 {
		return fmt.Sprintf("%s%s:%s:%s", prefix, kind,
			strings.ToLower(parts[0]), strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s%s:%s", prefix, kind, strings.ToLower(eventType))
}
