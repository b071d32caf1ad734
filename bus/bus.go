// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bus

import "sync"

// Topics carried on the bus. Payloads are the full current list for the
// topic, not a delta.
const (
	// TopicRegistrationChanged carries []models.Registration.
	TopicRegistrationChanged = "registration-changed"
	// TopicNotificationsChanged carries []string.
	TopicNotificationsChanged = "notification-log-changed"
	// TopicReminderScheduled carries []string (the notification log).
	TopicReminderScheduled = "reminder-scheduled"
)

// Handler receives the payload published on a topic.
type Handler func(payload any)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	topic string
	id    int
}

// Bus is a synchronous in-process publish/subscribe channel. Publish
// invokes every currently-registered subscriber for the topic, in
// subscription order, before returning. Nothing is queued: a handler
// unsubscribed at publish time never sees that emission.
//
// A handler must not publish on the topic it is handling; delivery is
// reentrant-unsafe by contract.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]entry
}

type entry struct {
	id int
	fn Handler
}

// New returns an empty bus. Create one at process start and inject it;
// it is never torn down.
func New() *Bus {
	return &Bus{subs: make(map[string][]entry)}
}

// Subscribe registers fn for topic and returns a handle for Unsubscribe.
// Callers with a mount/unmount lifecycle must unsubscribe on unmount or
// the handler keeps firing into a torn-down view.
func (b *Bus) Subscribe(topic string, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[topic] = append(b.subs[topic], entry{id: b.nextID, fn: fn})
	return &Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes exactly the handler sub refers to. Unknown or
// already-removed handles are a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.subs[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			b.subs[sub.topic] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every subscriber of topic, synchronously
// and in subscription order.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	entries := make([]entry, len(b.subs[topic]))
	copy(entries, b.subs[topic])
	b.mu.Unlock()

	for _, e := range entries {
		e.fn(payload)
	}
}
