package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Bus carries the events of one session. Sessions own their bus, so
// subscribers never see another session's orders.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{
		bus: EventBus.New(),
	}
}

func (b *Bus) Publish(topic string, event interface{}) {
	log.WithField("topic", topic).Tracef("publishing %T", event)
	b.bus.Publish(topic, event)
}

// Subscribe registers an asynchronous handler. Handlers of the same topic run
// one at a time.
func (b *Bus) Subscribe(topic string, callbackFn interface{}) error {
	if err := b.bus.SubscribeAsync(topic, callbackFn, true); err != nil {
		return err
	}

	log.Debugf("Subscribed to topic %s", topic)
	return nil
}

func (b *Bus) SubscribeSync(topic string, callbackFn interface{}) error {
	if err := b.bus.Subscribe(topic, callbackFn); err != nil {
		return err
	}

	log.Debugf("Subscribed to topic %s", topic)
	return nil
}

func (b *Bus) Unsubscribe(topic string, callbackFn interface{}) error {
	return b.bus.Unsubscribe(topic, callbackFn)
}

// WaitAsync blocks until every asynchronous handler has returned.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
