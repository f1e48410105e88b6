package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tokenlotto/domain/entities"
	"tokenlotto/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	subject string
	data    []byte
	msgID   string
}

type fakeMessagePublisher struct {
	sent []sentMessage
	err  error
}

func (f *fakeMessagePublisher) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{subject: subject, data: data, msgID: msgID})
	return nil
}

func TestNATSEventPublisher_PaymentDirectiveUsesDirectiveID(t *testing.T) {
	client := &fakeMessagePublisher{}
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())

	directive := entities.NewPaymentDirective("bob", 100, entities.PaymentReasonTransfer)
	event := events.PaymentDirectiveEvent{Directive: *directive, IssuedAt: time.Now().UTC()}

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, client.sent, 1)

	sent := client.sent[0]
	assert.Equal(t, "payments.directives", sent.subject)
	assert.Equal(t, directive.ID.String(), sent.msgID)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(sent.data, &envelope))
	assert.Equal(t, string(events.EventTypePaymentDirective), envelope.EventType)
	assert.Equal(t, "tokenlotto", envelope.SourceService)

	var payload events.PaymentDirectiveEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, *directive, payload.Directive)
}

func TestNATSEventPublisher_OtherEventsUseEnvelopeID(t *testing.T) {
	client := &fakeMessagePublisher{}
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())

	require.NoError(t, publisher.Publish(context.Background(), events.MemoStoredEvent{Account: "alice", Length: 3}))
	require.Len(t, client.sent, 1)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(client.sent[0].data, &envelope))
	assert.Equal(t, envelope.EventID, client.sent[0].msgID)
	assert.Equal(t, "memos.stored", client.sent[0].subject)
}

func TestNATSEventPublisher_Error(t *testing.T) {
	client := &fakeMessagePublisher{err: errors.New("no responders")}
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())

	err := publisher.Publish(context.Background(), events.LotteryResolvedEvent{LotteryID: 1, Winner: "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event to NATS")
}
