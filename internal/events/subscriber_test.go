package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubscriber_RoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := newWatermillPublisher(pubSub, "survey-events", discardLogger())
	subscriber := newWatermillSubscriber(pubSub, "survey-events", discardLogger())

	require.NoError(t, pubSub.Publish("survey-events", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, publisher.Publish(context.Background(), NewSubmissionRejectedEvent("42", "s1", []int{2})))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan SurveyEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- subscriber.Run(ctx, func(_ context.Context, event SurveyEvent) error {
			received <- event
			cancel()
			return nil
		})
	}()

	select {
	case event := <-received:
		assert.Equal(t, EventSubmissionRejected, event.Type)
		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "42", data["survey_id"])
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	assert.ErrorIs(t, <-done, context.Canceled)
}
