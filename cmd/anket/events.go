package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rehber-app/anket-client/internal/config"
	"github.com/rehber-app/anket-client/internal/events"
	"github.com/rehber-app/anket-client/internal/utils"
)

var eventsGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail survey events from Kafka as JSON lines",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsGroup, "group", "anket-events-tail", "Kafka consumer group")
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := utils.ToSlogLogger(utils.NewLogger(cfg.Environment))

	subscriber, err := cfg.Events.CreateEventSubscriber(eventsGroup, logger)
	if err != nil {
		return err
	}
	defer subscriber.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	err = subscriber.Run(cmd.Context(), func(_ context.Context, event events.SurveyEvent) error {
		return enc.Encode(event)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
