package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/kafka"
	"simpledock/internal/domains/booking/model"
	"simpledock/shared/logger"
)

// The notifier consumes booking confirmations and sends the carrier-facing
// message. Delivery is a log line until a messaging provider is wired in.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	client := kafka.New(cfg)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("topic", cfg.Kafka.Topics.BookingConfirmed).
		Str("consumer_group", cfg.Kafka.ConsumerGroup).
		Msg("Starting up booking notifier.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.BookingConfirmed, notify)

	log.Info().Msg("Booking notifier shut down.")
}

func notify(msg kafkaGo.Message) {
	event, err := kafka.DecodeKafkaMessage[model.ConfirmedEvent](msg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode booking confirmation event")

		return
	}

	log.Info().
		Str("booking_ref", event.BookingRef).
		Str("carrier", event.CarrierName).
		Str("driver_phone", event.DriverPhone).
		Str("start_time", event.StartTime).
		Msgf("Booking %s Confirmed for %s [Sent via WhatsApp]", event.BookingRef, event.StartTime)
}
