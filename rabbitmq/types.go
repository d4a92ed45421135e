// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for the events published on the topic exchange.
const (
	NewsPublishedKey        = "news.published"
	SubscriptionExpiringKey = "subscription.expiring"
)

type EventBusConfig struct {
	amqpURL  string
	exchange string
}

type Client struct {
	Exchange    string
	AMQPConn    *amqp.Connection
	AMQPChannel *amqp.Channel
}

// NewsPublishedEvent is emitted when an article transitions to the
// published state.
type NewsPublishedEvent struct {
	NewsID          uint      `json:"news_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	IsProContent    bool      `json:"is_pro_content"`
	AuthorID        uint      `json:"author_id"`
	PublicationDate time.Time `json:"publication_date"`
}

// SubscriptionExpiringEvent is emitted for subscriptions approaching
// their end date, so downstream channels can nudge the subscriber.
type SubscriptionExpiringEvent struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         uint      `json:"user_id"`
	Email          string    `json:"email"`
	PlanSlug       string    `json:"plan_slug"`
	EndDate        time.Time `json:"end_date"`
	DaysRemaining  int       `json:"days_remaining"`
}
