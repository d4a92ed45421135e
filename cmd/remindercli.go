// SPDX-License-Identifier: GPL-3.0-only

// Renewal reminder scanner. Finds subscriptions approaching their end
// date, emits a subscription.expiring event for each and marks them so
// they are only reminded once. Meant to run from cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"presspass-server/commons"
	"presspass-server/db"
	"presspass-server/models"
	"presspass-server/rabbitmq"
)

type Config struct {
	Days   int
	DryRun bool
}

func scanExpiring(config Config) error {
	now := time.Now()
	cutoff := now.AddDate(0, 0, config.Days)

	var expiring []models.Subscription
	err := db.Conn.Preload("User").Preload("Plan").
		Where("status = ?", models.ActiveSubscription).
		Where("renewal_reminder_sent = ?", false).
		Where("end_date IS NOT NULL AND end_date > ? AND end_date <= ?", now, cutoff).
		Find(&expiring).Error
	if err != nil {
		return fmt.Errorf("query expiring subscriptions: %w", err)
	}

	commons.Logger.Infof("Found %d subscription(s) expiring within %d days", len(expiring), config.Days)

	if config.DryRun {
		for _, subscription := range expiring {
			commons.Logger.Infof("Would remind %s (user=%s, ends=%s)",
				subscription.PublicID, subscription.User.Username, subscription.EndDate.Format(time.RFC3339))
		}
		return nil
	}

	var client *rabbitmq.Client
	if commons.GetEnv("AMQP_URL") != "" {
		client, err = rabbitmq.NewClient(rabbitmq.EventBusConfig{})
		if err != nil {
			return fmt.Errorf("connect event bus: %w", err)
		}
		defer client.Close()
	}

	ctx := context.Background()
	reminded := 0
	for _, subscription := range expiring {
		days := subscription.DaysUntilExpiration(now)

		if client != nil {
			event := rabbitmq.SubscriptionExpiringEvent{
				SubscriptionID: subscription.PublicID,
				UserID:         subscription.UserID,
				Email:          subscription.User.Email,
				PlanSlug:       subscription.Plan.Slug,
				EndDate:        *subscription.EndDate,
				DaysRemaining:  *days,
			}
			if err := client.Publish(ctx, rabbitmq.SubscriptionExpiringKey, event); err != nil {
				commons.Logger.Errorf("Failed to publish reminder for %s: %v", subscription.PublicID, err)
				continue
			}
		}

		subscription.RenewalReminderSent = true
		if err := db.Conn.Save(&subscription).Error; err != nil {
			commons.Logger.Errorf("Failed to mark %s as reminded: %v", subscription.PublicID, err)
			continue
		}

		if err := models.RecordEvent(db.Conn, models.SubscriptionEvent, models.EventOK, "subscription.remind", nil, subscription.PublicID); err != nil {
			commons.Logger.Errorf("Failed to record reminder event: %v", err)
		}
		reminded++
	}

	commons.Logger.Infof("Reminded %d subscription(s)", reminded)
	return nil
}

func main() {
	days := flag.Int("days", 7, "Remind subscriptions ending within this many days")
	dryRun := flag.Bool("dry-run", false, "List matching subscriptions without sending reminders")
	flag.Parse()

	commons.LoadEnvFile()
	commons.InitLogger()

	db.InitDB()

	if err := scanExpiring(Config{Days: *days, DryRun: *dryRun}); err != nil {
		commons.Logger.Errorf("Reminder scan failed: %v", err)
		os.Exit(1)
	}
}
