// Command brevo-sync inspects Brevo contact lists and pushes verified
// newsletter subscribers to the configured list.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"charter/internal/brevo"
	intconfig "charter/internal/config"
	"charter/internal/services"
	"charter/internal/utils"
)

func main() {
	listContacts := flag.Bool("list-contacts", false, "print the Brevo contact lists")
	syncSubscribers := flag.Bool("sync-subscribers", false, "push verified newsletter subscribers to Brevo")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	env := intconfig.LoadEnv()
	if env.BrevoAPIKey == "" {
		utils.Logger.Fatal("BREVO_API_KEY is not configured")
	}
	if !*listContacts && !*syncSubscribers {
		utils.Logger.Warn("Please specify -list-contacts or -sync-subscribers")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := brevo.NewClient(env.BrevoAPIKey, env.BrevoBaseURL, env.NotifyTimeout)

	if *listContacts {
		lists, err := client.ListLists(ctx)
		if err != nil {
			utils.Logger.WithError(err).Fatal("fetch contact lists failed")
		}
		for _, l := range lists {
			utils.Logger.WithFields(logrus.Fields{
				"id":          l.ID,
				"subscribers": l.TotalSubscribers,
			}).Info(l.Name)
		}
	}

	if *syncSubscribers {
		db, err := intconfig.ConnectDB(env)
		if err != nil {
			utils.Logger.WithError(err).Fatal("database connection failed")
		}
		defer intconfig.CloseDB()

		svc := services.NewsletterService{
			DB:            db,
			Contacts:      client,
			ListID:        env.BrevoContactListID,
			NotifyTimeout: env.NotifyTimeout,
			RequestID:     "brevo-sync",
		}
		synced, total, err := svc.SyncVerified(ctx)
		if err != nil {
			utils.Logger.WithError(err).Warn("some subscribers failed to sync")
		}
		utils.Logger.Infof("Successfully synced %d out of %d subscribers", synced, total)
	}
}
