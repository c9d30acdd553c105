package notify

import (
	"context"
	"fmt"
	"log"
	"os"

	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"firebase.google.com/go/v4/messaging"
)

// Message is one user-facing notification.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendToActor persists a notification row for the actor and pushes it
// over FCM and, when the actor has an email, SMTP. Delivery is best
// effort: failures are logged and never reported back to the caller's
// transition. The switch over actor kinds is exhaustive.
func SendToActor(actor types.ActorRef, msg Message) error {
	d := db.GetDb()

	data := types.JSONB{}
	for k, v := range msg.Data {
		data[k] = v
	}
	row := models.Notification{
		ActorKind: actor.Kind,
		ActorID:   actor.ID,
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      &data,
	}
	if err := d.Create(&row).Error; err != nil {
		log.Printf("[notify] could not persist notification for %s: %s\n", actor, err.Error())
		return err
	}

	var user models.User
	switch actor.Kind {
	case types.ACTOR_GUEST, types.ACTOR_PARTNER, types.ACTOR_ADMIN:
		if err := d.Where(&models.User{ID: actor.ID}).First(&user).Error; err != nil {
			log.Printf("[notify] no user record for %s: %s\n", actor, err.Error())
			return err
		}
	default:
		return fmt.Errorf("unknown actor kind %q", actor.Kind)
	}

	go push(user, msg)
	go email(user, msg)
	return nil
}

func push(user models.User, msg Message) {
	if user.FCMToken == nil {
		return
	}
	fcm, err := lib.GetFirebaseMessaging()
	if err != nil {
		log.Printf("[notify] FCM unavailable: %s\n", err.Error())
		return
	}
	_, err = fcm.Send(context.Background(), &messaging.Message{
		Token: *user.FCMToken,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		log.Printf("[notify] push to user %d failed: %s\n", user.ID, err.Error())
	}
}

func email(user models.User, msg Message) {
	if user.Email == "" {
		return
	}
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{user.Email},
		Subject:  msg.Title,
		Body:     msg.Body,
	})
	if err != nil {
		log.Printf("[notify] email to user %d failed: %s\n", user.ID, err.Error())
	}
}
