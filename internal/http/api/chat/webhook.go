// Package chat is the boundary adapter between the messaging provider's
// webhook and the conversational core. The contract with the transport is
// absolute: every inbound callback is acknowledged with an empty response,
// whatever happens inside; the reply travels separately through the
// dispatcher.
package chat

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	chatcore "github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/dispatch"
	"github.com/emasjid/gateway/internal/http/api"
	"github.com/emasjid/gateway/internal/model"
	"github.com/emasjid/gateway/internal/phone"
	"github.com/emasjid/gateway/internal/redis"
)

// emptyAck is the fixed transport acknowledgement.
const emptyAck = "<Response></Response>"

// dedupeTTL covers the provider's redelivery window.
const dedupeTTL = 24 * time.Hour

type WebhookController struct {
	store       db.Store
	interpreter *chatcore.Interpreter
	dispatcher  *dispatch.Dispatcher
}

func NewWebhookController(store db.Store, interpreter *chatcore.Interpreter, dispatcher *dispatch.Dispatcher) *WebhookController {
	return &WebhookController{
		store:       store,
		interpreter: interpreter,
		dispatcher:  dispatcher,
	}
}

// WebhookModule mounts the inbound webhook and its capability descriptor.
func WebhookModule(store db.Store, interpreter *chatcore.Interpreter, dispatcher *dispatch.Dispatcher) api.Module {
	ctl := NewWebhookController(store, interpreter, dispatcher)
	return api.ModuleFunc(func(r gin.IRoutes) {
		r.POST("/webhook", ctl.receiveMessage)
		r.GET("/webhook", ctl.describeService)
	})
}

// receiveMessage handles one inbound chat callback. The reply is enqueued
// fire-and-forget; the handler returns the empty acknowledgement on every
// code path, including panics, so the provider never retries because of an
// internal failure it can do nothing about.
func (w *WebhookController) receiveMessage(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("webhook processing panicked")
		}
		c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(emptyAck))
	}()

	sender := c.PostForm("From")
	body := c.PostForm("Body")
	profileName := c.PostForm("ProfileName")
	callbackID := c.PostForm("MessageSid")

	log.Info().
		Str("sender", sender).
		Str("profile_name", profileName).
		Msg("inbound chat message")

	if redis.SeenCallback(c, callbackID, dedupeTTL) {
		log.Info().Str("callback_id", callbackID).Msg("duplicate callback, skipping")
		return
	}

	contact, err := w.store.FindActiveContactByAnyPhone(phone.Candidates(sender))
	if err != nil {
		log.Error().Err(err).Str("sender", sender).Msg("contact lookup failed")
		return
	}
	if contact == nil {
		w.reply(sender, chatcore.NotRegisteredReply())
		return
	}

	cmd := chatcore.Parse(body)
	log.Info().
		Int("contact_id", contact.ID).
		Str("command", cmd.Kind.String()).
		Msg("interpreting chat command")

	w.reply(sender, w.interpreter.Handle(contact, cmd))
}

func (w *WebhookController) reply(sender, body string) {
	w.dispatcher.Enqueue(model.OutboundMessage{
		TargetPhone: sender,
		Body:        body,
	})
}

// describeService returns a static capability descriptor used for
// health checks and discovery, not part of the conversational flow.
func (w *WebhookController) describeService(c *gin.Context) {
	slots := make([]string, len(model.AllSlots))
	for i, s := range model.AllSlots {
		slots[i] = s.String()
	}
	c.JSON(http.StatusOK, gin.H{
		"service":      "duty-notification-gateway",
		"commands":     []string{"TUGASAN", "CUTI", "SENARAI", "BATAL"},
		"date_formats": []string{"2024-12-01", "01/12/2024", "01-12-2024"},
		"slots":        slots,
	})
}
