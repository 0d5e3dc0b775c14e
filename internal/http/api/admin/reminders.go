// Package admin exposes the operator-facing trigger endpoints. They sit
// behind bearer-token auth; tokens are issued by the administrative
// application, not here.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	chatcore "github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/http/api"
	"github.com/emasjid/gateway/internal/http/middleware"
	"github.com/emasjid/gateway/internal/model"
	"github.com/emasjid/gateway/internal/reminder"
)

type RemindersController struct {
	broadcaster *reminder.Broadcaster
}

func NewRemindersController(broadcaster *reminder.Broadcaster) *RemindersController {
	return &RemindersController{broadcaster: broadcaster}
}

// RemindersModule mounts the on-demand broadcast trigger.
func RemindersModule(broadcaster *reminder.Broadcaster) api.Module {
	ctl := NewRemindersController(broadcaster)
	return api.ModuleFunc(func(r gin.IRoutes) {
		r.POST("/reminders/broadcast", ctl.broadcast)
	})
}

type broadcastResult struct {
	Target    string `json:"target"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// broadcast runs the duty-reminder broadcast immediately for the date in
// the "date" query parameter (default: tomorrow). Lets operators re-send
// after a roster change without waiting for the scheduled tick.
func (rc *RemindersController) broadcast(c *gin.Context) {
	operator, _ := middleware.GetOperator(c)

	date := model.DateOf(time.Now().AddDate(0, 0, 1))
	if raw := c.Query("date"); raw != "" {
		parsed, ok := chatcore.ParseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = parsed
	}

	log.Info().Str("operator", operator).Str("date", date.String()).Msg("manual reminder broadcast requested")

	results, err := rc.broadcaster.BroadcastFor(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]broadcastResult, len(results))
	for i, r := range results {
		out[i] = broadcastResult{Target: r.Target, MessageID: r.MessageID}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":       date.String(),
		"recipients": len(out),
		"results":    out,
	})
}
