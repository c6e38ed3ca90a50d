package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// ActivityHandler ingests client activity beacons, mostly page views. Events
// are enqueued and persisted off the request path.
type ActivityHandler struct {
	dispatcher ActivityDispatcher
}

func NewActivityHandler(dispatcher ActivityDispatcher) *ActivityHandler {
	return &ActivityHandler{dispatcher: dispatcher}
}

type activityRequest struct {
	ID   string `json:"id"`
	Kind string `json:"kind" validate:"required"`
	Path string `json:"path"`
}

// Receive handles POST /events. The event is enqueued and the request
// returns immediately with 202.
//
// @Summary      Ingest a single activity beacon
// @Tags         activity
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      activityRequest  true  "Activity beacon"
// @Success      202   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /events [post]
func (h *ActivityHandler) Receive(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toActivityInput(session, req))
	return respondMessage(c, http.StatusAccepted, "event accepted")
}

// ReceiveBatch handles POST /events/batch. Clients flush queued beacons in
// one call when a page unloads.
//
// @Summary      Ingest a batch of activity beacons
// @Tags         activity
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      []activityRequest  true  "Array of activity beacons"
// @Success      202   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /events/batch [post]
func (h *ActivityHandler) ReceiveBatch(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var reqs []activityRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
	}
	for _, req := range reqs {
		h.dispatcher.Enqueue(toActivityInput(session, req))
	}
	return respondMessage(c, http.StatusAccepted, "batch accepted")
}

func toActivityInput(session *domain.Session, req activityRequest) ports.ActivityInput {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	return ports.ActivityInput{
		ID:         id,
		SessionID:  session.ID,
		IdentityID: session.Identity.ID,
		Kind:       req.Kind,
		Path:       req.Path,
		OccurredAt: time.Now().UTC(),
	}
}
