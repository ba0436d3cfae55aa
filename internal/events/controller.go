package events

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/utils/response"
)

type Controller interface {
	AddEvent(c *gin.Context)
	UpdateEvent(c *gin.Context)
	GetAllEvents(c *gin.Context)
	GetEventByID(c *gin.Context)
	DeleteEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// AddEvent godoc
// @Summary Create a new event
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Param request body CreateEventRequest true "Event details"
// @Success 201 {object} response.ApiResponse
// @Router /events/event/add [post]
func (ctrl *controller) AddEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	event, err := ctrl.service.AddEvent(c.Request.Context(), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusCreated, "Event added successfully", event)
}

// UpdateEvent godoc
// @Summary Update an existing event
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Event details"
// @Success 200 {object} response.ApiResponse
// @Router /events/event/update/{id} [put]
func (ctrl *controller) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierror.BadRequest("Invalid event ID"))
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	event, err := ctrl.service.UpdateEvent(c.Request.Context(), eventID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Event updated successfully", event)
}

// GetAllEvents godoc
// @Summary List events, optionally filtered by a search term
// @Tags events
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} response.ApiResponse
// @Router /events/event/getAll [get]
func (ctrl *controller) GetAllEvents(c *gin.Context) {
	events, err := ctrl.service.GetAllEvents(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	message := "Events retrieved successfully"
	if len(events) == 0 {
		message = "No events found"
	}
	response.RespondJSON(c, http.StatusOK, message, events)
}

// GetEventByID godoc
// @Summary Get a single event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.ApiResponse
// @Router /events/event/getById/{id} [get]
func (ctrl *controller) GetEventByID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierror.BadRequest("Invalid event ID"))
		return
	}

	event, err := ctrl.service.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Event retrieved successfully", event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.ApiResponse
// @Router /events/event/delete/{id} [delete]
func (ctrl *controller) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierror.BadRequest("Invalid event ID"))
		return
	}

	if _, err := ctrl.service.DeleteEvent(c.Request.Context(), eventID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Event deleted successfully", nil)
}
