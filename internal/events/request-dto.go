package events

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
		v.RegisterValidation("eventtime", func(fl validator.FieldLevel) bool {
			_, err := parseEventTime(fl.Field().String())
			return err == nil
		})
	}
}

// CreateEventRequest accepts both JSON and multipart-form payloads; the
// original clients submit forms.
type CreateEventRequest struct {
	EventName      string `form:"eventName" json:"eventName" binding:"required,min=1,max=150"`
	EventType      string `form:"eventType" json:"eventType" binding:"required,max=150"`
	Description    string `form:"description" json:"description" binding:"max=2000"`
	EventDate      string `form:"eventDate" json:"eventDate" binding:"required,eventdate"`
	EventTime      string `form:"eventTime" json:"eventTime" binding:"required,eventtime"`
	Location       string `form:"location" json:"location" binding:"required,max=200"`
	TotalSeats     int    `form:"totalSeats" json:"totalSeats" binding:"required,min=1"`
	AvailableSeats int    `form:"availableSeats" json:"availableSeats" binding:"min=0"`
	Price          string `form:"price" json:"price" binding:"required"`
	Image          string `form:"image" json:"image" binding:"omitempty,max=255"`
}

// UpdateEventRequest mirrors the create payload; the original update
// endpoint resubmits every field.
type UpdateEventRequest = CreateEventRequest
