package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/enquiry/internal"
	"github.com/dmitrymomot/enquiry/pkg/diaglog"
	"github.com/dmitrymomot/enquiry/pkg/dispatch"
	"github.com/dmitrymomot/enquiry/pkg/notify"
)

// SubmitEnquiryPath is the route of the enquiry endpoint.
const SubmitEnquiryPath = "/api/submit-enquiry"

// Response messages.
const (
	MsgEnquiryAccepted = "Enquiry submitted successfully!"
	MsgMissingFields   = "Please provide name, email, and message."
)

// notifyTaskName identifies the background unit in logs.
const notifyTaskName = "notify_operator"

// EnquiryRequest is the JSON body of a submission.
// Presence is the only server-side rule; format checks belong to the client.
type EnquiryRequest struct {
	Name    string `json:"name"    sanitize:"trim" validate:"required"`
	Email   string `json:"email"   sanitize:"trim" validate:"required"`
	Message string `json:"message" sanitize:"trim" validate:"required"`
}

// MessageResponse is the success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Dispatcher runs work after the response is sent.
type Dispatcher interface {
	Go(ctx context.Context, name string, task dispatch.Task)
}

// Notifier delivers the operator notification.
type Notifier interface {
	Notify(ctx context.Context, e notify.Enquiry) error
}

// EnquiryOption configures an EnquiryHandler.
type EnquiryOption func(*EnquiryHandler)

// WithIDGenerator sets the enquiry reference generator. Default is a random UUID.
func WithIDGenerator(fn func() string) EnquiryOption {
	return func(h *EnquiryHandler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithClock sets the time source used for ReceivedAt.
func WithClock(fn func() time.Time) EnquiryOption {
	return func(h *EnquiryHandler) {
		if fn != nil {
			h.now = fn
		}
	}
}

// EnquiryHandler accepts enquiries.
type EnquiryHandler struct {
	dispatcher Dispatcher
	notifier   Notifier
	newID      func() string
	now        func() time.Time
}

// NewEnquiryHandler creates the handler.
func NewEnquiryHandler(d Dispatcher, n Notifier, opts ...EnquiryOption) *EnquiryHandler {
	h := &EnquiryHandler{
		dispatcher: d,
		notifier:   n,
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *EnquiryHandler) Routes(r internal.Router) {
	r.POST(SubmitEnquiryPath, h.submit)
}

// submit validates presence, acknowledges, then schedules the notification.
// Nothing is scheduled for a rejected request.
func (h *EnquiryHandler) submit(c internal.Context) error {
	var req EnquiryRequest
	errs, err := c.BindJSON(&req)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return c.Error(http.StatusBadRequest, MsgMissingFields, internal.WithError(errs))
	}

	e := notify.Enquiry{
		ID:         h.newID(),
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		ReceivedAt: h.now(),
	}

	if err := c.JSON(http.StatusOK, MessageResponse{Message: MsgEnquiryAccepted}); err != nil {
		return err
	}
	c.Flush()

	c.LogInfo("enquiry accepted", slog.String("enquiry_id", e.ID))

	ctx := dispatch.WithFields(c.Context(),
		diaglog.Field{Key: "Enquiry", Value: e.ID},
		diaglog.Field{Key: "From", Value: e.Email},
	)
	h.dispatcher.Go(ctx, notifyTaskName, func(ctx context.Context) error {
		return h.notifier.Notify(ctx, e)
	})

	return nil
}
