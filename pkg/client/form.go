package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// OutcomeKind tells success and error banners apart.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the banner produced by a submit.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Status  int // HTTP status; 0 when no response was received
}

// ButtonState is the submit control as the UI should render it.
type ButtonState struct {
	Disabled bool
	Label    string
}

// Snapshot is a copy of the form state.
type Snapshot struct {
	Values   map[Field]string
	Errors   ValidationResult
	Banner   *Outcome
	Button   ButtonState
	InFlight bool
}

type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type serverReply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Form holds the state of one enquiry form. It is safe for concurrent use.
type Form struct {
	endpoint  string
	http      *http.Client
	bannerTTL time.Duration
	busyLabel string
	logger    *slog.Logger

	inFlight atomic.Bool

	mu        sync.Mutex
	values    map[Field]string
	errors    ValidationResult
	banner    *Outcome
	bannerSeq uint64
	button    ButtonState
	observers []func(Snapshot)
}

// NewForm creates an empty form.
func NewForm(opts ...Option) *Form {
	f := &Form{
		endpoint:  DefaultEndpoint,
		http:      http.DefaultClient,
		bannerTTL: DefaultBannerTTL,
		busyLabel: DefaultBusyLabel,
		logger:    slog.New(slog.DiscardHandler),
		values:    make(map[Field]string, len(Fields)),
		errors:    make(ValidationResult, len(Fields)),
		button:    ButtonState{Label: DefaultSubmitLabel},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OnChange registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that caused the change, outside the form lock.
func (f *Form) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	f.observers = append(f.observers, fn)
	f.mu.Unlock()
}

// State returns the current snapshot.
func (f *Form) State() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Input stores value, revalidates that field and drops a visible success banner.
// Unknown fields are ignored.
func (f *Form) Input(field Field, value string) {
	if !IsKnown(field) {
		return
	}

	f.update(func() {
		f.values[field] = value
		f.errors[field] = Validate(field, value)
		if f.banner != nil && f.banner.Kind == OutcomeSuccess {
			f.banner = nil
		}
	})
}

// Submit validates every field and, when all pass, posts the enquiry once.
//
// It returns ErrValidation without sending anything when a field is invalid,
// and ErrSubmitInFlight while another Submit on the same form is running.
// A response from the server, success or not, yields an Outcome and a nil
// error. Transport and decoding failures yield an error Outcome together with
// an error wrapping ErrRequestFailed.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	var body payload
	valid := false
	f.update(func() {
		f.errors = ValidateAll(f.values)
		valid = f.errors.Valid()
		body = payload{
			Name:    f.values[FieldName],
			Email:   f.values[FieldEmail],
			Message: f.values[FieldMessage],
		}
	})
	if !valid {
		return Outcome{}, ErrValidation
	}

	if !f.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInFlight
	}

	var idleLabel string
	f.update(func() {
		idleLabel = f.button.Label
		f.button = ButtonState{Disabled: true, Label: f.busyLabel}
	})
	defer f.update(func() {
		f.button = ButtonState{Label: idleLabel}
		f.inFlight.Store(false)
	})

	status, reply, err := f.post(ctx, body)
	if err != nil {
		f.logger.ErrorContext(ctx, "enquiry submission failed",
			slog.String("endpoint", f.endpoint),
			slog.String("error", err.Error()),
		)
		out := Outcome{Kind: OutcomeError, Message: MsgNetworkFailed, Status: status}
		f.showError(out)
		return out, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if status < 200 || status > 299 {
		msg := reply.Error
		if msg == "" {
			msg = MsgFailed
		}
		out := Outcome{Kind: OutcomeError, Message: msg, Status: status}
		f.showError(out)
		return out, nil
	}

	msg := reply.Message
	if msg == "" {
		msg = MsgSent
	}
	out := Outcome{Kind: OutcomeSuccess, Message: msg, Status: status}
	f.showSuccess(out)
	return out, nil
}

// post sends one request and decodes the JSON reply.
func (f *Form) post(ctx context.Context, body payload) (int, serverReply, error) {
	var reply serverReply

	data, err := json.Marshal(body)
	if err != nil {
		return 0, reply, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, reply, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return 0, reply, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return resp.StatusCode, reply, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, reply, nil
}

// showSuccess clears the form, replaces any banner and schedules its removal.
// A later banner is never removed by an earlier timer.
func (f *Form) showSuccess(out Outcome) {
	var seq uint64
	f.update(func() {
		for _, field := range Fields {
			f.values[field] = ""
			f.errors[field] = ""
		}
		f.bannerSeq++
		seq = f.bannerSeq
		b := out
		f.banner = &b
	})

	time.AfterFunc(f.bannerTTL, func() {
		f.update(func() {
			if f.bannerSeq == seq {
				f.banner = nil
			}
		})
	})
}

func (f *Form) showError(out Outcome) {
	f.update(func() {
		f.bannerSeq++
		b := out
		f.banner = &b
	})
}

// update applies fn under the lock, then notifies observers.
func (f *Form) update(fn func()) {
	f.mu.Lock()
	fn()
	snap := f.snapshotLocked()
	observers := f.observers
	f.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (f *Form) snapshotLocked() Snapshot {
	s := Snapshot{
		Values:   maps.Clone(f.values),
		Errors:   maps.Clone(f.errors),
		Button:   f.button,
		InFlight: f.inFlight.Load(),
	}
	if f.banner != nil {
		b := *f.banner
		s.Banner = &b
	}
	return s
}
