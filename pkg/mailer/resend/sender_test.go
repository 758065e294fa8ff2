package resend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
	"github.com/dmitrymomot/enquiry/pkg/mailer/resend"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type capture struct {
	mu   sync.Mutex
	body map[string]any
	auth string
}

func fakeAPI(status int, respBody string, c *capture) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if c != nil {
			c.mu.Lock()
			c.auth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &c.body)
			c.mu.Unlock()
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Request:    r,
		}, nil
	})}
}

func enquiryEmail() *mailer.Email {
	return &mailer.Email{
		To:      []string{"owner@example.com"},
		From:    "Ada <ada@example.com>",
		Subject: "New Project Enquiry from Ada",
		HTML:    "<p>hello</p>",
		Text:    "hello",
		Tags:    mailer.SimpleTags("enquiry"),
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := resend.New(resend.Config{})
	require.ErrorIs(t, err, resend.ErrMissingAPIKey)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("verified sender replaces from", func(t *testing.T) {
		t.Parallel()

		c := &capture{}
		s, err := resend.NewWithClient(resend.Config{
			APIKey:      "re_test",
			SenderEmail: "hello@studio.dev",
			SenderName:  "Studio",
		}, fakeAPI(http.StatusOK, `{"id":"msg_1"}`, c))
		require.NoError(t, err)

		require.NoError(t, s.Send(context.Background(), enquiryEmail()))

		c.mu.Lock()
		defer c.mu.Unlock()
		assert.Equal(t, "Bearer re_test", c.auth)
		assert.Equal(t, "Studio <hello@studio.dev>", c.body["from"])
		assert.Equal(t, "New Project Enquiry from Ada", c.body["subject"])
		assert.Contains(t, c.body["reply_to"], "Ada <ada@example.com>")
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		s, err := resend.NewWithClient(resend.Config{APIKey: "re_test"},
			fakeAPI(http.StatusUnprocessableEntity, `{"statusCode":422,"name":"validation_error","message":"invalid from"}`, nil))
		require.NoError(t, err)

		err = s.Send(context.Background(), enquiryEmail())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resend: send")
	})

	t.Run("invalid email never calls api", func(t *testing.T) {
		t.Parallel()

		called := false
		hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			called = true
			return nil, io.EOF
		})}
		s, err := resend.NewWithClient(resend.Config{APIKey: "re_test"}, hc)
		require.NoError(t, err)

		err = s.Send(context.Background(), &mailer.Email{Subject: "x", Text: "y"})
		require.ErrorIs(t, err, mailer.ErrNoRecipient)
		assert.False(t, called)
	})
}
