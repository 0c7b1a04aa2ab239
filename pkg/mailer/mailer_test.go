package mailer

import (
	"errors"
	"testing"
	"time"

	"ecom-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func testDispatcher(send func(m *gomail.Message) error) *SMTPDispatcher {
	d := NewSMTPDispatcher(utils.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "store@example.com",
	}, 3, zap.NewNop())
	d.send = send
	return d
}

func TestSendOTP_BuildsMessage(t *testing.T) {
	got := make(chan *gomail.Message, 1)
	d := testDispatcher(func(m *gomail.Message) error {
		got <- m
		return nil
	})

	d.SendOTP("a@x.com", "123456")

	select {
	case m := <-got:
		assert.Equal(t, []string{"a@x.com"}, m.GetHeader("To"))
		assert.Equal(t, []string{"store@example.com"}, m.GetHeader("From"))
	case <-time.After(time.Second):
		t.Fatal("send was never called")
	}
}

func TestSendOTP_DoesNotBlockOnSlowTransport(t *testing.T) {
	release := make(chan struct{})
	d := testDispatcher(func(m *gomail.Message) error {
		<-release
		return nil
	})

	done := make(chan struct{})
	go func() {
		d.SendOTP("a@x.com", "123456")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendOTP blocked on the transport")
	}
	close(release)
}

func TestSendOTP_SwallowsTransportErrors(t *testing.T) {
	called := make(chan struct{}, 1)
	d := testDispatcher(func(m *gomail.Message) error {
		called <- struct{}{}
		return errors.New("connection refused")
	})

	// Must not panic and has no error to return
	d.SendOTP("a@x.com", "123456")

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("send was never called")
	}
}

func TestBody_MentionsCodeAndExpiry(t *testing.T) {
	d := testDispatcher(func(m *gomail.Message) error { return nil })

	body := d.body("654321")
	require.Contains(t, body, "654321")
	assert.Contains(t, body, "3 minutes")
}
