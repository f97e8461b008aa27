package mail

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	gomail "github.com/wneessen/go-mail"
)

// Client wraps the SMTP client used for the staff report and the guest
// token letters.
type Client struct {
	client *gomail.Client
	from   string
}

// MustNewClient creates a new SMTP client.
func MustNewClient() *Client {
	client, err := gomail.NewClient(
		viper.GetString("smtp.host"),
		gomail.WithPort(viper.GetInt("smtp.port")),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(os.Getenv("SMTP_USER")),
		gomail.WithPassword(os.Getenv("SMTP_PASSWORD")),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create SMTP client: %v", err))
	}

	return &Client{
		client: client,
		from:   viper.GetString("smtp.from"),
	}
}

// SendHTML sends a message with an HTML body and a plain-text alternative.
func (c *Client) SendHTML(ctx context.Context, to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

// SendWithAttachment sends a plain-text message with one attached file.
func (c *Client) SendWithAttachment(ctx context.Context, to, subject, textBody, filename string, attachment io.Reader) error {
	msg := gomail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	if err := msg.AttachReader(filename, attachment); err != nil {
		return fmt.Errorf("failed to attach %s: %w", filename, err)
	}

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
