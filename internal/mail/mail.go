// Package mail sends transactional mail through the Mailgun messages API.
package mail

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http   *resty.Client
	domain string
	apiKey string
	from   string
}

func New(domain, apiKey, from string) *Client {
	return &Client{
		http:   resty.New(),
		domain: domain,
		apiKey: apiKey,
		from:   from,
	}
}

func (c *Client) sendEmail(to, subject string, vars map[string]string) error {
	form := map[string]string{
		"from":    c.from,
		"to":      to,
		"subject": subject,
	}
	for key, value := range vars {
		form[key] = value
	}
	resp, err := c.http.R().
		SetBasicAuth("api", c.apiKey).
		SetFormData(form).
		Post(fmt.Sprintf("https://api.mailgun.net/v3/%s/messages", c.domain))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mailgun responded %s", resp.Status())
	}
	return nil
}

// SendVerificationEmail mails the one-time verification code to a freshly
// created or updated account.
func (c *Client) SendVerificationEmail(to, code string) error {
	return c.sendEmail(to, "Please Verify Your Email", map[string]string{
		"template":   "verify-email",
		"v:username": to,
		"v:code":     code,
	})
}
