package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WhatsAppConfig holds the Cloud API credentials and endpoint settings.
type WhatsAppConfig struct {
	// VerifyToken is the shared secret echoed by Meta during webhook subscription.
	VerifyToken string `env:"WA_VERIFY_TOKEN"`

	// AccessToken is the bearer token used for outbound Graph API calls.
	AccessToken string `env:"WA_ACCESS_TOKEN"`

	// PhoneNumberID identifies the business phone number that sends replies.
	PhoneNumberID string `env:"WA_PHONE_NUMBER_ID"`

	GraphAPIBaseURL string        `env:"WA_GRAPH_API_BASE_URL" envDefault:"https://graph.facebook.com"`
	GraphAPIVersion string        `env:"WA_GRAPH_API_VERSION" envDefault:"v19.0"`
	SendTimeout     time.Duration `env:"WA_SEND_TIMEOUT" envDefault:"10s"`
}

// Validate checks that credentials are present and the endpoint is usable.
func (c *WhatsAppConfig) Validate() error {
	var errs []error

	if c.VerifyToken == "" {
		errs = append(errs, errors.New(EnvVerifyToken+" is required"))
	}
	if c.AccessToken == "" {
		errs = append(errs, errors.New(EnvAccessToken+" is required"))
	}
	if c.PhoneNumberID == "" {
		errs = append(errs, errors.New(EnvPhoneNumberID+" is required"))
	}

	u, err := url.Parse(c.GraphAPIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", EnvGraphAPIBaseURL, c.GraphAPIBaseURL))
	}
	if !strings.HasPrefix(c.GraphAPIVersion, "v") {
		errs = append(errs, fmt.Errorf("%s must look like v19.0, got %q", EnvGraphAPIVersion, c.GraphAPIVersion))
	}
	if c.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSendTimeout, c.SendTimeout))
	}

	return errors.Join(errs...)
}

// MessagesURL returns the send-message endpoint for the configured phone number.
func (c *WhatsAppConfig) MessagesURL() string {
	return strings.TrimRight(c.GraphAPIBaseURL, "/") + "/" + c.GraphAPIVersion + "/" + c.PhoneNumberID + "/messages"
}
