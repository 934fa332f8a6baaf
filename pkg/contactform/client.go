package contactform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FormName is the discriminator the form-capture endpoint routes on.
const FormName = "contact"

// SubmitFailedMessage is the only failure text shown to users, whatever the cause.
const SubmitFailedMessage = "Failed to send message. Please try again."

// ErrUnexpectedStatus is wrapped when the endpoint answers outside 2xx/3xx.
var ErrUnexpectedStatus = errors.New("contactform: unexpected response status")

// SubmissionError is returned by Client.Submit for transport failures and
// non-success responses.
type SubmissionError struct {
	Message    string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Submitter delivers a validated form. Client is the network implementation.
type Submitter interface {
	Submit(ctx context.Context, f Fields) error
}

// Client posts URL-encoded submissions to the site root.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the site at baseURL (e.g. "https://quantumworks.services").
// A nil httpClient gets a 15 second timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/",
		httpClient: httpClient,
	}
}

// Encode returns the form body including the form-name discriminator.
func Encode(f Fields) url.Values {
	return url.Values{
		"form-name":      {FormName},
		FieldName:        {f.Name},
		FieldEmail:       {f.Email},
		FieldProjectType: {f.ProjectType},
		FieldMessage:     {f.Message},
	}
}

// Submit makes a single POST attempt. Callers validate first.
func (c *Client) Submit(ctx context.Context, f Fields) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(Encode(f).Encode()))
	if err != nil {
		return &SubmissionError{Message: SubmitFailedMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Message: SubmitFailedMessage, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return &SubmissionError{
			Message:    SubmitFailedMessage,
			StatusCode: resp.StatusCode,
			Err:        ErrUnexpectedStatus,
		}
	}
	return nil
}
