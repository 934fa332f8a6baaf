package contactform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quantumworks-backend/pkg/contactform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIncludesFormName(t *testing.T) {
	values := contactform.Encode(validFields())

	assert.Equal(t, "contact", values.Get("form-name"))
	assert.Equal(t, "Jane", values.Get("name"))
	assert.Equal(t, "jane@x.com", values.Get("email"))
	assert.Equal(t, "Web Development", values.Get("projectType"))
	assert.Equal(t, "Please build me a site", values.Get("message"))
}

func TestClientSubmit(t *testing.T) {
	t.Run("Should post url-encoded fields to the site root", func(t *testing.T) {
		var got *http.Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			got = r
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := contactform.NewClient(srv.URL+"/", srv.Client())
		err := client.Submit(context.Background(), validFields())

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "/", got.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", got.Header.Get("Content-Type"))
		assert.Equal(t, "contact", got.PostForm.Get("form-name"))
		assert.Equal(t, "Jane", got.PostForm.Get("name"))
	})

	t.Run("Should treat a followed redirect as success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				http.Redirect(w, r, "/?sent=1", http.StatusSeeOther)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		err := contactform.NewClient(srv.URL, srv.Client()).Submit(context.Background(), validFields())
		assert.NoError(t, err)
	})

	t.Run("Should fail on non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := contactform.NewClient(srv.URL, srv.Client()).Submit(context.Background(), validFields())

		var subErr *contactform.SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, "Failed to send message. Please try again.", subErr.Message)
		assert.Equal(t, http.StatusInternalServerError, subErr.StatusCode)
		assert.ErrorIs(t, err, contactform.ErrUnexpectedStatus)
	})

	t.Run("Should fail when the endpoint is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := contactform.NewClient(url, nil).Submit(context.Background(), validFields())

		var subErr *contactform.SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, contactform.SubmitFailedMessage, subErr.Message)
		assert.Zero(t, subErr.StatusCode)
	})
}
