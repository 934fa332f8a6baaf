package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quantumworks-backend/internal/domain"
	"quantumworks-backend/internal/repository/memory"
	"quantumworks-backend/internal/usecase"
	"quantumworks-backend/pkg/contactform"
	"quantumworks-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockNewsletterRepo struct {
	mock.Mock
}

func (m *MockNewsletterRepo) Add(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsletterRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:        "Jane",
		Email:       "jane@x.com",
		ProjectType: "Web Development",
		Message:     "Please build me a site",
	}
}

func TestSendContactMessage(t *testing.T) {
	t.Run("Should reject missing required fields without sending", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		for _, mutate := range []func(r *domain.ContactRequest){
			func(r *domain.ContactRequest) { r.Name = "" },
			func(r *domain.ContactRequest) { r.Email = "" },
			func(r *domain.ContactRequest) { r.Message = "" },
		} {
			req := validRequest()
			mutate(req)
			err := uc.SendContactMessage(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrMissingFields)
		}
		assert.ErrorIs(t, uc.SendContactMessage(context.Background(), nil), domain.ErrMissingFields)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should treat project type as optional", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
			return m.ReplyTo == "jane@x.com" && !strings.Contains(m.HTML, "Project Type")
		})).Return(nil).Once()
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		req := validRequest()
		req.ProjectType = ""
		require.NoError(t, uc.SendContactMessage(context.Background(), req))
		sender.AssertExpectations(t)
	})

	t.Run("Should compose subject and reply-to from the submitter", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil).Run(func(args mock.Arguments) {
			msg := args.Get(1).(email.Message)
			assert.Equal(t, "New Contact Form Submission from Jane", msg.Subject)
			assert.Equal(t, "jane@x.com", msg.ReplyTo)
			assert.Contains(t, msg.HTML, "Web Development")
		})
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		require.NoError(t, uc.SendContactMessage(context.Background(), validRequest()))
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should wrap dispatch failures", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.ErrNotConfigured).Once()
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		err := uc.SendContactMessage(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrDispatchFailed)
		assert.ErrorIs(t, err, email.ErrNotConfigured)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestCaptureForm(t *testing.T) {
	valid := contactform.Fields{
		Name:        "Jane",
		Email:       "jane@x.com",
		ProjectType: "Web Development",
		Message:     "Please build me a site",
	}

	t.Run("Should reject other form names", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		_, err := uc.CaptureForm(context.Background(), &domain.FormCapture{FormName: "newsletter", Fields: valid})
		assert.ErrorIs(t, err, domain.ErrUnknownForm)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should drop honeypot hits silently", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		accepted, err := uc.CaptureForm(context.Background(), &domain.FormCapture{FormName: "contact", BotField: "http://spam", Fields: valid})
		assert.NoError(t, err)
		assert.False(t, accepted)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should return field errors for invalid input", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		_, err := uc.CaptureForm(context.Background(), &domain.FormCapture{
			FormName: "contact",
			Fields:   contactform.Fields{Name: "", Email: "bad", ProjectType: "", Message: "hi"},
		})

		var invalid *domain.InvalidFormError
		require.ErrorAs(t, err, &invalid)
		assert.ErrorIs(t, err, domain.ErrInvalidForm)
		assert.Len(t, invalid.Fields, 4)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should dispatch valid forms once", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		uc := usecase.NewContactUsecase(sender, "QuantumWorks")

		accepted, err := uc.CaptureForm(context.Background(), &domain.FormCapture{FormName: "contact", Fields: valid})
		assert.NoError(t, err)
		assert.True(t, accepted)
		sender.AssertExpectations(t)
	})
}

func TestNewsletterSubscribe(t *testing.T) {
	t.Run("Should normalise and store new addresses", func(t *testing.T) {
		repo := memory.NewNewsletterRepository()
		uc := usecase.NewNewsletterUsecase(repo)

		created, err := uc.Subscribe(context.Background(), "  Jane@X.com ")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = uc.Subscribe(context.Background(), "jane@x.com")
		require.NoError(t, err)
		assert.False(t, created, "second subscription is a no-op")

		n, _ := repo.Count(context.Background())
		assert.EqualValues(t, 1, n)
	})

	t.Run("Should reject malformed addresses", func(t *testing.T) {
		repo := new(MockNewsletterRepo)
		uc := usecase.NewNewsletterUsecase(repo)

		_, err := uc.Subscribe(context.Background(), "not-an-email")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Should wrap storage failures", func(t *testing.T) {
		repo := new(MockNewsletterRepo)
		repo.On("Add", mock.Anything, "jane@x.com").Return(false, errors.New("connection reset"))
		uc := usecase.NewNewsletterUsecase(repo)

		_, err := uc.Subscribe(context.Background(), "jane@x.com")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestHealthCheck(t *testing.T) {
	assert.Equal(t, "disabled", usecase.NewHealthUsecase(nil).Check(context.Background())["redis"])

	down := usecase.NewHealthUsecase(func(ctx context.Context) error { return errors.New("down") })
	status := down.Check(context.Background())
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "unavailable", status["redis"])

	up := usecase.NewHealthUsecase(func(ctx context.Context) error { return nil })
	assert.Equal(t, "ok", up.Check(context.Background())["redis"])
}
