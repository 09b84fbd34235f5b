package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"folio/internal/mail"
	"folio/internal/model"
)

func TestContactService_Submit(t *testing.T) {
	in := ContactInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Project inquiry",
		Message: "I would like to talk about a project.",
	}

	t.Run("persists and notifies", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ContactMessage")).Return(nil)

		notified := make(chan *model.ContactMessage, 1)
		mockMailer := new(MockMailer)
		mockMailer.On("SendContactNotification", mock.AnythingOfType("*model.ContactMessage")).Run(func(args mock.Arguments) {
			notified <- args.Get(0).(*model.ContactMessage)
		}).Return(nil)

		service := NewContactService(mockRepo, mockMailer)
		msg, err := service.Submit(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, "Project inquiry", msg.Subject)

		select {
		case sent := <-notified:
			assert.Equal(t, "jane@example.com", sent.Email)
		case <-time.After(time.Second):
			t.Fatal("notification was never sent")
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("mail failure does not fail the submission", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ContactMessage")).Return(nil)

		done := make(chan struct{})
		mockMailer := new(MockMailer)
		mockMailer.On("SendContactNotification", mock.Anything).Run(func(mock.Arguments) {
			close(done)
		}).Return(errors.New("smtp down"))

		service := NewContactService(mockRepo, mockMailer)
		msg, err := service.Submit(context.Background(), in)

		assert.NoError(t, err)
		assert.NotNil(t, msg)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("notification was never attempted")
		}
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		mockMailer := new(MockMailer)
		service := NewContactService(mockRepo, mockMailer)
		msg, err := service.Submit(context.Background(), in)

		assert.Error(t, err)
		assert.Nil(t, msg)
		mockMailer.AssertNotCalled(t, "SendContactNotification", mock.Anything)
	})
}

func TestContactService_List(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("List", mock.Anything, 0, 10).Return([]model.ContactMessage{
		{Subject: "first"}, {Subject: "second"},
	}, nil)
	mockRepo.On("Count", mock.Anything).Return(int64(2), nil)

	service := NewContactService(mockRepo, mail.Noop{})
	msgs, pagination, err := service.List(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.False(t, pagination.HasNext)
	mockRepo.AssertExpectations(t)
}
