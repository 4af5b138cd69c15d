package impl

import (
	"context"
	"testing"

	"souq/internal/domain/entity"
	mockSvc "souq/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestNotifier(t *testing.T) (*notifier, *mockSvc.MockMessageChannel) {
	t.Helper()

	channel := mockSvc.NewMockMessageChannel(t)
	n := NewNotifier(NotifierParams{
		Channel: channel,
		Config:  testConfig(),
		Logger:  testLogger(),
	}).(*notifier)

	return n, channel
}

func TestNotifier_SendVerificationCode(t *testing.T) {
	n, channel := newTestNotifier(t)

	var sent string
	channel.On("Send", mock.Anything, "+9647701234567", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(2) }).
		Return(nil)

	ok := n.SendVerificationCode(context.Background(), "+9647701234567", "1234")
	assert.True(t, ok)
	assert.Contains(t, sent, "1234")
}

func TestNotifier_NotifyStoreMatch_IncludesLink(t *testing.T) {
	n, channel := newTestNotifier(t)

	seller := &entity.User{ID: 1, PhoneNumber: "+9647700000001", Role: entity.RoleSeller, StoreName: "Sara Electronics"}
	request := &entity.Request{ID: 10, Title: "Need 20 laptops", City: "Baghdad"}

	var sent string
	channel.On("Send", mock.Anything, seller.PhoneNumber, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(2) }).
		Return(nil)

	ok := n.NotifyStoreMatch(context.Background(), seller, request)
	assert.True(t, ok)
	assert.Contains(t, sent, "Sara Electronics")
	assert.Contains(t, sent, "Need 20 laptops")
	assert.Contains(t, sent, "https://souq.example/requests/10")
}

func TestNotifier_NotifyStoreMatch_SkipsPhonelessSeller(t *testing.T) {
	n, channel := newTestNotifier(t)

	seller := &entity.User{ID: 1, Role: entity.RoleSeller, StoreName: "No Phone"}
	request := &entity.Request{ID: 10, Title: "Need 20 laptops"}

	ok := n.NotifyStoreMatch(context.Background(), seller, request)
	assert.False(t, ok)
	channel.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_SendFailureIsReportedNotRaised(t *testing.T) {
	n, channel := newTestNotifier(t)

	channel.On("Send", mock.Anything, "+9647701234567", mock.AnythingOfType("string")).
		Return(assert.AnError)

	ok := n.SendVerificationCode(context.Background(), "+9647701234567", "1234")
	assert.False(t, ok)
}

func TestNotifier_NotifyUserApproval(t *testing.T) {
	n, channel := newTestNotifier(t)

	owner := &entity.User{ID: 42, PhoneNumber: "+9647701234567", FirstName: "Sara", LastName: "Hadi"}
	request := &entity.Request{ID: 10, Title: "Need 20 laptops"}

	var sent string
	channel.On("Send", mock.Anything, owner.PhoneNumber, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(2) }).
		Return(nil)

	ok := n.NotifyUserApproval(context.Background(), owner, request)
	assert.True(t, ok)
	assert.Contains(t, sent, "Sara Hadi")
	assert.Contains(t, sent, "approved")
}
