package services_test

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/stretchr/testify/mock"
)

// MockQuoteDeliverer is a mock implementation of QuoteDeliverer
type MockQuoteDeliverer struct {
	mock.Mock
}

func (m *MockQuoteDeliverer) Deliver(ctx context.Context, reference string, req *quote.Request) error {
	args := m.Called(ctx, reference, req)
	return args.Error(0)
}

// MockContactSender is a mock implementation of ContactSender
type MockContactSender struct {
	mock.Mock
}

func (m *MockContactSender) SendContact(ctx context.Context, msg *notify.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockCaptchaVerifier is a mock implementation of CaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

// MockDatasheetResolver is a mock implementation of DatasheetResolver
type MockDatasheetResolver struct {
	mock.Mock
}

func (m *MockDatasheetResolver) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
	}
}
