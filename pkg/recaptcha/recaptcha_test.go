package recaptcha

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHTTPClient mocks the HTTP client
type MockHTTPClient struct {
	mock.Mock
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

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func siteverify(remoteIP string) interface{} {
	return mock.MatchedBy(func(req *http.Request) bool {
		if req.URL.String() != verifyURL || req.Method != http.MethodPost {
			return false
		}
		if err := req.ParseForm(); err != nil {
			return false
		}
		return req.PostForm.Get("secret") == "test-secret-key" && req.PostForm.Get("remoteip") == remoteIP
	})
}

func TestVerifier_Verify_Success(t *testing.T) {
	mockClient := new(MockHTTPClient)
	verifier := NewVerifier("test-secret-key", mockClient)

	mockClient.On("Do", siteverify("203.0.113.7")).
		Return(response(200, `{"success": true, "hostname": "radshield.fr"}`), nil)

	err := verifier.Verify(context.Background(), "valid-token", "203.0.113.7")

	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestVerifier_Verify_Failed(t *testing.T) {
	mockClient := new(MockHTTPClient)
	verifier := NewVerifier("test-secret-key", mockClient)

	mockClient.On("Do", siteverify("")).
		Return(response(200, `{"success": false, "error-codes": ["invalid-input-response"]}`), nil)

	err := verifier.Verify(context.Background(), "invalid-token", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-input-response")
}

func TestVerifier_Verify_NetworkError(t *testing.T) {
	mockClient := new(MockHTTPClient)
	verifier := NewVerifier("test-secret-key", mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	err := verifier.Verify(context.Background(), "token", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify recaptcha")
}

func TestVerifier_Verify_BadStatusAndBody(t *testing.T) {
	mockClient := new(MockHTTPClient)
	verifier := NewVerifier("test-secret-key", mockClient)

	mockClient.On("Do", mock.Anything).Return(response(500, "oops"), nil).Once()
	mockClient.On("Do", mock.Anything).Return(response(200, "not json"), nil).Once()

	assert.ErrorContains(t, verifier.Verify(context.Background(), "token", ""), "status 500")
	assert.ErrorContains(t, verifier.Verify(context.Background(), "token", ""), "decode")
}

func TestVerifier_Verify_EmptyToken(t *testing.T) {
	mockClient := new(MockHTTPClient)
	verifier := NewVerifier("test-secret-key", mockClient)

	assert.Error(t, verifier.Verify(context.Background(), "", ""))
	mockClient.AssertNotCalled(t, "Do", mock.Anything)
}
