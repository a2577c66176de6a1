package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureKnownVectors(t *testing.T) {
	// Vectors computed independently with a reference HMAC-SHA256 implementation
	assert.Equal(t,
		"2ae265b7794ea1d60d2bfbcb6be50d9e059bce607577aeaf83c1297090a8dfc7",
		Signature("test_secret", "order_abc", "pay_123"))
	assert.Equal(t,
		"9587363a3b73709b6f6dd76f0beab809cd33d9524422d85fd4c95db8d56cedce",
		Signature("rzp_secret_xyz", "order_MnO123", "pay_PqR456"))
}

func TestSignatureDeterministic(t *testing.T) {
	first := Signature("secret", "order_1", "pay_1")
	second := Signature("secret", "order_1", "pay_1")
	assert.Equal(t, first, second)

	// Any input change must change the signature
	assert.NotEqual(t, first, Signature("secret", "order_1", "pay_2"))
	assert.NotEqual(t, first, Signature("secret", "order_2", "pay_1"))
	assert.NotEqual(t, first, Signature("other", "order_1", "pay_1"))
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("test_secret", "order_abc", "pay_123")

	assert.True(t, VerifySignature("test_secret", "order_abc", "pay_123", sig))
	assert.False(t, VerifySignature("test_secret", "order_abc", "pay_123", sig+"00"))
	assert.False(t, VerifySignature("test_secret", "order_abc", "pay_999", sig))
	assert.False(t, VerifySignature("wrong_secret", "order_abc", "pay_123", sig))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "test_secret", pass)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(50000), body["amount"])
		assert.Equal(t, "INR", body["currency"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   50000,
			"currency": "INR",
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "rzp_test_key", "test_secret")

	order, raw, err := client.CreateOrder(50000, "INR", "order_1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.NotEmpty(t, raw)
}

func TestCreateOrderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad_key", "bad_secret")

	order, _, err := client.CreateOrder(10000, "INR", "order_x")
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "razorpay API error")
}
