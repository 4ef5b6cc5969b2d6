package razorpay

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("empty config should be invalid, got %v", err)
	}
	if err := (Config{KeyID: "rzp_test_key"}).Validate(); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing secret should be invalid, got %v", err)
	}
	if err := (Config{KeyID: "rzp_test_key", KeySecret: "secret"}).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	const orderID = "order_ABC123"
	const paymentID = "pay_XYZ789"

	signature := SignPayload(secret, orderID, paymentID)
	if !VerifySignature(secret, orderID, paymentID, signature) {
		t.Fatalf("genuine signature rejected")
	}
	if VerifySignature(secret, orderID, paymentID, signature+"00") {
		t.Fatalf("tampered signature accepted")
	}
	if VerifySignature(secret, orderID, "pay_other", signature) {
		t.Fatalf("signature bound to wrong payment accepted")
	}
	if VerifySignature("other_secret", orderID, paymentID, signature) {
		t.Fatalf("signature verified with wrong secret")
	}
	if VerifySignature(secret, orderID, paymentID, "") {
		t.Fatalf("empty signature accepted")
	}
}

func TestClientVerifySignature(t *testing.T) {
	client, err := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "s3cr3t"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	signature := SignPayload("s3cr3t", "order_1", "pay_1")
	if err := client.VerifySignature("order_1", "pay_1", signature); err != nil {
		t.Fatalf("verify genuine signature: %v", err)
	}
	if err := client.VerifySignature("order_1", "pay_2", signature); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("want ErrSignatureMismatch, got %v", err)
	}
}
