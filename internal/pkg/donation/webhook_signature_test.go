package donation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"type":"Settled","invoiceId":"abc123"}`)
	secret := "6c1f3a9b2d4e5f60718293a4b5c6d7e8"

	validSig := signBody(t, payload, secret)

	if !VerifyWebhookSignature(payload, validSig, secret) {
		t.Fatalf("expected valid signature to verify")
	}
	if VerifyWebhookSignature(payload, validSig, "other-secret") {
		t.Fatalf("expected signature under wrong secret to fail")
	}
	if VerifyWebhookSignature(payload, "deadbeef", secret) {
		t.Fatalf("expected garbage signature to fail")
	}
	if VerifyWebhookSignature(payload, "", secret) {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifyWebhookSignature(payload, validSig, "") {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestVerifyWebhookSignature_SingleByteMutation(t *testing.T) {
	payload := []byte(`{"type":"Settled","invoiceId":"abc123"}`)
	secret := "top-secret"
	validSig := signBody(t, payload, secret)

	mutated := append([]byte(nil), payload...)
	mutated[0] ^= 0x01
	if VerifyWebhookSignature(mutated, validSig, secret) {
		t.Fatalf("expected mutated payload to fail verification")
	}

	sigBytes := []byte(validSig)
	sigBytes[len(sigBytes)-1] ^= 0x01
	if VerifyWebhookSignature(payload, string(sigBytes), secret) {
		t.Fatalf("expected mutated signature to fail verification")
	}
}

func TestVerifyWebhookSignature_RequiresPrefix(t *testing.T) {
	payload := []byte(`{"type":"Settled"}`)
	secret := "top-secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	bare := hex.EncodeToString(mac.Sum(nil))

	if VerifyWebhookSignature(payload, bare, secret) {
		t.Fatalf("expected signature without sha256= prefix to fail")
	}
}
