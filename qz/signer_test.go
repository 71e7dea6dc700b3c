package qz

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"testing"
)

func TestSigner(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	encodings := map[string]string{
		"pkcs8": string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})),
		"pkcs1": string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})),
	}
	for name, keyPEM := range encodings {
		t.Run(name, func(t *testing.T) {
			s, err := NewSigner("-----BEGIN CERTIFICATE-----", keyPEM)
			if err != nil {
				t.Fatalf("NewSigner: %v", err)
			}
			sig, err := s.Sign("print-job-123")
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			raw, err := base64.StdEncoding.DecodeString(sig)
			if err != nil {
				t.Fatalf("signature is not base64: %v", err)
			}
			digest := sha512.Sum512([]byte("print-job-123"))
			if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA512, digest[:], raw); err != nil {
				t.Fatalf("signature does not verify: %v", err)
			}
		})
	}

	t.Run("not configured", func(t *testing.T) {
		s, err := NewSigner("", "")
		if err != nil {
			t.Fatalf("NewSigner: %v", err)
		}
		if _, err := s.Sign("x"); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
		if _, err := s.Certificate(); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("garbage key", func(t *testing.T) {
		if _, err := NewSigner("", "not a pem"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
