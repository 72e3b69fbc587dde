package signing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PolarWolf314/sigil/internal/codec"
	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/primitives"
)

func setup(t *testing.T, inStore int, outOfStore int) (*Signer, []credentials.Credential, []credentials.Credential) {
	t.Helper()
	suite := primitives.Default()
	store := credentials.NewStore(suite)
	var stored, foreign []credentials.Credential
	for i := 0; i < inStore; i++ {
		c, err := credentials.New(suite, "")
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := store.Add(c, ""); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		stored = append(stored, c)
	}
	for i := 0; i < outOfStore; i++ {
		c, err := credentials.New(suite, "")
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		foreign = append(foreign, c)
	}
	return NewSigner(store, logger.Logger{}), stored, foreign
}

func TestSignVerify_RoundTrip(t *testing.T) {
	signer, stored, _ := setup(t, 1, 0)
	payload := codec.UTF8("doc-hash-bytes")

	sig, err := signer.Sign(context.Background(), []string{stored[0].ID}, payload).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !strings.HasPrefix(sig.String(), "ed25519-1:"+stored[0].ID+":") {
		t.Fatalf("Unexpected signature text %q", sig.String())
	}

	owner, ok, err := signer.Verify(payload, sig.String())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok || owner != stored[0].ID {
		t.Errorf("Expected owner %s, got %q ok=%t", stored[0].ID, owner, ok)
	}
}

func TestSign_FirstStoredOwnerWins(t *testing.T) {
	signer, stored, foreign := setup(t, 1, 1)
	a, b := stored[0], foreign[0]

	sig, err := signer.Sign(context.Background(), []string{b.ID, a.ID}, codec.UTF8("doc-hash-bytes")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if sig.Owner != a.ID {
		t.Errorf("Expected embedded identity A, got %s", sig.Owner)
	}
}

func TestSign_OrderBreaksTies(t *testing.T) {
	signer, stored, _ := setup(t, 2, 0)
	sig, err := signer.Sign(context.Background(), []string{stored[1].ID, stored[0].ID}, []byte("x")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if sig.Owner != stored[1].ID {
		t.Errorf("Expected the first candidate to be used, got %s", sig.Owner)
	}
}

func TestSign_NoOwner(t *testing.T) {
	signer, _, foreign := setup(t, 1, 1)
	_, err := signer.Sign(context.Background(), []string{foreign[0].ID, "unrelated_id"}, []byte("x")).Wait(context.Background())
	if !errors.Is(err, kerrors.ErrNoOwner) {
		t.Fatalf("Expected ErrNoOwner, got %v", err)
	}
	_, err = signer.Sign(context.Background(), nil, []byte("x")).Wait(context.Background())
	if !errors.Is(err, kerrors.ErrNoOwner) {
		t.Fatalf("Expected ErrNoOwner for empty owner list, got %v", err)
	}
}

func TestSign_SkipsReaderOnlyRecord(t *testing.T) {
	suite := primitives.Default()
	store := credentials.NewStore(suite)
	full, err := credentials.New(suite, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	readerOnly := credentials.Credential{ID: "reader-only", EncryptSecret: full.EncryptSecret}
	if err := store.Add(readerOnly, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	signer := NewSigner(store, logger.Logger{})
	if _, err := signer.Sign(context.Background(), []string{"reader-only"}, []byte("x")).Wait(context.Background()); !errors.Is(err, kerrors.ErrNoOwner) {
		t.Fatalf("Expected ErrNoOwner for a record without signing secret, got %v", err)
	}
}

func TestSign_CanceledContext(t *testing.T) {
	signer, stored, _ := setup(t, 1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := signer.Sign(ctx, []string{stored[0].ID}, []byte("x")).Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestPending_WaitHonoursContext(t *testing.T) {
	p := &Pending{done: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled from an unresolved signature, got %v", err)
	}
}

func TestVerify_InvalidSignature(t *testing.T) {
	signer, stored, _ := setup(t, 1, 0)
	sig, err := signer.Sign(context.Background(), []string{stored[0].ID}, []byte("original")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	owner, ok, err := signer.Verify([]byte("tampered"), sig.String())
	if err != nil {
		t.Fatalf("Expected a negative result, not an error: %v", err)
	}
	if ok || owner != "" {
		t.Errorf("Expected no owner, got %q ok=%t", owner, ok)
	}
}

func TestVerify_WrongOwner(t *testing.T) {
	signer, stored, foreign := setup(t, 1, 1)
	sig, err := signer.Sign(context.Background(), []string{stored[0].ID}, []byte("doc")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	sig.Owner = foreign[0].ID
	if _, ok, err := signer.Verify([]byte("doc"), sig.String()); err != nil || ok {
		t.Errorf("Expected signature claimed by another identity to fail, got ok=%t err=%v", ok, err)
	}
}

func TestVerify_WithoutCredentials(t *testing.T) {
	signer, stored, _ := setup(t, 1, 0)
	sig, err := signer.Sign(context.Background(), []string{stored[0].ID}, []byte("doc")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	verifier := NewSigner(credentials.NewStore(primitives.Default()), logger.Logger{})
	owner, ok, err := verifier.Verify([]byte("doc"), sig.String())
	if err != nil || !ok || owner != stored[0].ID {
		t.Errorf("Expected verification to need only the identity, got %q ok=%t err=%v", owner, ok, err)
	}
}

func TestVerify_InvalidScheme(t *testing.T) {
	signer, stored, _ := setup(t, 1, 0)
	sig, err := signer.Sign(context.Background(), []string{stored[0].ID}, []byte("doc")).Wait(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	foreign := strings.Replace(sig.String(), "ed25519-1", "ed448-1", 1)
	if _, _, err := signer.Verify([]byte("doc"), foreign); !errors.Is(err, kerrors.ErrInvalidScheme) {
		t.Fatalf("Expected ErrInvalidScheme, got %v", err)
	}
}

func TestVerify_MalformedOwner(t *testing.T) {
	signer, _, _ := setup(t, 0, 0)
	if _, _, err := signer.Verify([]byte("doc"), "ed25519-1:unrelated_id:AAAA"); !errors.Is(err, kerrors.ErrMalformed) {
		t.Fatalf("Expected ErrMalformed, got %v", err)
	}
}
