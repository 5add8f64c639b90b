package concurrent

import (
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/aerr"
)

func TestCancelTokenNewNotCancelled(t *testing.T) {
	token := NewCancelToken()
	if token.IsCancelled() {
		t.Fatal("new token should not be cancelled")
	}
}

func TestCancelTokenCancel(t *testing.T) {
	token := NewCancelToken()
	token.Cancel()
	if !token.IsCancelled() {
		t.Fatal("expected token to be cancelled")
	}
}

func TestCancelTokenCheck(t *testing.T) {
	token := NewCancelToken()
	if err := token.Check(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	token.Cancel()
	err := token.Check()
	if err == nil {
		t.Fatal("expected an error after cancel")
	}
	if e, ok := err.(*aerr.Error); !ok || e.Kind != aerr.KindCancelled {
		t.Fatalf("expected KindCancelled, got %v", err)
	}
}

func TestCancelTokenSharesStateOnCopy(t *testing.T) {
	token1 := NewCancelToken()
	token2 := token1 // value copy, but shares the underlying flag

	token1.Cancel()
	if !token2.IsCancelled() {
		t.Fatal("expected copy to observe cancellation")
	}
}
