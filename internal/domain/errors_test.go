package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNotFoundFamily(t *testing.T) {
	for _, err := range []error{ErrRestaurantNotFound, ErrDetailsNotFound, ErrReviewNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should match ErrNotFound", err)
		}
	}
	if errors.Is(ErrReviewNotFound, ErrRestaurantNotFound) {
		t.Error("review and restaurant not-found must stay distinguishable")
	}
}

func TestPartialIndexError(t *testing.T) {
	cause := errors.New("timeout")
	err := NewPartialIndex([]string{"ranking", "dedup"}, cause)

	if !errors.Is(err, ErrPartialIndex) {
		t.Error("expected errors.Is ErrPartialIndex")
	}
	var pe *PartialIndexError
	if !errors.As(err, &pe) {
		t.Fatal("expected *PartialIndexError")
	}
	if len(pe.Failed) != 2 {
		t.Errorf("failed = %v", pe.Failed)
	}
	if !strings.Contains(err.Error(), "ranking, dedup") || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestStoreFailure(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreFailure("get restaurant", cause)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("expected ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
}
