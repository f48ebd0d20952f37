package validation

import (
	"testing"

	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
)

type checkoutRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
	Days   int   `json:"days" validate:"required,gte=1"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	if err := v.Validate(checkoutRequest{BookID: 1, Days: 7}); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidateReturnsDomainError(t *testing.T) {
	v := New()
	err := v.Validate(checkoutRequest{BookID: 1, Days: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domainerrors.Is(err, domainerrors.ErrValidation) {
		t.Errorf("expected VALIDATION code, got %v", err)
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(checkoutRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var derr *domainerrors.Error
	if !domainerrors.As(err, &derr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	fields, ok := derr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field details map, got %T", derr.Details)
	}
	if _, ok := fields["book_id"]; !ok {
		t.Errorf("expected json tag name book_id in details, got %v", fields)
	}
}
