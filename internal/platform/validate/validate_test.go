package validate

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type choiceRequest struct {
	PetID      int64  `json:"pet_id" validate:"required,gt=0"`
	PetType    string `json:"pet_type" validate:"omitempty,oneof=DOG CAT"`
	IsFavorite *bool  `json:"is_favorite" validate:"required"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(choiceRequest{PetType: "BIRD"})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	for _, f := range []string{"pet_id", "pet_type", "is_favorite"} {
		if _, ok := verr.Fields[f]; !ok {
			t.Fatalf("missing field %q in %#v", f, verr.Fields)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	fav := true
	if err := Struct(choiceRequest{PetID: 3, PetType: "CAT", IsFavorite: &fav}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Struct(choiceRequest{}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"VALIDATION_ERROR"`) || !strings.Contains(rec.Body.String(), `"pet_id"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
