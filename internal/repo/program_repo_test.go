package repo

import (
	"context"
	"testing"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

func newProgram() *domain.DietProgram {
	return &domain.DietProgram{
		Title:       domain.LocalizedText{EN: "Gut Reset", AZ: "Bağırsaq Bərpası", RU: "Перезагрузка ЖКТ"},
		Description: domain.LocalizedText{EN: "desc en", AZ: "desc az", RU: "desc ru"},
		Price:       149.90,
		Image:       "https://cdn.example.com/gut.jpg",
		Duration:    "8 weeks",
		Features: domain.LocalizedStringList{
			EN: domain.StringList{"Weekly menu", "Herbal teas"},
			AZ: domain.StringList{"Həftəlik menyu", "Bitki çayları"},
			RU: domain.StringList{"Недельное меню", "Травяные чаи"},
		},
	}
}

// Localized fields must survive the flat per-language column mapping with
// no cross-language swapping and no truncation.
func TestDietProgram_LocalizedRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := newProgram()
	created, err := CreateDietProgram(ctx, db, in)
	if err != nil {
		t.Fatalf("CreateDietProgram: %v", err)
	}
	if created.ID == "" {
		t.Fatal("id not assigned")
	}

	got, err := GetDietProgram(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("GetDietProgram: %v", err)
	}
	if got.Title != in.Title {
		t.Fatalf("title round trip: got %+v want %+v", got.Title, in.Title)
	}
	if got.Description != in.Description {
		t.Fatalf("description round trip: got %+v want %+v", got.Description, in.Description)
	}
	for lang, want := range map[string][]string{
		domain.LangEN: in.Features.EN,
		domain.LangAZ: in.Features.AZ,
		domain.LangRU: in.Features.RU,
	} {
		have := got.Features.In(lang)
		if len(have) != len(want) {
			t.Fatalf("features[%s] length = %d; want %d", lang, len(have), len(want))
		}
		for i := range want {
			if have[i] != want[i] {
				t.Errorf("features[%s][%d] = %q; want %q", lang, i, have[i], want[i])
			}
		}
	}
}

func TestUpdateDietProgram_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := CreateDietProgram(ctx, db, newProgram())
	if err != nil {
		t.Fatalf("CreateDietProgram: %v", err)
	}

	got, err := UpdateDietProgram(ctx, db, created.ID, map[string]any{
		"price":    99.0,
		"title_ru": "Новая перезагрузка",
	})
	if err != nil {
		t.Fatalf("UpdateDietProgram: %v", err)
	}
	if got.Price != 99.0 || got.Title.RU != "Новая перезагрузка" {
		t.Fatalf("updated fields not applied: %+v", got)
	}
	// Untouched languages stay put.
	if got.Title.EN != "Gut Reset" || got.Title.AZ != "Bağırsaq Bərpası" {
		t.Fatalf("partial update clobbered sibling columns: %+v", got.Title)
	}
}

func TestUpdateDietProgram_Missing(t *testing.T) {
	db := newTestDB(t)
	if _, err := UpdateDietProgram(context.Background(), db, "nope", map[string]any{"price": 1.0}); err != ErrNotFound {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
}

func TestListDietPrograms_Empty(t *testing.T) {
	db := newTestDB(t)
	out, err := ListDietPrograms(context.Background(), db)
	if err != nil {
		t.Fatalf("ListDietPrograms: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d; want 0", len(out))
	}
}

func TestDeleteDietProgram(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := CreateDietProgram(ctx, db, newProgram())
	if err != nil {
		t.Fatalf("CreateDietProgram: %v", err)
	}
	if err := DeleteDietProgram(ctx, db, created.ID); err != nil {
		t.Fatalf("DeleteDietProgram: %v", err)
	}
	if _, err := GetDietProgram(ctx, db, created.ID); err != ErrNotFound {
		t.Fatalf("get after delete: %v; want ErrNotFound", err)
	}
}
