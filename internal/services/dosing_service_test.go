package services

import (
	"context"
	"math"
	"testing"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/repository/memory"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestDosingService_Get(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	dosing := NewDosingService(memory.NewDosingRepository())
	params, err := dosing.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if params.TargetGlucose != domain.DefaultTargetGlucose ||
		params.ICR != domain.DefaultICR ||
		params.ISF != domain.DefaultISF ||
		params.InsulinDuration != domain.DefaultInsulinDuration {
		t.Errorf("first access = %+v, want defaults", params)
	}
}

func TestDosingService_Set(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		dosing := NewDosingService(memory.NewDosingRepository())
		updated, err := dosing.Set(ctx, userID, domain.DosingUpdate{ICR: fptr(12)})
		if err != nil {
			t.Fatalf("set: %v", err)
		}
		if updated.ICR != 12 {
			t.Errorf("ICR = %v, want 12", updated.ICR)
		}
		if updated.TargetGlucose != domain.DefaultTargetGlucose {
			t.Errorf("target = %v, want default preserved", updated.TargetGlucose)
		}

		reloaded, err := dosing.Get(ctx, userID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if reloaded.ICR != 12 {
			t.Errorf("reloaded ICR = %v, want 12", reloaded.ICR)
		}
	})

	t.Run("full update", func(t *testing.T) {
		dosing := NewDosingService(memory.NewDosingRepository())
		updated, err := dosing.Set(ctx, userID, domain.DosingUpdate{
			TargetGlucose:   fptr(110),
			ICR:             fptr(8),
			ISF:             fptr(40),
			InsulinDuration: iptr(180),
		})
		if err != nil {
			t.Fatalf("set: %v", err)
		}
		if updated.TargetGlucose != 110 || updated.ICR != 8 || updated.ISF != 40 || updated.InsulinDuration != 180 {
			t.Errorf("updated = %+v", updated)
		}
	})

	t.Run("rejected update leaves stored values intact", func(t *testing.T) {
		dosing := NewDosingService(memory.NewDosingRepository())
		if _, err := dosing.Set(ctx, userID, domain.DosingUpdate{ICR: fptr(15)}); err != nil {
			t.Fatalf("set: %v", err)
		}

		cases := []domain.DosingUpdate{
			{ICR: fptr(0)},
			{ISF: fptr(-10)},
			{TargetGlucose: fptr(math.NaN())},
			{TargetGlucose: fptr(math.Inf(1))},
			{InsulinDuration: iptr(0)},
			{ICR: fptr(9), ISF: fptr(-1)}, // one bad field rejects the whole edit
		}
		for _, update := range cases {
			if _, err := dosing.Set(ctx, userID, update); !apperrors.IsValidation(err) {
				t.Errorf("update %+v: got %v, want validation error", update, err)
			}
		}

		params, err := dosing.Get(ctx, userID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if params.ICR != 15 {
			t.Errorf("ICR = %v, want 15 untouched by rejected updates", params.ICR)
		}
	})
}
