//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerNames(t *testing.T) {
	f := NewFakerWithSeed(1)
	if f.FirstName() == "" {
		t.Error("FirstName returned empty string")
	}
	if f.LastName() == "" {
		t.Error("LastName returned empty string")
	}
	if f.Color() == "" {
		t.Error("Color returned empty string")
	}
	if f.Word() == "" {
		t.Error("Word returned empty string")
	}
}

func TestFakerUUID(t *testing.T) {
	f := NewFakerWithSeed(1)
	u1 := f.UUID()
	u2 := f.UUID()
	if len(u1) != 36 {
		t.Errorf("UUID has unexpected length: %q", u1)
	}
	if u1 == u2 {
		t.Error("Consecutive UUIDs are identical")
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int(5, 10) returned %d", v)
		}
	}
}

func TestFakerFloat64(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Float64(1.5, 2.5)
		if v < 1.5 || v > 2.5 {
			t.Errorf("Float64(1.5, 2.5) returned %f", v)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFakerWithSeed(1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Errorf("DateRange returned %v outside [%v, %v]", d, start, end)
		}
	}
}

func TestFakerChance(t *testing.T) {
	f := NewFakerWithSeed(1)

	for i := 0; i < 100; i++ {
		if f.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !f.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}

	// A 50% chance should land in a wide band over many draws.
	hits := 0
	for i := 0; i < 10000; i++ {
		if f.Chance(0.5) {
			hits++
		}
	}
	if hits < 4500 || hits > 5500 {
		t.Errorf("Chance(0.5) hit %d/10000 times", hits)
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"a", "b", "c"}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := Choose(f, items)
		seen[v] = true
	}
	for _, item := range items {
		if !seen[item] {
			t.Errorf("Choose never returned %q", item)
		}
	}

	var empty []string
	if v := Choose(f, empty); v != "" {
		t.Errorf("Choose on empty slice returned %q", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"common", "rare"}
	weights := []int{99, 1}

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	if counts["common"] < 9700 {
		t.Errorf("Expected 'common' ~99%% of draws, got %d/10000", counts["common"])
	}

	// Zero-weight-safe edge cases
	var empty []string
	if v := ChooseWeighted(f, empty, []int{1}); v != "" {
		t.Errorf("ChooseWeighted on empty slice returned %q", v)
	}
	if v := ChooseWeighted(f, items, nil); v != "" {
		t.Errorf("ChooseWeighted with no weights returned %q", v)
	}
}

func TestDefaultBatchConfig(t *testing.T) {
	cfg := DefaultBatchConfig()
	if cfg.BatchSize < 1 {
		t.Errorf("BatchSize must be positive, got %d", cfg.BatchSize)
	}
	if cfg.ProgressInterval < 1 {
		t.Errorf("ProgressInterval must be positive, got %d", cfg.ProgressInterval)
	}
}
