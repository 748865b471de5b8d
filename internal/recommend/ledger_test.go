// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestLedger_Record(t *testing.T) {
	tests := []struct {
		name   string
		events []struct {
			itemID string
			typ    InteractionType
		}
		want map[string]float64
	}{
		{
			name: "single view",
			events: []struct {
				itemID string
				typ    InteractionType
			}{
				{"item1", InteractionView},
			},
			want: map[string]float64{"item1": 1},
		},
		{
			name: "weights accumulate per item",
			events: []struct {
				itemID string
				typ    InteractionType
			}{
				{"item1", InteractionView},
				{"item1", InteractionLike},
				{"item1", InteractionPurchase},
			},
			want: map[string]float64{"item1": 14},
		},
		{
			name: "items tracked independently",
			events: []struct {
				itemID string
				typ    InteractionType
			}{
				{"item1", InteractionCartAdd},
				{"item2", InteractionView},
			},
			want: map[string]float64{"item1": 5, "item2": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewInteractionLedger()
			for _, ev := range tt.events {
				if err := ledger.Record("u1", ev.itemID, ev.typ); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}
			if got := ledger.VectorFor("u1"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VectorFor(u1) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedger_RejectsInvalidTypeWithoutMutation(t *testing.T) {
	ledger := NewInteractionLedger()
	if err := ledger.Record("u1", "item1", InteractionView); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	before := ledger.VectorFor("u1")

	err := ledger.Record("u1", "item1", InteractionType(99))
	if !errors.Is(err, ErrInvalidInteractionType) {
		t.Fatalf("Record() error = %v, want ErrInvalidInteractionType", err)
	}

	if after := ledger.VectorFor("u1"); !reflect.DeepEqual(before, after) {
		t.Errorf("rejected event mutated the ledger: before %v, after %v", before, after)
	}
	if ledger.HasUser("ghost") {
		t.Error("rejected event must not create a user")
	}
}

func TestLedger_VectorForReturnsCopy(t *testing.T) {
	ledger := NewInteractionLedger()
	if err := ledger.Record("u1", "item1", InteractionLike); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	snapshot := ledger.VectorFor("u1")
	snapshot["item1"] = 9999
	snapshot["injected"] = 1

	if got := ledger.VectorFor("u1"); !reflect.DeepEqual(got, map[string]float64{"item1": 3}) {
		t.Errorf("snapshot mutation leaked into the ledger: %v", got)
	}
}

func TestLedger_UnknownUser(t *testing.T) {
	ledger := NewInteractionLedger()

	if got := ledger.VectorFor("nobody"); len(got) != 0 {
		t.Errorf("VectorFor(unknown) = %v, want empty", got)
	}
	if ledger.HasUser("nobody") {
		t.Error("HasUser(unknown) = true, want false")
	}
}

func TestLedger_AllUsersSorted(t *testing.T) {
	ledger := NewInteractionLedger()
	for _, id := range []string{"charlie", "alice", "bob"} {
		if err := ledger.Record(id, "item1", InteractionView); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	want := []string{"alice", "bob", "charlie"}
	if got := ledger.AllUsers(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllUsers() = %v, want %v", got, want)
	}
}

func TestLedger_ConcurrentRecords(t *testing.T) {
	ledger := NewInteractionLedger()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", w%4)
			for i := 0; i < perWorker; i++ {
				if err := ledger.Record(userID, "item1", InteractionView); err != nil {
					t.Errorf("Record() error = %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	var total float64
	for _, id := range ledger.AllUsers() {
		total += ledger.VectorFor(id)["item1"]
	}
	if want := float64(workers * perWorker); total != want {
		t.Errorf("accumulated weight = %f, want %f", total, want)
	}
}

func TestInteractionType_Weight(t *testing.T) {
	tests := []struct {
		typ  InteractionType
		want float64
	}{
		{InteractionView, 1},
		{InteractionLike, 3},
		{InteractionCartAdd, 5},
		{InteractionPurchase, 10},
		{InteractionType(42), 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Weight(); got != tt.want {
				t.Errorf("Weight() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestParseInteractionType(t *testing.T) {
	tests := []struct {
		in      string
		want    InteractionType
		wantErr bool
	}{
		{"view", InteractionView, false},
		{"like", InteractionLike, false},
		{"cart_add", InteractionCartAdd, false},
		{"purchase", InteractionPurchase, false},
		{"wishlist_add", 0, true},
		{"", 0, true},
		{"VIEW", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInteractionType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInteractionType) {
					t.Errorf("ParseInteractionType(%q) error = %v, want ErrInvalidInteractionType", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInteractionType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInteractionType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
