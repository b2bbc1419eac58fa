package cluster

import (
	"context"
	"reflect"
	"testing"
)

func TestResultInfoPowerMax(t *testing.T) {
	res, err := Search(context.Background(), fanGraph(t), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []any{
		"Node1:", "e",
		"Node2:", "f",
		"R size:", 3,
		"B size:", 3,
		"P saving (max):", 50.0,
	}
	if got := res.Info(); !reflect.DeepEqual(got, want) {
		t.Errorf("Info() = %v, want %v", got, want)
	}
}

func TestResultInfoSizeMax(t *testing.T) {
	res, err := Search(context.Background(), fanGraph(t), Options{Criterion: CriterionSize})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []any{
		"Node1:", "e",
		"Node2:", "f",
		"R size:", 3,
		"B size:", 3,
		"Size R+B(max):", 6,
		"P saving:", 50.0,
	}
	if got := res.Info(); !reflect.DeepEqual(got, want) {
		t.Errorf("Info() = %v, want %v", got, want)
	}
}

func TestResultInfoSizeThreshold(t *testing.T) {
	res, err := Search(context.Background(), fanGraph(t), Options{
		Criterion: CriterionSize,
		Parameter: "3",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := res.Info()
	if len(got) != 4 {
		t.Fatalf("Info() returned %d records, want 4", len(got))
	}
	wantFirst := []any{
		"Node1:", "a",
		"Node2:", "c",
		"R size:", 2,
		"B size:", 2,
		"Size R+B:", 4,
		"P saving:", 22.22,
	}
	if !reflect.DeepEqual(got[0], wantFirst) {
		t.Errorf("Info()[0] = %v, want %v", got[0], wantFirst)
	}
	wantLast := []any{
		"Node1:", "e",
		"Node2:", "f",
		"R size:", 3,
		"B size:", 3,
		"Size R+B:", 6,
		"P saving:", 50.0,
	}
	if !reflect.DeepEqual(got[3], wantLast) {
		t.Errorf("Info()[3] = %v, want %v", got[3], wantLast)
	}
}

func TestResultInfoPowerThreshold(t *testing.T) {
	res, err := Search(context.Background(), fanGraph(t), Options{Parameter: "20"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := res.Info()
	if len(got) != 4 {
		t.Fatalf("Info() returned %d records, want 4", len(got))
	}
	want := []any{
		"Node1:", "b",
		"Node2:", "e",
		"R size:", 1,
		"B size:", 4,
		"P saving:", 22.22,
	}
	if !reflect.DeepEqual(got[1], want) {
		t.Errorf("Info()[1] = %v, want %v", got[1], want)
	}
}

func TestResultInfoEmpty(t *testing.T) {
	res, err := Search(context.Background(), mustBuild(t, []string{"a"}, nil), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.Info(); len(got) != 0 {
		t.Errorf("Info() = %v, want empty", got)
	}
}
