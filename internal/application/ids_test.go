package application

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

func TestNewSnowflakeIDs(t *testing.T) {
	t.Parallel()

	next, err := NewSnowflakeIDs(1)
	if err != nil {
		t.Fatalf("NewSnowflakeIDs returned error: %v", err)
	}
	seen := make(map[int64]struct{})
	var last int64
	for i := 0; i < 1000; i++ {
		id := next()
		if id <= last {
			t.Fatalf("expected increasing ids, got %d after %d", id, last)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
		last = id
	}

	if _, err := NewSnowflakeIDs(5000); err == nil {
		t.Fatalf("expected out of range node to be rejected")
	}
}

func TestPlaceholderPhoto(t *testing.T) {
	t.Parallel()

	first := PlaceholderPhoto(42)
	if first != PlaceholderPhoto(42) {
		t.Fatalf("expected placeholder to be deterministic")
	}
	if first == PlaceholderPhoto(43) {
		t.Fatalf("expected different ids to yield different placeholders")
	}
	if !strings.HasPrefix(first, "https://picsum.photos/seed/") || !strings.HasSuffix(first, "/100/100") {
		t.Fatalf("unexpected placeholder url %q", first)
	}
}

func TestSnowflakeIDsSurviveFloatJSONClients(t *testing.T) {
	t.Parallel()

	next, err := NewSnowflakeIDs(1)
	if err != nil {
		t.Fatalf("NewSnowflakeIDs returned error: %v", err)
	}

	for i := 0; i < 50; i++ {
		id := next()
		servant := Servant{ID: id, Name: "Ana Silva", Active: true}
		item := ScheduleItem{ID: id, FunctionID: 5, ServantID: id, ShiftID: 1}

		for name, value := range map[string]any{"servant": servant, "item": item} {
			raw, err := json.Marshal(value)
			if err != nil {
				t.Fatalf("marshal %s: %v", name, err)
			}
			var generic map[string]any
			if err := json.Unmarshal(raw, &generic); err != nil {
				t.Fatalf("unmarshal %s: %v", name, err)
			}
			if got := generic["id"]; got != strconv.FormatInt(id, 10) {
				t.Fatalf("%s id %d decoded as %v (%T)", name, id, got, got)
			}
		}

		var back ScheduleItem
		raw, _ := json.Marshal(item)
		if err := json.Unmarshal(raw, &back); err != nil || back != item {
			t.Fatalf("item round trip: got %+v, err %v", back, err)
		}
	}
}
