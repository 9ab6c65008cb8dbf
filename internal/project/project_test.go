package project

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
)

var fixedNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local)

func TestNew_Defaults(t *testing.T) {
	p := New("p1", "X", "Y", fixedNow)

	if p.Status != StatusPlanning {
		t.Errorf("Status = %q, want %q", p.Status, StatusPlanning)
	}
	if p.StartDate != "2024-05-01" {
		t.Errorf("StartDate = %q, want 2024-05-01", p.StartDate)
	}
	if p.CreatedAt != "2024-05-01 14:30:00" {
		t.Errorf("CreatedAt = %q, want 2024-05-01 14:30:00", p.CreatedAt)
	}
	if p.Milestones == nil || len(p.Milestones) != 0 {
		t.Errorf("Milestones = %#v, want empty slice", p.Milestones)
	}
}

func TestRoundTrip(t *testing.T) {
	p := New("p1", "Platform", "Main web platform", fixedNow)
	p.Status = StatusActive
	p.AddMilestone("Design mockups", fixedNow)
	p.AddMilestone("Dev environment", fixedNow.Add(time.Hour))

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Project
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, p)
	}
}

func TestMarshal_FieldNames(t *testing.T) {
	data, err := json.Marshal(Project{ID: "p1", Name: "X", Description: "Y"})
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"project_id", "name", "description", "status", "start_date", "milestones", "created_at"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("serialized project missing field %q: %s", name, data)
		}
	}
	if string(fields["milestones"]) != "[]" {
		t.Errorf("milestones = %s, want []", fields["milestones"])
	}
}

func TestUnmarshal_MissingOptionalFields(t *testing.T) {
	var p Project
	if err := json.Unmarshal([]byte(`{"project_id":"p1","name":"X","description":"Y"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Status != DefaultStatus {
		t.Errorf("Status = %q, want %q", p.Status, DefaultStatus)
	}
	if p.StartDate == "" || p.CreatedAt == "" {
		t.Errorf("StartDate/CreatedAt should default to now, got %q / %q", p.StartDate, p.CreatedAt)
	}
	if p.Milestones == nil {
		t.Error("Milestones should default to empty slice")
	}
}

func TestUnmarshal_NullStartDate(t *testing.T) {
	var p Project
	data := `{"project_id":"p1","name":"X","description":"Y","start_date":null,"milestones":null}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.StartDate == "" {
		t.Error("null start_date should fall back to today")
	}
	if p.Milestones == nil {
		t.Error("null milestones should fall back to empty slice")
	}
}

func TestUnmarshal_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"no id", `{"name":"X","description":"Y"}`, "project_id"},
		{"no name", `{"project_id":"p1","description":"Y"}`, "name"},
		{"no description", `{"project_id":"p1","name":"X"}`, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Project
			err := json.Unmarshal([]byte(tt.data), &p)
			if !errors.Is(err, store.ErrMissingField) {
				t.Fatalf("Unmarshal() error = %v, want ErrMissingField", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name field %q", err, tt.field)
			}
		})
	}
}

func TestUnmarshal_UnknownStatusKept(t *testing.T) {
	var p Project
	data := `{"project_id":"p1","name":"X","description":"Y","status":"archived"}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatal(err)
	}
	if p.Status != "archived" {
		t.Errorf("Status = %q, want archived", p.Status)
	}
	if p.Status.Known() {
		t.Error("archived should not be a known status")
	}
	if !StatusOnHold.Known() {
		t.Error("on_hold should be a known status")
	}
}

func TestClone_Independent(t *testing.T) {
	p := New("p1", "X", "Y", fixedNow)
	p.AddMilestone("first", fixedNow)

	c := p.Clone()
	c.AddMilestone("second", fixedNow)
	c.Milestones[0].Description = "changed"

	if len(p.Milestones) != 1 || p.Milestones[0].Description != "first" {
		t.Errorf("clone mutation leaked into original: %+v", p.Milestones)
	}
}
