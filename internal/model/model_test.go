package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCourseLevelRank(t *testing.T) {
	if !(CourseLevelBeginner.Rank() < CourseLevelIntermediate.Rank() &&
		CourseLevelIntermediate.Rank() < CourseLevelAdvanced.Rank()) {
		t.Fatal("levels must rank beginner < intermediate < advanced")
	}
	if CourseLevel("expert").Rank() <= CourseLevelAdvanced.Rank() {
		t.Error("unknown level should rank after advanced")
	}
}

func TestUpdateEnquiryRequestDetectsAnswerKey(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantHas    bool
		wantAnswer *string
	}{
		{"answer set", `{"answer":"Next Monday","is_visible":true}`, true, strPtr("Next Monday")},
		{"answer null", `{"answer":null,"is_visible":true}`, true, nil},
		{"answer absent", `{"is_visible":false}`, false, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateEnquiryRequest
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.HasAnswer != tc.wantHas {
				t.Errorf("HasAnswer = %v, want %v", req.HasAnswer, tc.wantHas)
			}
			if (req.Answer == nil) != (tc.wantAnswer == nil) ||
				(req.Answer != nil && *req.Answer != *tc.wantAnswer) {
				t.Errorf("Answer = %v, want %v", req.Answer, tc.wantAnswer)
			}
			if req.IsVisible == nil {
				t.Error("is_visible should be decoded")
			}
		})
	}
}

func TestUpdateEnquiryRequestRejectsNonObject(t *testing.T) {
	var req UpdateEnquiryRequest
	if err := json.Unmarshal([]byte(`[1,2]`), &req); err == nil {
		t.Fatal("expected error for non-object body")
	}
}

func TestFacultyRequestParsedDateJoined(t *testing.T) {
	if (FacultyRequest{}).ParsedDateJoined() != nil {
		t.Error("empty date should parse to nil")
	}
	d := FacultyRequest{DateJoined: "2024-09-01"}.ParsedDateJoined()
	if d == nil || d.Format(DateLayout) != "2024-09-01" {
		t.Errorf("ParsedDateJoined = %v", d)
	}
}

func strPtr(s string) *string { return &s }

func TestDateRoundTripsAsCalendarDay(t *testing.T) {
	f := Faculty{ID: 1, DateJoined: Date{time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC)}}
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"date_joined":"2021-09-01"`) {
		t.Fatalf("marshalled %s, want date_joined 2021-09-01", out)
	}

	var back Faculty
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.DateJoined.Equal(f.DateJoined.Time) {
		t.Errorf("round trip = %v, want %v", back.DateJoined, f.DateJoined)
	}

	zero, _ := json.Marshal(Date{})
	if string(zero) != "null" {
		t.Errorf("zero date = %s, want null", zero)
	}
	var bad Date
	if err := json.Unmarshal([]byte(`"01/09/2021"`), &bad); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}
