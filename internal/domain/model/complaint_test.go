package model

import (
	"strings"
	"testing"
)

func validCreateComplaint() CreateComplaintRequest {
	return CreateComplaintRequest{
		Title:       "Streetlight out on 4th cross",
		Description: "The light near the park gate has been out for a week.",
		Category:    "infrastructure",
		PinCode:     "560001",
	}
}

func TestCreateComplaintRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateComplaintRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *CreateComplaintRequest) {}},
		{name: "empty title", mutate: func(r *CreateComplaintRequest) { r.Title = "  " }, wantErr: true},
		{name: "title too long", mutate: func(r *CreateComplaintRequest) { r.Title = strings.Repeat("x", 256) }, wantErr: true},
		{name: "empty description", mutate: func(r *CreateComplaintRequest) { r.Description = "" }, wantErr: true},
		{name: "missing category", mutate: func(r *CreateComplaintRequest) { r.Category = "" }, wantErr: true},
		{name: "latitude without longitude", mutate: func(r *CreateComplaintRequest) {
			lat := 12.97
			r.Latitude = &lat
		}, wantErr: true},
		{name: "latitude out of range", mutate: func(r *CreateComplaintRequest) {
			lat, lng := 95.0, 77.59
			r.Latitude, r.Longitude = &lat, &lng
		}, wantErr: true},
		{name: "valid coordinates", mutate: func(r *CreateComplaintRequest) {
			lat, lng := 12.97, 77.59
			r.Latitude, r.Longitude = &lat, &lng
		}},
		{name: "bad pin code", mutate: func(r *CreateComplaintRequest) { r.PinCode = "12ab" }, wantErr: true},
		{name: "too many images", mutate: func(r *CreateComplaintRequest) {
			r.ImageURLs = []string{"a", "b", "c", "d", "e", "f"}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateComplaint()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateComplaintRequest_Validate_TrimsTitle(t *testing.T) {
	req := validCreateComplaint()
	req.Title = "  Pothole  "
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if req.Title != "Pothole" {
		t.Errorf("expected trimmed title, got %q", req.Title)
	}
}

func TestParseComplaintStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   ComplaintStatus
		wantOK bool
	}{
		{input: "pending", want: ComplaintStatusPending, wantOK: true},
		{input: " In_Progress ", want: ComplaintStatusInProgress, wantOK: true},
		{input: "RESOLVED", want: ComplaintStatusResolved, wantOK: true},
		{input: "closed", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseComplaintStatus(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseComplaintStatus(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseComplaintStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUpdateComplaintStatusRequest_Validate(t *testing.T) {
	req := UpdateComplaintStatusRequest{Status: "resolved"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := UpdateComplaintStatusRequest{Status: "done"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported status")
	}
}
