package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit", "limit=10&offset=20", 10, 20},
		{"limit_too_high", "limit=5000", 50, 0},
		{"limit_zero", "limit=0", 50, 0},
		{"negative_offset", "offset=-5", 50, 0},
		{"garbage", "limit=abc&offset=xyz", 50, 0},
		{"max_limit", "limit=1000", 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/transcripts?"+tt.query, nil)
			p := ParsePagination(r)
			if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("ParsePagination(%q) = %+v, want limit %d offset %d",
					tt.query, p, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rec.Body.String(); got != "{\"error\":\"bad input\"}\n" {
		t.Errorf("body = %q", got)
	}
}
