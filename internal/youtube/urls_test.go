package youtube

import (
	"net/url"
	"testing"
)

func TestCaptionFetchURL(t *testing.T) {
	tests := []struct {
		name    string
		track   CaptionTrack
		wantFmt string
		wantTl  string
	}{
		{
			"english_gets_default_format",
			CaptionTrack{LanguageCode: "en", BaseURL: "https://host/api/timedtext?v=x&lang=en"},
			"json3", "",
		},
		{
			"format_hint_preserved",
			CaptionTrack{LanguageCode: "en", FormatHint: "srv3", BaseURL: "https://host/api/timedtext?v=x&lang=en"},
			"srv3", "",
		},
		{
			"existing_fmt_untouched",
			CaptionTrack{LanguageCode: "en", BaseURL: "https://host/api/timedtext?v=x&fmt=vtt"},
			"vtt", "",
		},
		{
			"non_english_gets_translation",
			CaptionTrack{LanguageCode: "fr", Kind: "asr", BaseURL: "https://host/api/timedtext?v=x&lang=fr"},
			"json3", "en",
		},
		{
			"dialect_needs_no_translation",
			CaptionTrack{LanguageCode: "en-GB", BaseURL: "https://host/api/timedtext?v=x&lang=en-GB"},
			"json3", "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(captionFetchURL(tt.track, "en"))
			if err != nil {
				t.Fatal(err)
			}
			q := u.Query()
			if got := q.Get("fmt"); got != tt.wantFmt {
				t.Errorf("fmt = %q, want %q", got, tt.wantFmt)
			}
			if got := q.Get("tlang"); got != tt.wantTl {
				t.Errorf("tlang = %q, want %q", got, tt.wantTl)
			}
		})
	}
}

func TestQueryParam(t *testing.T) {
	if got := queryParam("https://host/p?fmt=srv3&lang=en", "fmt"); got != "srv3" {
		t.Errorf("queryParam fmt = %q", got)
	}
	if got := queryParam("://bad", "fmt"); got != "" {
		t.Errorf("queryParam on bad URL = %q, want empty", got)
	}
}
