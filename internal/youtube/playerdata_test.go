package youtube

import "testing"

const watchPageFixture = `<!doctype html>
<html>
<head>
<meta property="og:title" content="A Test Video">
<script>window.ytcfg = {"INNERTUBE_API_KEY":"test-key-123","INNERTUBE_CONTEXT_CLIENT_VERSION":"2.20240101.00.00"};</script>
</head>
<body>
<script>var ytInitialPlayerResponse = {"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"A {Braced} Title"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://host/api/timedtext?v=dQw4w9WgXcQ&lang=en&fmt=srv3","languageCode":"en","kind":"asr"},{"baseUrl":"https://host/api/timedtext?v=dQw4w9WgXcQ&lang=fr","languageCode":"fr"}]}}};var other = 1;</script>
</body>
</html>`

func TestParseWatchPage(t *testing.T) {
	pd, err := parseWatchPage([]byte(watchPageFixture))
	if err != nil {
		t.Fatal(err)
	}

	if len(pd.Tracks) != 2 {
		t.Fatalf("track count = %d, want 2", len(pd.Tracks))
	}
	if pd.Tracks[0].LanguageCode != "en" || !pd.Tracks[0].AutoGenerated() {
		t.Errorf("first track = %+v, want en asr", pd.Tracks[0])
	}
	if pd.Tracks[0].FormatHint != "srv3" {
		t.Errorf("FormatHint = %q, want srv3", pd.Tracks[0].FormatHint)
	}
	if pd.Tracks[1].Kind != "" {
		t.Errorf("second track kind = %q, want manual", pd.Tracks[1].Kind)
	}

	if pd.Title != "A Test Video" {
		t.Errorf("Title = %q, want og:title value", pd.Title)
	}
	if pd.APIKey != "test-key-123" {
		t.Errorf("APIKey = %q", pd.APIKey)
	}
	if pd.ClientVersion != "2.20240101.00.00" {
		t.Errorf("ClientVersion = %q", pd.ClientVersion)
	}
}

func TestParseWatchPageFragmentFallback(t *testing.T) {
	// Some page variants embed only the raw captionTracks array.
	page := `<html><body><script>stuff "captionTracks":[{"baseUrl":"https://host/t?lang=de","languageCode":"de","kind":"asr"}],"other":true</script></body></html>`
	pd, err := parseWatchPage([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(pd.Tracks) != 1 || pd.Tracks[0].LanguageCode != "de" {
		t.Fatalf("tracks = %+v, want one de track", pd.Tracks)
	}
}

func TestParseWatchPageNoCaptions(t *testing.T) {
	pd, err := parseWatchPage([]byte(`<html><body><p>nothing here</p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(pd.Tracks) != 0 {
		t.Errorf("tracks = %+v, want none", pd.Tracks)
	}
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"simple", `x = {"a":1};`, `{"a":1}`, true},
		{"nested", `= {"a":{"b":2}} trailing`, `{"a":{"b":2}}`, true},
		{"brace_in_string", `= {"t":"a } b"} rest`, `{"t":"a } b"}`, true},
		{"escaped_quote", `= {"t":"say \" {"} rest`, `{"t":"say \" {"}`, true},
		{"unbalanced", `= {"a":1`, "", false},
		{"no_object", `nothing`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := balancedJSON(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("balancedJSON(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
