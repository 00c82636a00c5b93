// Command capfetch fetches one video's transcript and prints it as
// JSON. Useful for scripting and for poking the discovery chain
// without running the daemon.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/snarg/captiond/internal/youtube"
)

func main() {
	var (
		timeout  = flag.Duration("timeout", 15*time.Second, "per-fetch timeout")
		minChars = flag.Int("min-chars", youtube.DefaultMinChars, "minimum transcript length to accept")
		verbose  = flag.Bool("v", false, "log discovery attempts to stderr")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: capfetch [flags] <youtube-url-or-video-id>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink youtube.Sink = youtube.NopSink{}
	if *verbose {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		sink = youtube.LogSink{Log: log}
	}

	pipeline := youtube.New(youtube.Options{
		FetchTimeout: *timeout,
		MinChars:     *minChars,
		Sink:         sink,
	})

	res, err := pipeline.Fetch(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "capfetch:", err)
		os.Exit(1)
	}

	type entry struct {
		Time string `json:"time"`
		Text string `json:"text"`
	}
	out := struct {
		VideoID    string  `json:"video_id"`
		Title      string  `json:"title,omitempty"`
		Language   string  `json:"language,omitempty"`
		Strategy   string  `json:"strategy"`
		Format     string  `json:"format"`
		Transcript string  `json:"transcript"`
		Timeline   []entry `json:"timeline"`
	}{
		VideoID:    res.VideoID.String(),
		Title:      res.Title,
		Language:   res.Language,
		Strategy:   res.Strategy,
		Format:     string(res.Format),
		Transcript: res.Transcript.FullText,
	}
	for _, seg := range res.Transcript.Timeline {
		out.Timeline = append(out.Timeline, entry{Time: seg.TimeLabel(), Text: seg.Text})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "capfetch:", err)
		os.Exit(1)
	}
}
