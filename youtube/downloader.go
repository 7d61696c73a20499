package youtube

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Downloader acquires the audio track of a video with yt-dlp. Files are
// named after the youtube id so re-runs overwrite instead of piling up.
type Downloader struct {
	outputDir string
	binary    string
}

func NewDownloader(outputDir string) (*Downloader, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	return &Downloader{
		outputDir: outputDir,
		binary:    "yt-dlp",
	}, nil
}

// Download fetches the audio of the given video URL and returns the local
// path of the resulting mp3.
func (d *Downloader) Download(ctx context.Context, videoURL string) (string, error) {
	id, err := ExtractVideoID(videoURL)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, d.binary,
		"-f", "bestaudio",
		"-x", "--audio-format", "mp3",
		"-o", filepath.Join(d.outputDir, "%(id)s.%(ext)s"),
		"--no-playlist",
		videoURL,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	path := filepath.Join(d.outputDir, id+".mp3")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("download produced no file at %s: %w", path, err)
	}

	return path, nil
}

// ExtractVideoID pulls the video id out of the usual URL shapes:
// youtu.be/<id>, youtube.com/watch?v=<id>, /embed/<id> and /v/<id>.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid video url %q: %w", rawURL, err)
	}

	switch parsed.Hostname() {
	case "youtu.be":
		if id := strings.TrimPrefix(parsed.Path, "/"); id != "" {
			return id, nil
		}
	case "youtube.com", "www.youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return id, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				if id := strings.SplitN(strings.TrimPrefix(parsed.Path, prefix), "/", 2)[0]; id != "" {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("could not extract video id from url: %s", rawURL)
}
