// internal/media/youtube.go

package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VideoEntry is one item from a flat playlist listing.
type VideoEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// ListVideos returns the entries behind a video, playlist, or channel URL
// without downloading anything.
func ListVideos(ctx context.Context, url string) ([]VideoEntry, error) {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return nil, fmt.Errorf("yt-dlp is not installed or not on PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", "--flat-playlist", "--dump-json", url)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("yt-dlp listing failed: %s", lastLines(string(ee.Stderr), 4))
		}
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}
	return parseListing(out)
}

// parseListing decodes yt-dlp's one-JSON-object-per-line listing output.
func parseListing(out []byte) ([]VideoEntry, error) {
	var entries []VideoEntry
	dec := json.NewDecoder(bytes.NewReader(out))
	for dec.More() {
		var entry VideoEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("parse yt-dlp listing: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DownloadVideos fetches everything a URL names (a single video or a whole
// playlist) into dir with title-based filenames, skipping files that are
// already present. It returns the paths of the files downloaded this run.
func DownloadVideos(ctx context.Context, url, dir string) ([]string, error) {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return nil, fmt.Errorf("yt-dlp is not installed or not on PATH: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create video directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--restrict-filenames",
		"--no-overwrites",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", filepath.Join(dir, "%(title)s.%(ext)s"),
		url,
	)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("yt-dlp download failed: %s", lastLines(string(ee.Stderr), 4))
		}
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}
