// internal/media/ffmpeg.go

// Package media shells out to the external tools that fetch recordings and
// convert them into audio the recognition backend accepts.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VideoExtensions lists the container formats the extract stage picks up
// when scanning a directory.
var VideoExtensions = []string{".mp4", ".mkv", ".webm", ".mov", ".m4a"}

// AudioExtensions lists the formats the transcribe stage accepts as input.
var AudioExtensions = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}

// ExtractAudio converts one recording into mono 16kHz WAV at dst, creating
// parent directories and overwriting any previous extraction.
func ExtractAudio(ctx context.Context, src, dst string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not on PATH: %w", err)
	}
	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create audio directory: %w", err)
		}
	}

	// ffmpeg -y -i input -ac 1 -ar 16000 -f wav output
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", src,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		dst,
	)
	if _, err := cmd.Output(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("ffmpeg failed on %s: %s", filepath.Base(src), lastLines(string(ee.Stderr), 4))
		}
		return fmt.Errorf("run ffmpeg: %w", err)
	}
	return nil
}

// AudioPathFor maps a source recording to its extracted audio path under
// audioDir, swapping the extension for .wav.
func AudioPathFor(srcPath, audioDir string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(audioDir, base+".wav")
}

// HasExtension reports whether path ends in one of the given extensions,
// case-insensitively.
func HasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// lastLines keeps the tail of a tool's stderr so errors stay readable.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
