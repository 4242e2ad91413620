// scripts/pipeline_integration_check.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mwiater/parley/internal/appconfig"
)

func main() {
	configPath := flag.String("config", appconfig.DefaultConfigPath, "Path to config JSON")
	diarizerURL := flag.String("url", "", "Override diarizer base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Parse()

	cfg, err := readConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	target := *diarizerURL
	if target == "" {
		target = cfg.DiarizerURL
	}

	fmt.Printf("Config file: %s\n", *configPath)
	fmt.Printf("Videos dir: %s\n", cfg.VideosPath())
	fmt.Printf("Audio dir: %s\n", cfg.AudioPath())
	fmt.Printf("Transcripts dir: %s\n", cfg.TranscriptsPath())
	fmt.Printf("Index path: %s\n\n", cfg.IndexFilePath())

	failures := 0

	if err := checkBinary("ffmpeg", "-version"); err != nil {
		fmt.Fprintf(os.Stderr, "ffmpeg check failed: %v\n\n", err)
		failures++
	}
	// Only 'fetch' needs yt-dlp, so a miss is reported but not fatal.
	if err := checkBinary("yt-dlp", "--version"); err != nil {
		fmt.Fprintf(os.Stderr, "yt-dlp check failed: %v\n\n", err)
	}

	checkEnv("OPENAI_API_KEY")
	checkEnv("DIARIZER_TOKEN")

	if target == "" {
		fmt.Println("== diarizer ==")
		fmt.Println("No diarizer URL configured; transcribe runs need --simple.")
	} else if err := checkDiarizer(target, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "diarizer check failed: %v\n", err)
		failures++
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// readConfig parses the config file when it exists. A missing file is not an
// error because every setting has a default.
func readConfig(path string) (appconfig.Config, error) {
	var cfg appconfig.Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func checkBinary(name, versionArg string) error {
	fmt.Printf("== %s ==\n", name)
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s is not installed or not on PATH", name)
	}
	out, err := exec.Command(path, versionArg).Output()
	if err != nil {
		return fmt.Errorf("%s %s: %w", name, versionArg, err)
	}
	line := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	fmt.Printf("Found: %s\n%s\n\n", path, line)
	return nil
}

func checkEnv(name string) {
	fmt.Printf("== %s ==\n", name)
	if os.Getenv(name) == "" {
		fmt.Println("unset")
	} else {
		fmt.Println("set")
	}
	fmt.Println()
}

func checkDiarizer(baseURL string, timeout time.Duration) error {
	fmt.Println("== diarizer ==")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	url := strings.TrimRight(baseURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("diarizer unreachable at %s: %w", baseURL, err)
	}
	defer resp.Body.Close()
	fmt.Printf("GET %s -> %s\n\n", url, resp.Status)
	return nil
}
