// internal/pipeline/extract.go

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/logging"
	"github.com/mwiater/parley/internal/media"
)

// Extract converts every discovered recording into mono 16kHz WAV under the
// audio directory, skipping recordings whose audio already exists unless
// force is set. Per-file failures are recorded and the run continues.
func Extract(ctx context.Context, cfg *appconfig.Config, input string, force bool) (Summary, error) {
	root := input
	if root == "" {
		root = cfg.VideosPath()
	}
	videos, err := discoverMedia(root, media.VideoExtensions, "video")
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{RunID: uuid.NewString()}
	logging.LogStage("extract", "-", fmt.Sprintf("run %s: %d files", summary.RunID, len(videos)))

	for _, src := range videos {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		name := filepath.Base(src)
		dst := media.AudioPathFor(src, cfg.AudioPath())

		if !force {
			if _, err := os.Stat(dst); err == nil {
				logging.LogStage("extract", name, fmt.Sprintf("audio exists at %s, skipping", dst))
				summary.Skipped++
				continue
			}
		}

		if err := media.ExtractAudio(ctx, src, dst); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{File: name, Err: err})
			logging.LogStage("extract", name, err)
			continue
		}
		logging.LogStage("extract", name, fmt.Sprintf("wrote %s", dst))
		summary.Processed++
	}
	return summary, nil
}
