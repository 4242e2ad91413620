// internal/cli/transcribe.go
package parley

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/pipeline"
	"github.com/mwiater/parley/internal/speech"
	"github.com/mwiater/parley/internal/transcript"
)

var (
	transcribeInput  string
	transcribeSimple bool
	transcribeForce  bool
	transcribeJobs   int
)

// transcribeCmd turns audio files into stored transcripts.
var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe audio into timestamped transcripts",
	Long:  `The 'transcribe' command runs speech recognition over the audio directory (or a single file via --input) and writes one JSON transcript per recording. By default utterances are attributed to speakers through the configured diarizer; --simple skips diarization and writes plain timestamped text. Files whose transcript already exists are skipped unless --force is set.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		recognizer, diarizer, err := speech.NewSources(cfg)
		if err != nil {
			return err
		}
		store := transcript.NewStore(cfg.TranscriptsPath())
		transcriber := pipeline.NewTranscriber(cfg, recognizer, diarizer, store)

		jobs := transcribeJobs
		if jobs <= 0 {
			jobs = cfg.WorkerCount()
		}
		summary, err := transcriber.Run(context.Background(), pipeline.Options{
			Input:  transcribeInput,
			Simple: transcribeSimple,
			Force:  transcribeForce,
			Jobs:   jobs,
		})
		if err != nil {
			return err
		}
		summary.Print(os.Stdout)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVar(&transcribeInput, "input", "", "audio file or directory (defaults to the audio directory)")
	transcribeCmd.Flags().BoolVar(&transcribeSimple, "simple", false, "skip speaker attribution")
	transcribeCmd.Flags().BoolVar(&transcribeForce, "force", false, "re-transcribe files whose transcript exists")
	transcribeCmd.Flags().IntVar(&transcribeJobs, "jobs", 0, "files to transcribe in parallel (0 = config value)")
	rootCmd.AddCommand(transcribeCmd)
}
