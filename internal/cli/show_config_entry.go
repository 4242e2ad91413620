package parley

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/viper"
)

func runShowConfig() {
	file := viper.ConfigFileUsed()
	if file == "" {
		fmt.Println("No config file loaded (using defaults).")
	} else {
		fmt.Printf("Config file: %s\n\n", file)
	}

	cfg := GetConfig()
	fmt.Println("Current configuration:")
	if cfg == nil {
		fmt.Printf("  Debug:       %v\n", viper.GetBool("debug"))
		fmt.Printf("  Video Dir:   %s\n", viper.GetString("videoDir"))
		fmt.Printf("  Audio Dir:   %s\n", viper.GetString("audioDir"))
		fmt.Printf("  Transcripts: %s\n", viper.GetString("transcriptDir"))
		fmt.Printf("  Index Path:  %s\n", viper.GetString("indexPath"))
		fmt.Printf("  Chat Model:  %s\n", viper.GetString("chatModel"))
		return
	}

	pp.Println(cfg)

	fmt.Println("\nResolved paths:")
	fmt.Printf("  Videos:      %s\n", cfg.VideosPath())
	fmt.Printf("  Audio:       %s\n", cfg.AudioPath())
	fmt.Printf("  Transcripts: %s\n", cfg.TranscriptsPath())
	fmt.Printf("  Index:       %s\n", cfg.IndexFilePath())
	fmt.Printf("  Log File:    %s\n", cfg.LogFilePath())
}
