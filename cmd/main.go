package main

import (
	"context"
	"os"

	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.Command().Run(context.Background(), os.Args); err != nil {
		if services.KindOf(err) != 0 {
			logger.Error(err.Error())
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
