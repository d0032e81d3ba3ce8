package main

import (
	"os"

	"github.com/Mishnah7/quiz-bot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
