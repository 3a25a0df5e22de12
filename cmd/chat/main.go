// Package main implements an interactive terminal client for the
// question-answering engine. It loads the corpus snapshot directly, so it
// works without the API server running.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/rlukassa/simpanan-backend-1/engine/answer"
	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/intent"
	"github.com/rlukassa/simpanan-backend-1/engine/match"
	"github.com/rlukassa/simpanan-backend-1/engine/semantic"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	corpusDir := envOr("CORPUS_DIR", "data")
	corp := corpus.LoadDir(corpusDir, logger)

	classifier := intent.NewClassifier(logger)
	scorer := match.NewScorer(corp, semantic.BuildIndex(corp), match.DefaultOptions(), logger)
	svc := answer.New(corp, classifier, scorer, answer.DefaultOptions(), logger)

	title := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.FgGreen, color.Bold)
	answerC := color.New(color.FgWhite)
	meta := color.New(color.FgYellow)
	link := color.New(color.FgBlue, color.Underline)

	title.Println("Simpanan: tanya jawab seputar ITB")
	fmt.Printf("Korpus: %d entri. Ketik pertanyaan, atau 'keluar' untuk berhenti.\n\n", corp.Len())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("tanya> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "keluar" || question == "exit" || question == "quit" {
			break
		}

		result := svc.AnswerQuery(context.Background(), question)

		answerC.Println(result.Answer)
		if result.Intent != "" {
			meta.Printf("  [%s, intent=%s, confidence=%.2f]\n", result.Source, result.Intent, result.Confidence)
		} else {
			meta.Printf("  [%s]\n", result.Source)
		}
		for _, l := range result.Links {
			link.Printf("  %s\n", l.URL)
		}
		fmt.Println()
	}

	fmt.Println("Sampai jumpa.")
}
