// Package main provides the batch command: a JSONL stream of raw API
// responses is piped through a single handler, so the error count tracks
// degradation across the whole stream.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"apinorm/internal/config"
	"apinorm/internal/formatter"
	"apinorm/internal/logger"
)

func main() {
	inputPath := flag.String("input", "", "Path to JSONL input (default: stdin)")
	configPath := flag.String("config", "", "Path to YAML configuration (optional)")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.NewLogger(*logLevel)

	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	in := os.Stdin

	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Error("failed to open input", "error", err)
			os.Exit(1)
		}
		defer f.Close()

		in = f
	}

	handler := cfg.BuildHandler(log)
	opts := cfg.Options()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	degraded := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lineNo++

		var response any
		if err := json.Unmarshal([]byte(line), &response); err != nil {
			log.Warn("line is not valid JSON, treating as opaque text", "line", lineNo)

			response = line
		}

		normalized, err := handler.HandleAPIResponse(response, opts)
		if err != nil {
			log.Error("normalization failed", "line", lineNo, "error", err)
			os.Exit(1)
		}

		if normalized.IsDegraded() {
			degraded++
		}

		encoded, err := json.Marshal(normalized)
		if err != nil {
			log.Error("failed to encode canonical record", "line", lineNo, "error", err)
			os.Exit(1)
		}

		fmt.Fprintln(out, string(encoded))
	}

	if err := scanner.Err(); err != nil {
		log.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	out.Flush()

	log.Info("stream processed", "responses", lineNo, "degraded", degraded)
	fmt.Fprint(os.Stderr, formatter.RenderReport(handler.GenerateErrorReport()))
}
