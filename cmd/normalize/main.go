// Package main provides the normalize command-line tool: one raw API
// response in, one canonical record out.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"apinorm/internal/config"
	"apinorm/internal/formatter"
	"apinorm/internal/logger"
)

func main() {
	inputPath := flag.String("input", "", "Path to raw JSON response (default: stdin)")
	configPath := flag.String("config", "", "Path to YAML configuration (optional)")
	required := flag.String("required", "", "Comma-separated required fields (overrides config)")
	pretty := flag.Bool("pretty", false, "Pretty-print the canonical JSON output")
	summary := flag.Bool("summary", false, "Print a human-readable summary to stderr")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
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

	raw, err := readInput(*inputPath)
	if err != nil {
		log.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	// Malformed JSON flows through as a primitive string, which the
	// handler converts into the total-fallback record.
	var response any
	if err := json.Unmarshal(raw, &response); err != nil {
		log.Warn("input is not valid JSON, treating as opaque text", "error", err)

		response = string(raw)
	}

	handler := cfg.BuildHandler(log)

	opts := cfg.Options()
	if *required != "" {
		opts.RequiredFields = splitFields(*required)
	}

	normalized, err := handler.HandleAPIResponse(response, opts)
	if err != nil {
		log.Error("normalization failed", "error", err)
		os.Exit(1)
	}

	out, err := marshal(normalized, *pretty)
	if err != nil {
		log.Error("failed to encode canonical record", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(out))

	if *summary {
		fmt.Fprint(os.Stderr, formatter.RenderResponse(normalized))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func splitFields(s string) []string {
	var fields []string

	for _, field := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}

	return fields
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}

	return json.Marshal(v)
}
