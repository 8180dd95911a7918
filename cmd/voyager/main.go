// Package main provides the Voyager browser automation server.
// It reads XML tool calls from stdin, executes them against managed
// browser sessions, and writes JSON results to stdout.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	appconfig "github.com/entrhq/voyager/pkg/config"
	"github.com/entrhq/voyager/pkg/logging"
	"github.com/entrhq/voyager/pkg/tools"
	"github.com/entrhq/voyager/pkg/tools/browser"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile   string
	Headless     bool
	MaxSessions  int
	IdleTimeout  time.Duration
	ListTools    bool
	SkipInstall  bool
	ShutdownWait time.Duration
	ShowVersion  bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("Voyager v%s\n", version)
		return
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Printf("Execution failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.ConfigFile, "config", "", "Path to configuration file (default ~/.voyager/config.json)")
	flag.BoolVar(&config.Headless, "headless", true, "Run browsers headless")
	flag.IntVar(&config.MaxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 uses the configured value)")
	flag.DurationVar(&config.IdleTimeout, "idle-timeout", 0, "Idle timeout before sessions are reclaimed (0 uses the configured value)")
	flag.BoolVar(&config.ListTools, "list-tools", false, "Print the tool catalog as JSON and exit")
	flag.BoolVar(&config.SkipInstall, "skip-install", false, "Skip browser driver installation check")
	flag.DurationVar(&config.ShutdownWait, "shutdown-wait", 10*time.Second, "Grace period for closing sessions on shutdown")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Voyager - Browser Automation Tool Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: voyager [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Serve tool calls on stdin/stdout\n")
		fmt.Fprintf(os.Stderr, "  voyager\n\n")
		fmt.Fprintf(os.Stderr, "  # Inspect the tool catalog\n")
		fmt.Fprintf(os.Stderr, "  voyager -list-tools\n\n")
	}

	flag.Parse()
	return config
}

// run wires the configuration, session manager and tool registry together
// and serves the stdin/stdout loop.
func run(ctx context.Context, config *CLIConfig) error {
	logger, err := logging.NewLogger("main")
	if err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}
	defer logger.Close()

	if err := appconfig.Initialize(config.ConfigFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	browserCfg := appconfig.GetBrowser()

	manager := browser.NewSessionManager()
	maxSessions, timeoutSec, intervalSec := browserCfg.Limits()
	if config.MaxSessions > 0 {
		maxSessions = config.MaxSessions
	}
	idleTimeout := time.Duration(timeoutSec) * time.Second
	if config.IdleTimeout > 0 {
		idleTimeout = config.IdleTimeout
	}
	manager.SetMaxSessions(maxSessions)
	manager.SetIdleTimeout(idleTimeout)
	manager.SetMaxLogEntries(browserCfg.LogLimit())

	headless, width, height, actionTimeoutMs := browserCfg.PageDefaults()
	if !config.Headless {
		headless = false
	}
	manager.SetDefaults(headless, browser.Viewport{Width: width, Height: height})
	manager.SetDefaultTimeout(float64(actionTimeoutMs))

	registry := tools.NewRegistry()
	for _, tool := range browser.NewToolRegistry(manager).RegisterTools() {
		if err := registry.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", tool.Name(), err)
		}
	}

	if config.ListTools {
		return printToolCatalog(registry, os.Stdout)
	}

	if !config.SkipInstall {
		if err := manager.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize browser engine: %w", err)
		}
	}

	reclaimer := browser.NewReclaimer(manager, time.Duration(intervalSec)*time.Second, config.ShutdownWait)
	if err := reclaimer.Start(); err != nil {
		return fmt.Errorf("failed to start session reclaimer: %w", err)
	}
	defer reclaimer.Stop()

	logger.Infof("voyager v%s serving %d tools (max_sessions=%d idle_timeout=%s)",
		version, len(registry.Tools()), maxSessions, idleTimeout)

	return serve(ctx, registry, logger, os.Stdin, os.Stdout)
}

// serve reads tool calls from in and writes results to out until EOF or
// context cancellation. Input is accumulated line by line so a tool call
// may span multiple lines.
func serve(ctx context.Context, registry *tools.Registry, logger *logging.Logger, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	var buffer strings.Builder
	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			buffer.WriteString(line)
			buffer.WriteString("\n")
			if !tools.HasToolCall(buffer.String()) {
				continue
			}

			call, remaining, err := tools.ParseToolCall(buffer.String())
			buffer.Reset()
			buffer.WriteString(remaining)
			if err != nil {
				writeResponse(out, errorResponse(err))
				continue
			}

			logger.Infof("dispatching tool %s", call.ToolName)
			result, _, err := registry.Dispatch(ctx, call)
			if err != nil {
				logger.Warnf("tool %s failed: %v", call.ToolName, err)
				writeResponse(out, errorResponse(err))
				continue
			}
			writeResponse(out, result)
		}
	}
}

// errorResponse renders a dispatch-level error in the standard envelope.
func errorResponse(err error) string {
	payload := map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	}
	data, jsonErr := json.MarshalIndent(payload, "", "  ")
	if jsonErr != nil {
		return fmt.Sprintf(`{"status":"error","error":%q}`, err.Error())
	}
	return string(data)
}

// writeResponse writes one result followed by a blank line separator.
func writeResponse(out io.Writer, result string) {
	fmt.Fprintln(out, result)
	fmt.Fprintln(out)
}

// printToolCatalog writes the registered tool names, descriptions and
// schemas as JSON.
func printToolCatalog(registry *tools.Registry, out io.Writer) error {
	type toolEntry struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Schema      map[string]interface{} `json:"schema"`
	}

	catalog := make([]toolEntry, 0, len(registry.Tools()))
	for _, tool := range registry.Tools() {
		catalog = append(catalog, toolEntry{
			Name:        tool.Name(),
			Description: tool.Description(),
			Schema:      tool.Schema(),
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(catalog)
}
