package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hylla/fraga/internal/adapters/answer"
	"github.com/hylla/fraga/internal/adapters/server"
	"github.com/hylla/fraga/internal/adapters/server/common"
	"github.com/hylla/fraga/internal/adapters/storage/sqlite"
	"github.com/hylla/fraga/internal/app"
	"github.com/hylla/fraga/internal/config"
	"github.com/hylla/fraga/internal/domain"
	"github.com/hylla/fraga/internal/platform"
	"github.com/hylla/fraga/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("fraga", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		dbPath     string
		appName    string
		devMode    bool
		showVer    bool
	)
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("FRAGA_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("FRAGA_APP_NAME")); envApp != "" {
		appName = envApp
	} else {
		appName = "fraga"
	}
	fs.StringVar(&configPath, "config", "", "path to config TOML")
	fs.StringVar(&dbPath, "db", "", "path to sqlite database")
	fs.StringVar(&appName, "app", appName, "application name for config/data path resolution")
	fs.BoolVar(&devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		_, _ = fmt.Fprintf(stdout, "fraga %s\n", version)
		return nil
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: appName,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}

	command := firstArg(fs.Args())
	switch command {
	case "paths":
		_, _ = fmt.Fprintf(stdout, "app: %s\n", appName)
		_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", devMode)
		_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
		_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
		_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
		return nil
	case "", "ask", "serve", "history":
		// Continue.
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	dbOverridden := strings.TrimSpace(dbPath) != ""
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("FRAGA_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("FRAGA_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newRuntimeLogger(stderr, appName, devMode, cfg.Logging)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "" {
		// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the form is active.
		logger.SetConsoleEnabled(false)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.consoleEnabled {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", appName, "dev_mode", devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", cfg.Database.Path)

	apiKey := cfg.APIKey()
	if apiKey == "" && command != "history" {
		logger.Warn("model api key is empty; submissions will fail", "env", cfg.Answer.APIKeyEnv)
	}

	logger.Info("opening sqlite repository", "db_path", cfg.Database.Path)
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		return fmt.Errorf("open sqlite repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("sqlite close failed", "db_path", cfg.Database.Path, "err", closeErr)
		}
	}()

	fetcher := answer.NewFetcher(cfg.FetchTimeout(), cfg.Answer.MaxContentChars)
	llm := answer.NewLLMClient(cfg.Answer.Endpoint, cfg.Answer.Model, apiKey, cfg.ModelTimeout())
	analyzer := answer.NewAnalyzer(fetcher, llm)
	analyzer.SetLogger(logger)

	svc := app.NewService(analyzer, repo, uuid.NewString, time.Now, app.ServiceConfig{
		HistoryEnabled: cfg.History.Enabled,
		HistoryLimit:   cfg.History.Limit,
	})
	svc.SetLogger(logger)
	logger.Debug("application service initialized", "history_enabled", cfg.History.Enabled, "history_limit", cfg.History.Limit)

	switch command {
	case "":
		logger.Info("command flow start", "command", "tui")
		m := tui.NewModel(svc)
		if _, err := programFactory(m).Run(); err != nil {
			logger.Error("tui program terminated with error", "err", err)
			return fmt.Errorf("run tui program: %w", err)
		}
		logger.Info("command flow complete", "command", "tui")
		return nil
	case "ask":
		logger.Info("command flow start", "command", "ask")
		if err := runAsk(ctx, svc, fs.Args()[1:], stdout); err != nil {
			logger.Error("command flow failed", "command", "ask", "err", err)
			return fmt.Errorf("run ask command: %w", err)
		}
		logger.Info("command flow complete", "command", "ask")
		return nil
	case "history":
		logger.Info("command flow start", "command", "history")
		if err := runHistory(ctx, svc, fs.Args()[1:], stdout); err != nil {
			logger.Error("command flow failed", "command", "history", "err", err)
			return fmt.Errorf("run history command: %w", err)
		}
		logger.Info("command flow complete", "command", "history")
		return nil
	case "serve":
		logger.Info("command flow start", "command", "serve", "bind", cfg.Server.Bind)
		err := server.Run(ctx, server.Config{
			HTTPBind:      cfg.Server.Bind,
			APIEndpoint:   cfg.Server.APIEndpoint,
			MCPEndpoint:   cfg.Server.MCPEndpoint,
			ServerName:    appName,
			ServerVersion: version,
		}, server.Dependencies{
			Answers: common.NewAppServiceAdapter(svc),
		})
		if err != nil {
			logger.Error("command flow failed", "command", "serve", "err", err)
			return fmt.Errorf("run serve command: %w", err)
		}
		logger.Info("command flow complete", "command", "serve")
		return nil
	}
	return nil
}

// stringList collects repeated -url flags.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// runAsk runs one submission from the command line and prints the answer.
func runAsk(ctx context.Context, svc *app.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fraga ask", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		urls     stringList
		question string
	)
	fs.Var(&urls, "url", "page URL (repeatable)")
	fs.StringVar(&question, "question", "", "question to answer")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse ask flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected ask arguments: %v", fs.Args())
	}

	form := domainFormFrom(urls, question)
	sub, err := svc.Submit(ctx, form)
	if err != nil {
		if vErr, ok := app.AsValidationError(err); ok {
			return errors.New(validationSummary(vErr))
		}
		return err
	}
	_, _ = fmt.Fprintln(stdout, sub.Answer)
	return nil
}

// runHistory prints recent submissions, newest first.
func runHistory(ctx context.Context, svc *app.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fraga history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var limit int
	fs.IntVar(&limit, "limit", 10, "maximum entries to show")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse history flags: %w", err)
	}

	subs, err := svc.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(subs) == 0 {
		_, _ = fmt.Fprintln(stdout, "no submissions yet")
		return nil
	}
	for _, sub := range subs {
		_, _ = fmt.Fprintf(stdout, "%s  %s  [%s]\n", sub.CreatedAt.Local().Format(time.RFC3339), sub.Question, sub.Status)
		for _, u := range sub.URLs {
			_, _ = fmt.Fprintf(stdout, "    %s\n", u)
		}
		if sub.Answer != "" {
			_, _ = fmt.Fprintf(stdout, "    -> %s\n", sub.Answer)
		}
	}
	return nil
}

// domainFormFrom builds a submission form from CLI arguments.
func domainFormFrom(urls []string, question string) domain.Form {
	form := domain.NewForm()
	for i, raw := range urls {
		if i > 0 {
			form = form.WithEntryAdded()
		}
		if updated, err := form.WithEntryUpdated(i, raw); err == nil {
			form = updated
		}
	}
	return form.WithQuestion(question)
}

// validationSummary flattens field errors into one CLI-friendly message.
func validationSummary(vErr *app.ValidationError) string {
	var parts []string
	if vErr.Errors.GeneralError != "" {
		parts = append(parts, vErr.Errors.GeneralError)
	}
	indexes := make([]int, 0, len(vErr.Errors.URLErrors))
	for i := range vErr.Errors.URLErrors {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		parts = append(parts, fmt.Sprintf("url %d: %s", i+1, vErr.Errors.URLErrors[i]))
	}
	if vErr.Errors.QuestionError != "" {
		parts = append(parts, vErr.Errors.QuestionError)
	}
	return strings.Join(parts, "; ")
}

// firstArg handles first arg.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseBoolEnv parses one boolean environment variable.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}

// runtimeLogger fans log events to a styled console sink and an optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	devLogPath := strings.TrimSpace(cfg.DevFile)
	if !devMode || devLogPath == "" {
		return logger, nil
	}

	if err := os.MkdirAll(filepath.Dir(devLogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Debug(msg, keyvals...)
	}
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Info(msg, keyvals...)
	}
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Warn(msg, keyvals...)
	}
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Error(msg, keyvals...)
	}
}
