package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/footycoach/matchsim/internal/api"
	"github.com/footycoach/matchsim/internal/cache"
	"github.com/footycoach/matchsim/internal/config"
	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/db"
	"github.com/footycoach/matchsim/internal/echo"
	"github.com/footycoach/matchsim/internal/middleware"
)

// ServerCmd creates the server command group.
func ServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Server operations",
		Long:  "Start and manage the matchsim API server.",
	}

	cmd.AddCommand(ServerStartCmd())
	cmd.AddCommand(ServerFetchCmd())
	cmd.AddCommand(ServerHealthCmd())
	return cmd
}

// ServerStartCmd creates the start command.
func ServerStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the API server",
		Long:  "Start the matchsim API HTTP server.",
		RunE:  startServer,
	}

	cmd.Flags().Bool("debug", false, "Enable debug mode (disables rate limiting)")
	return cmd
}

// ServerFetchCmd creates the server fetch command.
func ServerFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [path]",
		Short: "Test API endpoints",
		Long: `cURL-like tool for testing API endpoints with formatted output.

Path should be relative to /v1/ (e.g., 'ladder/2026' or 'matches').`,
		Args: cobra.ExactArgs(1),
		RunE: fetchEndpoint,
	}

	cmd.Flags().BoolP("raw", "r", false, "Output raw JSON without colors or formatting (suitable for piping to jq)")
	return cmd
}

// ServerHealthCmd creates the health command.
func ServerHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Perform health check on the running API server.",
		RunE:  checkHealth,
	}
}

func fetchEndpoint(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, _ := cmd.Flags().GetBool("raw")

	baseURL := config.Get().Server.BaseURL
	url := baseURL + path

	if !raw {
		echo.Header("API Test")
		echo.Infof("Fetching: %s", url)
		echo.Info("")
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer resp.Body.Close()

	if !raw {
		echo.Infof("Status: %s", resp.Status)
		echo.Info("")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error: failed to read response: %w", err)
	}

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(prettyJSON.String())
	}

	if !raw {
		echo.Info("")
		echo.Successf("✓ Request completed (%d bytes)", len(body))
	}
	return nil
}

func checkHealth(cmd *cobra.Command, args []string) error {
	echo.Header("Health Check")

	serverURL := "http://localhost:8080/v1/health"
	echo.Infof("Checking: %s", serverURL)
	echo.Info("")

	resp, err := http.Get(serverURL)
	if err != nil {
		return fmt.Errorf("error: server is not running or unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		echo.Successf("✓ Server is healthy (Status: %s)", resp.Status)
		return nil
	}

	return fmt.Errorf("error: server returned status: %s", resp.Status)
}

func startServer(cmd *cobra.Command, args []string) error {
	echo.Header("Starting Server")
	echo.Info("Loading configuration...")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		cfg.Server.DebugMode = true
	}

	echo.Info("Connecting to database...")
	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("error: failed to run migrations: %w", err)
	}
	echo.Success("✓ Connected to database, migrations up to date")

	echo.Info("Connecting to Redis...")
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("error: failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if _, err := redisClient.Ping(cmd.Context()).Result(); err != nil {
		echo.Infof("⚠ Redis connection failed: %v", err)
		echo.Info("  Caching and rate limiting will be disabled")
		redisClient = nil
	} else {
		echo.Success("✓ Connected to Redis")
	}

	cacheClient := cache.NewClient(redisClient, cache.Config{
		App:     "matchsim",
		Env:     envName(cfg.Server.DebugMode),
		Version: cfg.Cache.Version,
		Enabled: cfg.Cache.Enabled && redisClient != nil,
		TTLs: cache.TTLConfig{
			Entity: time.Duration(cfg.Cache.TTLs.Entity) * time.Second,
			List:   time.Duration(cfg.Cache.TTLs.List) * time.Second,
		},
	})

	tuning := core.FromOverrides(cfg.Tuning)

	server := api.NewServer(database.DB, cacheClient, tuning)

	timeFmt := time.DateTime
	if cfg.Server.DebugMode {
		timeFmt = time.Kitchen
	}

	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFmt,
		Prefix:          "🏉",
		ReportCaller:    cfg.Server.DebugMode,
	})

	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.Server.DebugMode, 120, 30, time.Minute)

	var handler http.Handler = server
	handler = middleware.MetricsMiddleware(nil)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.TraceMiddleware(handler)

	if !cfg.Server.DebugMode && redisClient != nil {
		handler = rateLimiter.Middleware(handler)
		echo.Info("✓ Rate limiting enabled")
	} else {
		echo.Info("⚠ Rate limiting disabled (debug mode or Redis unavailable)")
	}

	echo.Info("✓ Request logging enabled")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	echo.Success(fmt.Sprintf("✓ Server starting on %s", addr))
	echo.Info("Press Ctrl+C to stop")
	echo.Info("")
	return http.ListenAndServe(addr, handler)
}

func envName(debug bool) string {
	if debug {
		return "dev"
	}
	return "prod"
}
