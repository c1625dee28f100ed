package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/altai/formrelay/internal/config"
	"github.com/altai/formrelay/internal/logging"
	"github.com/altai/formrelay/internal/server"
	"github.com/altai/formrelay/internal/telemetry"
	"github.com/altai/formrelay/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formrelay",
	Short: "formrelay - lead form relay to Salesforce Web-to-Lead",
	Long: `formrelay accepts lead form posts from the marketing site, checks the
privacy notice and the reCAPTCHA token, forwards the lead to Salesforce
Web-to-Lead and answers with the brochure link when the form has one.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and reach the upstream services",
	RunE:  runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formrelay version: %s\n", version.Info())
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return logging.WrapError(err, "configuration")
	}

	if err := logging.InitLogger(cfg.Logging()); err != nil {
		return logging.WrapError(err, "logger")
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting formrelay %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return logging.WrapError(err, "tracing")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		return logging.WrapError(err, "server")
	}

	return srv.Start(ctx)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return logging.WrapError(err, "configuration")
	}
	fmt.Println("✅ Configuration is valid")

	client := telemetry.NewHTTPClient(cfg.HTTPTimeout)
	targets := []struct {
		name string
		url  string
	}{
		{name: "reCAPTCHA", url: cfg.RecaptchaVerifyURL},
		{name: "Salesforce Web-to-Lead", url: cfg.SalesforceURL},
	}

	failed := 0
	for _, target := range targets {
		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Reaching %s...", target.name)
		s.Start()
		status, err := probe(cmd.Context(), client, target.url)
		s.Stop()

		if err != nil {
			failed++
			fmt.Printf("❌ %s unreachable: %v\n", target.name, err)
			continue
		}
		fmt.Printf("✅ %s reachable (HTTP %d)\n", target.name, status)
	}

	if failed > 0 {
		return fmt.Errorf("%d upstream(s) unreachable", failed)
	}
	return nil
}

// probe only checks that the endpoint answers; any HTTP status counts.
func probe(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
