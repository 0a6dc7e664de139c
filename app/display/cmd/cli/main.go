// Command cli 是房产分析的终端客户端，与网页版共用分析后端
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/data"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/tui"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

var (
	backendURL string
	timeout    time.Duration
	chartOut   string
	logFile    string
	provider   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estate-cli",
		Short: "Ask the real estate analyzer from the terminal",
		Long: `estate-cli sends natural-language questions about Pune localities to the
analysis backend and shows the summary, price trend and matching records.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&backendURL, "backend", conf.DefaultBackendURL, "Analysis backend base URL")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")
	rootCmd.Flags().StringVar(&chartOut, "chart-out", "", "Write the price trend SVG to this path after each answer")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.Flags().StringVar(&provider, "provider", conf.DefaultProviderLabel, "Summary provider label")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// 终端界面占用 stdout，日志只能写文件
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", "estate-cli",
	)

	d, cleanup, err := data.NewData(&conf.Backend{BaseUrl: backendURL, Timeout: timeout.String()}, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	app := tui.NewApp(data.NewAnalysisRepo(d, logger), tui.Config{
		Timeout:  timeout,
		ChartOut: chartOut,
		Options:  view.NewOptions(&conf.UI{ProviderLabel: provider}),
	}, logger)

	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
