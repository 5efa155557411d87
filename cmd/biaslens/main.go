package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"biaslens/internal/api"
	"biaslens/internal/article"
	"biaslens/internal/config"
	"biaslens/internal/domain"
	"biaslens/internal/logging"
	"biaslens/internal/tui"
)

var application *app

var rootCmd = &cobra.Command{
	Use:   "biaslens",
	Short: "Estimate the bias intensity of news articles and summarize them",
	Long: `biaslens labels news text as neutral, slightly-biased or highly-biased with a
Naive Bayes model and writes a short bullet summary.

Examples:
  biaslens serve --port 8080
  biaslens classify "The senator's reckless plan..."
  biaslens summarize --url https://example.com/story
  cat story.txt | biaslens classify --json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfgPath, _ := cmd.Flags().GetString("config")
		var (
			cfg *config.AppConfig
			err error
		)
		if cfgPath == "" {
			cfg, _, err = config.LoadDefault()
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if v, _ := cmd.Flags().GetBool("extractive"); v {
			cfg.Summarizer.Type = "extractive"
		}

		logger := logging.New(cfg.Log)
		application, err = newApp(cmd.Context(), cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := application.cfg.Server
		if cmd.Flags().Changed("port") {
			sc.Port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := application.analysis
		router := api.NewRouter(svc, svc.Metrics(), application.logger)
		srv := api.NewServer(api.ServerConfig{
			Addr:            sc.Addr(),
			ReadTimeout:     sc.ReadTimeout(),
			WriteTimeout:    sc.WriteTimeout(),
			ShutdownTimeout: sc.ShutdownTimeout(),
		}, router, application.logger)
		return srv.Run(ctx)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Analyse pasted articles interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout := application.cfg.Classifier.BuildTimeout() + application.cfg.LLM.Timeout()
		p := tea.NewProgram(tui.New(application.analysis, timeout), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Label the bias intensity of an article",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		res, err := application.analysis.Classify(cmd.Context(), text)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "label: %s\n", res.Label)
		for _, p := range res.Probabilities {
			fmt.Fprintf(out, "  %-16s %.4f\n", p.Label, p.Score)
		}
		fmt.Fprintf(out, "model: %d rows (%s), vocabulary %d\n", res.ModelInfo.TrainedOn, res.ModelInfo.Source, res.ModelInfo.Vocabulary)
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text...]",
	Short: "Summarize an article as short bullets",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		res, err := application.analysis.Summarize(cmd.Context(), text)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
		if res.ProviderError != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "provider error: %s\n", res.ProviderError)
		}
		return nil
	},
}

// readInput resolves the article text from --url, --file, positional
// arguments or stdin, in that order.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	url, _ := cmd.Flags().GetString("url")
	file, _ := cmd.Flags().GetString("file")
	selector, _ := cmd.Flags().GetString("selector")
	r := article.NewReader(cmd.InOrStdin(), application.cfg.Dataset.Timeout())

	var (
		text string
		err  error
	)
	switch {
	case url != "":
		text, err = r.FromURL(cmd.Context(), url, selector)
	case file != "":
		text, err = r.FromFile(file)
	case len(args) > 0:
		text = article.FromArgs(args)
	default:
		text, err = r.FromFile("-")
	}
	if errors.Is(err, article.ErrNoText) || (err == nil && strings.TrimSpace(text) == "") {
		return "", domain.ErrMissingText
	}
	return text, err
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (optional; uses ~/.config/biaslens/config.yaml if not provided)")
	rootCmd.PersistentFlags().Bool("extractive", false, "Never call the LLM provider")

	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides server.port)")

	for _, c := range []*cobra.Command{classifyCmd, summarizeCmd} {
		c.Flags().StringP("file", "f", "", "Read the article from a file (- for stdin)")
		c.Flags().StringP("url", "u", "", "Fetch the article from a web page")
		c.Flags().StringP("selector", "s", "", "CSS selector for the article body (with --url)")
		c.Flags().Bool("json", false, "Output JSON")
		c.MarkFlagsMutuallyExclusive("file", "url")
	}

	rootCmd.AddCommand(serveCmd, tuiCmd, classifyCmd, summarizeCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
