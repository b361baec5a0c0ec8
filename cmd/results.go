package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/interviewdost/interviewdost-cli/internal/ai"
	"github.com/interviewdost/interviewdost-cli/internal/ai/gemini"
	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
	"github.com/interviewdost/interviewdost-cli/internal/logger"
	"github.com/interviewdost/interviewdost-cli/internal/results"
	"github.com/interviewdost/interviewdost-cli/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var resultsCmd = &cobra.Command{
	Use:   "results <interview-id>",
	Short: "Fetch and display the scored summary and feedback for an interview",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showResults(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().Bool("advice", false, "generate AI improvement advice from the results")
}

func showResults(cmd *cobra.Command, rawID string) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	interviewID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		zlog.Fatal("invalid interview id", zap.String("argument", rawID))
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		zlog.Fatal("config is required")
	}

	password, err := resolvePassword(config)
	if err != nil {
		zlog.Fatal("resolving the account password", zap.Error(err))
	}

	client := interviewdost.New(config.APIURL, zlog)

	if _, err := client.Login(ctx, config.Email, password); err != nil {
		zlog.Fatal("logging in", zap.Error(err))
	}

	view, err := results.NewAggregator(client, zlog).Load(ctx, interviewID)
	if err != nil {
		// The join is all-or-nothing: one error, no partial view.
		zlog.Fatal("loading results", zap.Error(err))
	}

	fmt.Print(renderView(view))

	if cmd.Flag("advice").Value.String() != "true" {
		return
	}

	advisor, err := newAdvisor(ctx, config.AI, zlog)
	if err != nil {
		zlog.Warn("skipping advice", zap.Error(err))
		return
	}

	advice, err := advisor.Advise(ctx, view)
	if err != nil {
		// Advice is best-effort and never fails the results display.
		zlog.Warn("generating advice failed", zap.Error(err))
		return
	}

	fmt.Printf("\nCoach advice:\n%s\n", advice)
}

func newAdvisor(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Advisor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai advice is not enabled in the configuration")
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai advice is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(zlog, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

func renderView(view *results.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Results for interview %d\n", view.InterviewID)
	if view.OverallScore != nil {
		fmt.Fprintf(&b, "Overall score: %d\n", *view.OverallScore)
	} else {
		fmt.Fprintln(&b, "Overall score: not available yet")
	}

	for i, item := range view.Items {
		fmt.Fprintf(&b, "\nQ%d: %s\n", i+1, item.Question)
		if item.Answer != nil {
			fmt.Fprintf(&b, "A: %s\n", *item.Answer)
		} else {
			fmt.Fprintln(&b, "A: (no answer recorded)")
		}
		if item.RelevanceScore != nil {
			fmt.Fprintf(&b, "Relevance: %d\n", *item.RelevanceScore)
		}
		if item.ConfidenceLevel != nil {
			fmt.Fprintf(&b, "Confidence: %d\n", *item.ConfidenceLevel)
		}
	}

	if fb := view.Feedback; fb != nil {
		fmt.Fprintln(&b, "\nFeedback:")
		if fb.Comments != "" {
			fmt.Fprintf(&b, "Comments: %s\n", fb.Comments)
		}
		if fb.Suggestions != "" {
			fmt.Fprintf(&b, "Suggestions: %s\n", fb.Suggestions)
		}
		if fb.ReportURL != "" {
			fmt.Fprintf(&b, "Report: %s\n", fb.ReportURL)
		}
	}

	return b.String()
}
