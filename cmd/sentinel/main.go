package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaikyMoura/sentinel-cli/internal/app"
	"github.com/kaikyMoura/sentinel-cli/internal/cache"
	"github.com/kaikyMoura/sentinel-cli/internal/config"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/llm"
	"github.com/kaikyMoura/sentinel-cli/internal/output"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
	"github.com/kaikyMoura/sentinel-cli/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

// errFindings signals the CI exit-code contract: the review reported
// findings and the process must exit non-zero. Returned instead of
// calling os.Exit so deferred cleanup still runs.
var errFindings = errors.New("review reported findings")

func main() {
	// A .env in the working directory is a convenience, not a requirement
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "AI-assisted code review and documentation from your repository",
	Long: `Sentinel analyzes your project and generates reviews, documentation,
commit messages, or ready-to-apply patches.

Context comes either from the Git repository in the current directory
(staged changes and committed files, read from the object store) or
from an uploaded archive (--path). The assembled context is sent to the
configured model provider.`,
	Version: version.Short(),
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <task>",
	Short: "Run an analysis task",
	Long: `Run an analysis task against the current repository or an archive.

Tasks:
  improvements        review code and suggest improvements
  documentation       generate technical documentation
  commit-message      generate a commit message from the staged diff
  apply-improvements  rewrite the staged changes as a patch

The commit-message and apply-improvements tasks require a Git source:
they operate on what is about to be committed, which an archive
snapshot cannot express.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sentinel/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	analyzeCmd.Flags().StringP("path", "p", "", "Archive to analyze (.zip, .tar.gz) instead of the repository")
	analyzeCmd.Flags().StringP("output", "o", "", "Output file (default "+config.DefaultOutputFile+")")
	analyzeCmd.Flags().String("provider", "", "Model provider (google, openai, anthropic)")
	analyzeCmd.Flags().String("model", "", "Model name")
	analyzeCmd.Flags().String("api-key", "", "Provider API key (overrides config and environment)")
	analyzeCmd.Flags().Bool("ci", false, "CI mode: exit 1 when the review reports findings")
	analyzeCmd.Flags().Bool("no-cache", false, "Disable the response cache")

	_ = viper.BindPFlag("llm.provider", analyzeCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", analyzeCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	task, err := domain.ParseTask(args[0])
	if err != nil {
		return err
	}

	if err := config.EnsureConfigDir(); err != nil {
		log.Warn().Err(err).Msg("Could not create config directory")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.File, _ = cmd.Flags().GetString("output")
	}

	archivePath, _ := cmd.Flags().GetString("path")
	ci, _ := cmd.Flags().GetBool("ci")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	provider, err := llm.NewProviderFromConfig(&cfg.LLM)
	if err != nil {
		if errors.Is(err, domain.ErrLLMMissingAPIKey) {
			return fmt.Errorf("%w (set --api-key, SENTINEL_LLM_API_KEY, or GEMINI_API_KEY)", err)
		}
		return err
	}

	generator := llm.NewGenerator(llm.GeneratorOptions{
		Provider: provider,
		Retry: llm.RetryConfig{
			MaxRetries: cfg.LLM.MaxRetries,
		},
		Logger: log,
	})

	var responseCache domain.Cache
	if cfg.Cache.Enabled {
		responseCache, err = cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.Directory),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Response cache unavailable, continuing without it")
			responseCache = nil
		}
	}

	router, err := app.NewRouter(app.RouterOptions{
		Config:    cfg,
		Generator: generator,
		Cache:     responseCache,
		Logger:    log,
		Progress:  !ci && !verbose,
	})
	if err != nil {
		return err
	}
	defer router.Close()

	result, err := router.Run(ctx, app.Request{
		Task:        task,
		ArchivePath: archivePath,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyContext) {
			fmt.Println(emptyContextMessage(task, archivePath))
			return nil
		}
		return err
	}

	return writeResult(cmd, cfg, result, ci)
}

// writeResult persists or prints the generated output and applies the
// CI exit-code contract
func writeResult(cmd *cobra.Command, cfg *config.Config, result *app.Result, ci bool) error {
	// A commit message is meant to be consumed inline; only write a
	// file when the user asked for one
	if result.Task == domain.TaskCommitMessage && !cmd.Flags().Changed("output") {
		fmt.Println(strings.TrimSpace(result.Output))
	} else {
		writer := output.NewWriter(output.WriterOptions{
			Frontmatter: cfg.Output.Frontmatter,
			Model:       cfg.LLM.Model,
		})
		path, err := writer.Write(cfg.Output.File, result.Task, result.Output)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Output written")
	}

	if ci && result.HasFindings {
		log.Warn().Msg("Review reported findings")
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return errFindings
	}
	return nil
}

func emptyContextMessage(task domain.Task, archivePath string) string {
	if archivePath != "" {
		return "No analyzable files found in the archive. Nothing to do."
	}
	if task.UsesDiff() {
		return "No staged changes found. Stage your changes with 'git add' first."
	}
	return "No analyzable content found in the repository. Nothing to do."
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
