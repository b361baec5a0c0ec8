package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interviewdost"
)

type Config struct {
	APIURL       string         `mapstructure:"api-url"`
	Email        string         `mapstructure:"email"`
	PasswordFile string         `mapstructure:"password-file"`
	Profile      *ProfileConfig `mapstructure:"profile"`
	Interview    *InterviewConfig
	Tavus        *TavusConfig
	AI           *AIConfig `mapstructure:"ai"`
}

// ProfileConfig mirrors the profile form: list-valued fields stay as the
// delimited free text the user writes in the config file.
type ProfileConfig struct {
	Name            string
	Email           string
	Role            string
	Age             *int
	TechStack       string `mapstructure:"tech-stack"`
	WorkExperiences string `mapstructure:"work-experiences"`
	Projects        string
	CompaniesWorked string `mapstructure:"companies-worked"`
	TargetRole      string `mapstructure:"target-role"`
	TargetCompany   string `mapstructure:"target-company"`
	ResumeText      string `mapstructure:"resume-text"`
	ResumeFile      string `mapstructure:"resume-file"`
}

type InterviewConfig struct {
	InterviewerID int    `mapstructure:"interviewer-id"`
	Type          string `mapstructure:"type"`
}

type TavusConfig struct {
	PublicKey string `mapstructure:"public-key"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interviewdost is a cli client for running AI mock interviews and reviewing their results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api-url", "INTERVIEWDOST_API_URL"); err != nil {
		log.Fatalf("binding INTERVIEWDOST_API_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("password-file", "INTERVIEWDOST_PASSWORD_FILE"); err != nil {
		log.Fatalf("binding INTERVIEWDOST_PASSWORD_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("tavus.public-key", "TAVUS_PUBLIC_KEY"); err != nil {
		log.Fatalf("binding TAVUS_PUBLIC_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interviewdost.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A local .env may carry INTERVIEWDOST_API_URL and friends. Missing is fine.
	_ = godotenv.Load()

	// Config is needed only for commands that talk to the backend.
	if runCmd.CalledAs() == "" && resultsCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
