package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/interviewdost/interviewdost-cli/internal/interview"
	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
	"github.com/interviewdost/interviewdost-cli/internal/logger"
	"github.com/interviewdost/interviewdost-cli/internal/profile"
	"github.com/interviewdost/interviewdost-cli/internal/results"
	"github.com/interviewdost/interviewdost-cli/internal/resume"
	"github.com/interviewdost/interviewdost-cli/internal/secrets"
	"github.com/interviewdost/interviewdost-cli/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptEnrich  = "Enrich profile"
	PromptStart   = "Start interview"
	PromptAnswer  = "Answer question"
	PromptRestart = "Restart interview"
	PromptResults = "View results"
	PromptExit    = "Exit"

	defaultRole          = "candidate"
	defaultInterviewerID = 1
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptEnrich, PromptStart, PromptAnswer, PromptRestart, PromptResults, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive mock-interview flow",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("email", "e", "", "login email (overrides the config file)")

	viper.BindPFlag("email", runCmd.Flags().Lookup("email"))
}

// flow bundles the orchestration components built once per run.
type flow struct {
	store       *session.Store
	coordinator *profile.Coordinator
	launcher    *interview.Launcher
	aggregator  *results.Aggregator
	config      *Config
	logger      *zap.Logger

	current *interview.Session
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interviewdost cli", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Profile == nil {
		logger.Fatal("a profile section is required to enrich and interview")
	}

	email := strings.TrimSpace(viper.GetString("email"))
	if email == "" {
		email = strings.TrimSpace(config.Email)
	}
	if email == "" {
		logger.Fatal("login email is required",
			zap.String("hint", "set the 'email' key in the configuration file or pass --email"),
		)
	}

	password, err := resolvePassword(config)
	if err != nil {
		logger.Fatal("resolving the account password", zap.Error(err))
	}

	client := interviewdost.New(config.APIURL, logger)

	auth, err := client.Login(ctx, email, password)
	if err != nil {
		logger.Fatal("logging in", zap.Error(err))
	}

	store := session.NewStore()
	store.Login(session.User{
		ID:    auth.User.UserID,
		Name:  auth.User.Name,
		Email: auth.User.Email,
		Role:  auth.User.Role,
	})

	logger.Info("logged in",
		zap.Int("user_id", auth.User.UserID),
		zap.String("name", auth.User.Name),
	)

	f := &flow{
		store:       store,
		coordinator: profile.NewCoordinator(client, resume.NewIngestor(client, logger), store, logger),
		launcher:    interview.NewLauncher(client, store, logger),
		aggregator:  results.NewAggregator(client, logger),
		config:      config,
		logger:      logger,
	}
	defer store.Logout()

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := f.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			// Every failure here is local: the user may simply re-trigger
			// the action.
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func (f *flow) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptEnrich:
		return f.enrich(ctx)
	case PromptStart, PromptRestart:
		return f.start(ctx)
	case PromptAnswer:
		return f.answer(ctx)
	case PromptResults:
		return f.showResults(ctx)
	case PromptExit:
		f.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (f *flow) enrich(ctx context.Context) error {
	in := formInput(f.config.Profile, f.store.Snapshot())

	result, err := f.coordinator.Enrich(ctx, in)
	if err != nil {
		return err
	}

	// Echo extracted text back so the user sees what the document produced.
	if in.ResumeText == "" && result.ResumeText != "" {
		fmt.Printf("Extracted resume text:\n%s\n\n", result.ResumeText)
	}

	fmt.Printf("Resume summary: %s\n", result.Artifact.ResumeSummary)
	fmt.Printf("Skills: %s\n", strings.Join(result.Artifact.Skills, ", "))

	return nil
}

func (f *flow) start(ctx context.Context) error {
	opts := interview.StartOptions{InterviewerID: defaultInterviewerID}
	if f.config.Interview != nil {
		if f.config.Interview.InterviewerID != 0 {
			opts.InterviewerID = f.config.Interview.InterviewerID
		}
		opts.InterviewType = f.config.Interview.Type
	}

	s, err := f.launcher.Start(ctx, opts)
	if err != nil {
		return err
	}
	f.current = s

	fmt.Printf("Interview %d started.\n", s.ID)
	fmt.Printf("First question: %s\n", s.Question.Text)

	switch s.Channel() {
	case interview.ChannelReady:
		fmt.Printf("Join the avatar conversation: %s\n", s.ConversationURL)
		if f.config.Tavus != nil && f.config.Tavus.PublicKey != "" {
			fmt.Printf("Tavus public key: %s\n", f.config.Tavus.PublicKey)
		}
	case interview.ChannelFailed:
		fmt.Println("The avatar channel is unavailable; continuing in question-only mode.")
		if s.ChannelError != "" {
			fmt.Printf("Provider said: %s\n", s.ChannelError)
		}
	}

	return nil
}

func (f *flow) answer(ctx context.Context) error {
	if f.current == nil {
		return interview.ErrNoSession
	}

	fmt.Printf("Current question: %s\n", f.current.Question.Text)

	answerPrompt := promptui.Prompt{Label: "Your answer"}
	text, err := answerPrompt.Run()
	if err != nil {
		return err
	}

	result, err := f.launcher.Answer(ctx, f.current, text)
	if err != nil {
		return err
	}

	if result.FollowUp != nil {
		fmt.Printf("Next question: %s\n", result.FollowUp.Text)
	}
	if result.Done {
		fmt.Println("Interview complete. Pick \"View results\" to see your scores.")
	}

	return nil
}

func (f *flow) showResults(ctx context.Context) error {
	interviewID := f.store.Snapshot().InterviewID
	if interviewID == 0 {
		idPrompt := promptui.Prompt{Label: "Interview id"}
		raw, err := idPrompt.Run()
		if err != nil {
			return err
		}
		interviewID, err = strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid interview id: %s", raw)
		}
	}

	view, err := f.aggregator.Load(ctx, interviewID)
	if err != nil {
		return err
	}

	fmt.Print(renderView(view))

	return nil
}

// formInput maps the config profile section onto the submit form, defaulting
// the identity fields from the logged-in user.
func formInput(p *ProfileConfig, state session.State) profile.FormInput {
	in := profile.FormInput{
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.Role,
		Age:             p.Age,
		TechStack:       p.TechStack,
		WorkExperiences: p.WorkExperiences,
		Projects:        p.Projects,
		CompaniesWorked: p.CompaniesWorked,
		TargetRole:      p.TargetRole,
		TargetCompany:   p.TargetCompany,
		ResumeText:      p.ResumeText,
		ResumeFile:      p.ResumeFile,
	}

	if state.User != nil {
		if in.Name == "" {
			in.Name = state.User.Name
		}
		if in.Email == "" {
			in.Email = state.User.Email
		}
		if in.Role == "" {
			in.Role = state.User.Role
		}
	}
	if in.Role == "" {
		in.Role = defaultRole
	}

	return in
}

func resolvePassword(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	passwordFile := strings.TrimSpace(config.PasswordFile)
	if passwordFile == "" {
		passwordFile = strings.TrimSpace(viper.GetString("password-file"))
	}

	if passwordFile != "" {
		return secrets.Load(secrets.Source{
			Name: "interviewdost password",
			File: passwordFile,
		})
	}

	passwordPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	return passwordPrompt.Run()
}
