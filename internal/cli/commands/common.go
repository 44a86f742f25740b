package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/printmarket-dev/printmarket/internal/cli/session"
	"github.com/printmarket-dev/printmarket/internal/config"
	"github.com/printmarket-dev/printmarket/internal/logger"
	"github.com/spf13/cobra"
)

// API is the part of the marketplace client the commands use
type API interface {
	BaseURL() string
	Health(ctx context.Context) (*client.HealthStatus, error)

	Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	Signup(ctx context.Context, req client.SignupRequest) (*client.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser() (*session.User, bool)

	CreateJob(ctx context.Context, job client.JobCreate) (*client.Job, error)
	GetJob(ctx context.Context, jobUUID string) (*client.Job, error)
	ListJobs(ctx context.Context, state client.JobState) ([]client.Job, error)
	UpdateJob(ctx context.Context, jobUUID string, update client.JobUpdate) (*client.Job, error)
	DeleteJob(ctx context.Context, jobUUID string) error
	PublishJob(ctx context.Context, jobUUID string) (*client.Job, error)
	MatchingJobs(ctx context.Context) ([]client.Job, error)

	UploadJobFile(ctx context.Context, file client.FilePart) (*client.UploadResult, error)
	FileURL(ref string) string
	DownloadFile(ctx context.Context, ref string, w io.Writer) (int64, error)

	MyProfile(ctx context.Context) (*client.Profile, error)
	SaveCustomerProfile(ctx context.Context, in client.CustomerProfileInput) (*client.CustomerProfile, error)
	SavePrinterProfile(ctx context.Context, in client.PrinterProfileInput) (*client.PrinterProfile, error)
}

// Global flag values, bound by AddGlobalFlags
var (
	apiURLFlag string
	outputFlag string
)

// AddGlobalFlags registers the flags shared by every command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend URL (or set PRINTMARKET_API_URL)")
	cmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, json, yaml")
}

// options carries the dependencies of a command run
type options struct {
	ctx      context.Context
	api      API
	out      io.Writer
	format   *output.Format
	prompter Prompter
}

// Option injects a dependency into a command run
type Option func(*options)

// WithAPI sets the API client
func WithAPI(api API) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithOutput sets where results are written
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithFormat sets the output format
func WithFormat(f output.Format) Option {
	return func(o *options) {
		o.format = &f
	}
}

// WithPrompter sets the interactive prompter
func WithPrompter(p Prompter) Option {
	return func(o *options) {
		o.prompter = p
	}
}

// WithContext sets the context requests run under
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// resolve fills in production defaults for anything not injected
func resolve(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.prompter == nil {
		o.prompter = newTerminalPrompter()
	}
	if o.format == nil {
		f, err := output.ParseFormat(outputFlag)
		if err != nil {
			return nil, err
		}
		o.format = &f
	}
	if o.api == nil {
		api, err := newDefaultClient()
		if err != nil {
			return nil, err
		}
		o.api = api
	}

	return o, nil
}

// newDefaultClient builds the client from the environment and global flags
func newDefaultClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	baseURL := cfg.API.URL
	if apiURLFlag != "" {
		baseURL = apiURLFlag
	}

	var store session.Store
	switch cfg.Session.Backend {
	case config.SessionMemory:
		store = session.NewMemoryStore()
	default:
		store = session.NewKeyringStore(baseURL)
	}

	return client.New(baseURL, store,
		client.WithLogger(logger.GetLogger()),
		client.WithUserAgent("printmarket-cli/"+Version),
	), nil
}

// withLoginHint points the user at the login command when the session is missing or expired
func withLoginHint(err error) error {
	if client.NeedsLogin(err) {
		return fmt.Errorf("%w\nRun 'printmarket login' to authenticate", err)
	}
	return err
}

// Version is set by the root command
var Version = "dev"
