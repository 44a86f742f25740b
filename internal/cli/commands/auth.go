package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/spf13/cobra"
)

var roleChoices = []string{string(client.RoleCustomer), string(client.RolePrinter)}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the printing marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, role, WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set PRINTMARKET_EMAIL)")
	cmd.Flags().StringVar(&role, "role", "", "Account role: CUSTOMER or PRINTER (optional, the server knows your role)")

	return cmd
}

func runLogin(email, role string, opts ...Option) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("PRINTMARKET_EMAIL")
	}

	// Validate email
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or PRINTMARKET_EMAIL env var)")
	}

	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if role == "" && o.prompter.Interactive() {
		items := append([]string{"Use my account's role"}, roleChoices...)
		idx, err := o.prompter.Select("Log in as", items)
		if err != nil {
			return err
		}
		if idx > 0 {
			role = items[idx]
		}
	}

	if *o.format == output.FormatTable {
		fmt.Fprintf(o.out, "Logging in to %s...\n", o.api.BaseURL())
	}

	resp, err := o.api.Login(o.ctx, client.LoginRequest{
		Email: strings.TrimSpace(email),
		Role:  client.Role(strings.ToUpper(role)),
	})
	if err != nil {
		if kind, ok := client.KindOf(err); ok && kind == client.KindHTTP {
			return fmt.Errorf("login failed: %w\nNew here? Run 'printmarket signup'", err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	printSession(o, resp)
	return nil
}

// NewSignupCmd creates the signup command
func NewSignupCmd() *cobra.Command {
	var email, role, company string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a printing marketplace account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(email, role, company, WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set PRINTMARKET_EMAIL)")
	cmd.Flags().StringVar(&role, "role", "", "Account role: CUSTOMER or PRINTER")
	cmd.Flags().StringVar(&company, "company-name", "", "Company name (required for CUSTOMER accounts)")

	return cmd
}

func runSignup(email, role, company string, opts ...Option) error {
	if email == "" {
		email = os.Getenv("PRINTMARKET_EMAIL")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or PRINTMARKET_EMAIL env var)")
	}

	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if role == "" {
		if !o.prompter.Interactive() {
			return fmt.Errorf("role is required in non-interactive mode (use --role CUSTOMER or --role PRINTER)")
		}
		idx, err := o.prompter.Select("Sign up as", roleChoices)
		if err != nil {
			return err
		}
		role = roleChoices[idx]
	}
	role = strings.ToUpper(role)

	if role == string(client.RoleCustomer) && strings.TrimSpace(company) == "" && o.prompter.Interactive() {
		company, err = o.prompter.Input("Company name")
		if err != nil {
			return err
		}
	}

	req := client.SignupRequest{
		Email: strings.TrimSpace(email),
		Role:  client.Role(role),
	}
	if req.Role == client.RoleCustomer {
		req.CompanyName = strings.TrimSpace(company)
	}

	resp, err := o.api.Signup(o.ctx, req)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	printSession(o, resp)
	return nil
}

func printSession(o *options, resp *client.AuthResponse) {
	if handled, _ := output.Encode(o.out, *o.format, resp.User); handled {
		return
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  User: %s\n", resp.User.Email)
	fmt.Fprintf(o.out, "  Role: %s\n", resp.User.Role)
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(WithContext(cmd.Context()))
		},
	}
}

func runLogout(opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if err := o.api.Logout(o.ctx); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Logged out")
	return nil
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami(opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	user, ok := o.api.CurrentUser()
	if !ok {
		return fmt.Errorf("not logged in to %s\nRun 'printmarket login' to authenticate", o.api.BaseURL())
	}

	if handled, err := output.Encode(o.out, *o.format, user); handled {
		return err
	}

	fmt.Fprintf(o.out, "%s (%s) on %s\n", user.Email, user.Role, o.api.BaseURL())
	return nil
}

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the connection to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(WithContext(cmd.Context()))
		},
	}
}

func runHealth(opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	status, err := o.api.Health(o.ctx)
	if err != nil {
		return fmt.Errorf("backend %s is not healthy: %w", o.api.BaseURL(), err)
	}

	if handled, err := output.Encode(o.out, *o.format, status); handled {
		return err
	}

	fmt.Fprintf(o.out, "%s: %s (%s)\n", o.api.BaseURL(), status.Status, status.Timestamp)
	return nil
}
