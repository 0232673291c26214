package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/carbonlog/carbon/internal/account"
	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
	"github.com/carbonlog/carbon/internal/ui"
)

// Account command flags
var (
	accountUsername string
	accountEmail    string
)

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd, forgotCmd} {
		c.Flags().StringVarP(&accountUsername, "username", "u", "", "Username (prompted when omitted)")
	}
	for _, c := range []*cobra.Command{registerCmd, forgotCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "Email address (prompted when omitted)")
	}

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(forgotCmd)
}

// prompter reads answers from the command's input. Passwords are read
// without echo when the input is a terminal.
type prompter struct {
	out io.Writer
	in  *bufio.Reader
	raw io.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		out: cmd.ErrOrStderr(),
		in:  bufio.NewReader(cmd.InOrStdin()),
		raw: cmd.InOrStdin(),
	}
}

// line returns value if set, otherwise asks for it
func (p *prompter) line(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret asks for a password
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return p.line(label, "")
}

func resultFields(res *api.Result) (bool, string) {
	if res == nil {
		return false, ""
	}
	return res.Success, res.Message
}

// loginCmd logs in and saves the session for later commands
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the tracker",
	Long: `Log in and save the session cookie next to the settings file so later
commands and the interactive interface are authenticated.`,
	Example: `  carbon login --username alice`,
	Args:    cobra.NoArgs,
	RunE:    runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())
	ask := newPrompter(cmd)

	username, err := ask.line("Username: ", accountUsername)
	if err != nil {
		return err
	}
	password, err := ask.secret("Password: ")
	if err != nil {
		return err
	}

	creds, err := account.Credentials{Username: username, Password: password}.Validate()
	if err != nil {
		p.Banner(err.Error(), tracker.SeverityDanger)
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	res, err := client.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		printAPIFailure(p, account.MsgLoginFailed, err)
		return err
	}

	success, message := resultFields(res)
	if !success {
		out := account.LoginOutcome(success, message, nil)
		p.Banner(out.Text, out.Severity)
		return errors.New(message)
	}

	if err := saveSession(client, creds.Username); err != nil {
		return err
	}
	p.Result(ui.NewSuccessResult("Logged in",
		ui.Param{Key: "User", Value: creds.Username},
		ui.Param{Key: "Server", Value: settings.Server.URL},
	))
	return nil
}

// logoutCmd ends the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		client, _, err := newClient()
		if err != nil {
			return err
		}
		if err := logout(cmd, client); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).Banner("Logged out.", tracker.SeverityInfo)
		return nil
	},
}

// logout ends the server session and removes the saved one. The local
// session is removed even when the server cannot be reached.
func logout(cmd *cobra.Command, client *api.Client) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		logging.Warn("Server logout failed", zap.Error(err))
	}
	return config.ClearSession("")
}

// registerCmd creates an account
var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a tracker account",
	Example: `  carbon register --username alice --email alice@example.com`,
	Args:    cobra.NoArgs,
	RunE:    runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())
	ask := newPrompter(cmd)

	username, err := ask.line("Username: ", accountUsername)
	if err != nil {
		return err
	}
	email, err := ask.line("Email: ", accountEmail)
	if err != nil {
		return err
	}
	password, err := ask.secret("Password: ")
	if err != nil {
		return err
	}
	confirm, err := ask.secret("Confirm Password: ")
	if err != nil {
		return err
	}

	reg, err := account.Registration{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}.Validate()
	if err != nil {
		p.Banner(err.Error(), tracker.SeverityDanger)
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	res, err := client.Register(ctx, reg.Username, reg.Email, reg.Password, reg.ConfirmPassword)
	if err != nil {
		printAPIFailure(p, account.MsgRegisterFailed, err)
		return err
	}

	success, message := resultFields(res)
	if !success {
		p.Banner(message, tracker.SeverityDanger)
		return errors.New(message)
	}
	p.Result(ui.NewSuccessResult("Account created",
		ui.Param{Key: "User", Value: reg.Username},
		ui.Param{Key: "Next", Value: "carbon login --username " + reg.Username},
	))
	return nil
}

// forgotCmd requests a password reset
var forgotCmd = &cobra.Command{
	Use:     "forgot-password",
	Short:   "Request a password reset",
	Example: `  carbon forgot-password --username alice --email alice@example.com`,
	Args:    cobra.NoArgs,
	RunE:    runForgot,
}

func runForgot(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())
	ask := newPrompter(cmd)

	username, err := ask.line("Username: ", accountUsername)
	if err != nil {
		return err
	}
	email, err := ask.line("Email: ", accountEmail)
	if err != nil {
		return err
	}

	req, err := account.ResetRequest{Username: username, Email: email}.Validate()
	if err != nil {
		p.Banner(err.Error(), tracker.SeverityDanger)
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	res, err := client.ForgotPassword(ctx, req.Username, req.Email)
	if err != nil {
		printAPIFailure(p, account.MsgForgotFailed, err)
		return err
	}

	success, message := resultFields(res)
	out := account.ForgotOutcome(success, message, nil)
	p.Banner(out.Text, out.Severity)
	if !success {
		return errors.New(message)
	}
	return nil
}
