package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/carbonlog/carbon/internal/activity"
	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/discovery"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
	"github.com/carbonlog/carbon/internal/tui"
	"github.com/carbonlog/carbon/internal/ui"
)

// skipSettings marks commands that must work without a valid settings file
const skipSettings = "skip-settings"

// Global flags
var (
	configPath string
	serverURL  string
	userID     string
	logLevel   string
	logFile    string

	// settings is loaded by setup before any command runs
	settings *config.Settings
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Settings file (default: <config dir>/config.yaml)")
	pf.StringVar(&serverURL, "server", "", "Tracker server URL (overrides settings and "+config.ServerURLEnvVar+")")
	pf.StringVar(&userID, "user-id", "", "User id sent with every log entry (overrides "+config.UserIDEnvVar+")")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: silent)")
	pf.StringVar(&logFile, "log-file", "", "Log destination (default: carbon.log in the config dir for the interface, stderr otherwise)")

	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

// setup initializes logging and loads settings, applying flag overrides last
func setup(cmd *cobra.Command, args []string) error {
	if err := initLogging(cmd); err != nil {
		return err
	}
	if cmd.Annotations[skipSettings] == "true" {
		return nil
	}

	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		s.Server.URL = serverURL
	}
	if userID != "" {
		s.UserID = userID
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settings = s
	logging.Debug("Settings loaded",
		zap.String("server", s.Server.URL),
		zap.Duration("timeout", s.Timeout()),
	)
	return nil
}

// initLogging sends the interface's logs to a file since it owns the terminal
func initLogging(cmd *cobra.Command) error {
	path := logFile
	if path == "" && os.Getenv(logging.LogFileEnvVar) == "" && !cmd.HasParent() {
		if dir, err := config.GetConfigDir(); err == nil && os.MkdirAll(dir, 0o700) == nil {
			path = filepath.Join(dir, "carbon.log")
		}
	}
	return logging.Initialize(logLevel, path)
}

// newClient creates an API client carrying the saved session, if it was
// issued by the configured server
func newClient() (*api.Client, *config.Session, error) {
	client, err := api.NewClient(settings.Server.URL)
	if err != nil {
		return nil, nil, err
	}
	client.SetTimeout(settings.Timeout())

	sess, err := config.LoadSession("")
	if err != nil {
		logging.Warn("Ignoring unreadable session", zap.Error(err))
		return client, nil, nil
	}
	if sess == nil || sess.ServerURL != settings.Server.URL {
		return client, nil, nil
	}
	client.SetCookies(sess.HTTPCookies())
	return client, sess, nil
}

func saveSession(client *api.Client, username string) error {
	sess := config.NewSession(settings.Server.URL, username, client.Cookies())
	if err := config.SaveSession("", sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// requestContext bounds one API call by the configured timeout
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), settings.Timeout())
}

// printAPIFailure renders an API error with its troubleshooting hint
func printAPIFailure(p *ui.Printer, title string, err error) {
	p.Result(ui.NewFailureResult(title, errors.New(api.ShortMessage(err)), api.Hint(err)))
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, sess, err := newClient()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Backend:     client,
		Settings:    settings,
		StartScreen: tui.ScreenLogin,
		OnLogin: func(username string) error {
			return saveSession(client, username)
		},
		OnLogout: func() error {
			return logout(cmd, client)
		},
	}
	if sess != nil && len(sess.Cookies) > 0 {
		opts.StartScreen = tui.ScreenMenu
		opts.Username = sess.Username
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

// itemsCmd lists the reference items of one item type
var itemsCmd = &cobra.Command{
	Use:   "items <appliance|food|transport> <item-type>",
	Short: "List reference items for an item type",
	Long: `List the reference items the tracker knows for one item type, with
the coefficient used to compute emissions.`,
	Example: `  carbon items appliance Kitchen
  carbon items transport Personal`,
	Args: cobra.ExactArgs(2),
	RunE: runItems,
}

// selectItemType walks the configured catalog the way the item screen does,
// so only listed item types reach the tracker
func selectItemType(kind tracker.Kind, itemType string) error {
	catalog := settings.Catalog()
	state, effect := tracker.Transition(tracker.InitialState(), catalog, tracker.SelectEvent(kind.Label()))
	if effect.Kind != tracker.EffectShowItemTypes {
		return fmt.Errorf("category %s is not in the configured taxonomy", kind.Label())
	}
	if _, effect = tracker.Transition(state, catalog, tracker.SelectEvent(itemType)); effect.Kind != tracker.EffectLoadItems {
		return fmt.Errorf("unknown %s item type %q (available: %s)",
			strings.ToLower(kind.Label()), itemType, strings.Join(catalog.ItemTypes(kind), ", "))
	}
	return nil
}

func runItems(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())

	kind, ok := tracker.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown category %q (use appliance, food or transport)", args[0])
	}
	itemType := args[1]
	if err := selectItemType(kind, itemType); err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	items, err := client.FetchItems(ctx, kind, itemType)
	if err != nil {
		printAPIFailure(p, tracker.LoadErrorNotice(kind), err)
		return err
	}

	p.Header(ui.NewHeader("REFERENCE ITEMS", "carbon items",
		ui.Param{Key: "Category", Value: kind.Label()},
		ui.Param{Key: "Item type", Value: itemType},
	))
	if len(items) == 0 {
		p.Banner(tracker.NotFoundNotice(kind), tracker.SeverityInfo)
		return nil
	}
	p.Println(ui.RenderItems(kind, items))
	return nil
}

// Log command flags
var logWattage string

// logCmd records one usage event
var logCmd = &cobra.Command{
	Use:   "log <appliance|food|transport> <item-type> <item> <amount>",
	Short: "Log appliance usage, food or travel",
	Long: `Log one usage event. The amount is hours used for appliances, miles
travelled for transport and kilograms for food. The log time is the
current local time.

Appliances are logged with the wattage the tracker lists for them unless
--wattage is given.`,
	Example: `  # Two hours of fridge use
  carbon log appliance Kitchen Fridge 2

  # Override the listed wattage
  carbon log appliance Kitchen Kettle 0.1 --wattage 2.4

  # Twelve miles by car
  carbon log transport Personal Car 12

  # Half a kilo of cheese
  carbon log food Dairy Cheese 0.5`,
	Args: cobra.ExactArgs(4),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logWattage, "wattage", "", "Wattage in kWh (appliances only)")
}

func runLog(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())

	kind, ok := tracker.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown category %q (use appliance, food or transport)", args[0])
	}
	itemType, itemName, amount := args[1], args[2], args[3]
	if logWattage != "" && kind != tracker.KindAppliance {
		return errors.New("--wattage only applies to appliances")
	}
	if err := selectItemType(kind, itemType); err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	items, err := client.FetchItems(ctx, kind, itemType)
	if err != nil {
		printAPIFailure(p, tracker.LoadErrorNotice(kind), err)
		return err
	}

	form := tracker.NewForm(kind, itemType, items, time.Now())
	if !form.HasSelect() {
		p.Banner(form.Notice, tracker.SeverityInfo)
		return errors.New(form.Notice)
	}

	idx := findOption(form, itemName)
	if idx < 0 {
		names := make([]string, len(form.Options))
		for i, opt := range form.Options {
			names[i] = opt.Value
		}
		return fmt.Errorf("no %s named %q in %s (available: %s)",
			strings.ToLower(kind.Label()), itemName, itemType, strings.Join(names, ", "))
	}

	form = form.Select(idx, time.Now())
	form = form.SetValue(kind.QuantityField(), amount)
	if logWattage != "" {
		form = form.SetValue(tracker.FieldWattage, logWattage)
	}

	entry, err := tracker.BuildEntry(settings.UserID, form)
	if err != nil {
		p.Banner(err.Error(), tracker.SeverityDanger)
		return err
	}

	submitCtx, submitCancel := requestContext(cmd)
	defer submitCancel()
	res, err := client.SubmitLog(submitCtx, entry)
	if err != nil {
		printAPIFailure(p, tracker.SubmitErrorMessage, err)
		return err
	}
	if !res.Success {
		p.Banner(tracker.FailureMessage(res.Message), tracker.SeverityDanger)
		return errors.New(res.Message)
	}

	opt, _ := form.SelectedOption()
	result := ui.NewSuccessResult(tracker.SuccessMessage(kind),
		ui.Param{Key: "Item", Value: opt.Label},
		ui.Param{Key: "Amount", Value: amount},
		ui.Param{Key: "Log time", Value: entry.LogTime},
	)
	if entry.HasCoefficient {
		result.AddDetail("Wattage", form.Value(tracker.FieldWattage))
	}
	if kg, ok := form.Estimate(); ok {
		result.AddDetail("Estimate", fmt.Sprintf("%.2f kg CO₂e", kg))
	}
	p.Result(result)
	return nil
}

// findOption matches an item by name, ignoring case
func findOption(f tracker.Form, name string) int {
	for i, opt := range f.Options {
		if strings.EqualFold(opt.Value, name) {
			return i
		}
	}
	return -1
}

// Activity command flags
var (
	activityStart string
	activityEnd   string
	activityDays  int
	activityCSV   bool
	activityCopy  bool
)

// activityCmd charts the daily footprint for a date range
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Chart the daily carbon footprint",
	Long: `Fetch the daily footprint per category for a date range and draw it
as stacked bars. Without --start and --end the last --days days are used.`,
	Example: `  # Last week
  carbon activity

  # A given month as CSV
  carbon activity --start 2024-03-01 --end 2024-03-31 --csv > march.csv

  # Copy the data to the clipboard
  carbon activity --days 30 --copy`,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().StringVar(&activityStart, "start", "", "First day (YYYY-MM-DD)")
	activityCmd.Flags().StringVar(&activityEnd, "end", "", "Last day (YYYY-MM-DD)")
	activityCmd.Flags().IntVar(&activityDays, "days", 7, "Days ending today when no dates are given")
	activityCmd.Flags().BoolVar(&activityCSV, "csv", false, "Write CSV instead of the chart")
	activityCmd.Flags().BoolVar(&activityCopy, "copy", false, "Copy the data to the clipboard as CSV")
}

func runActivity(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())

	start, end := activityStart, activityEnd
	if start == "" && end == "" {
		r := activity.LastDays(activityDays, time.Now())
		start, end = r.Start, r.End
	}
	r, err := activity.ValidateRange(start, end)
	if err != nil {
		p.Banner(err.Error(), tracker.SeverityWarning)
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	data, err := client.ActivityData(ctx, r)
	if err != nil {
		printAPIFailure(p, activity.MsgFetchFailed, err)
		return err
	}

	if activityCSV {
		return data.WriteCSV(p.Writer())
	}

	p.Header(ui.NewHeader("CARBON FOOTPRINT", "carbon activity",
		ui.Param{Key: "From", Value: r.Start},
		ui.Param{Key: "To", Value: r.End},
	))
	if data.Empty() {
		p.Banner(activity.MsgNoData, tracker.SeverityInfo)
		return nil
	}

	p.Println(activity.Render(data, p.Width()))
	p.Newline()
	p.Println(ui.RenderShares(data, p.Width()))

	if activityCopy {
		csv, err := data.CSV()
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(csv); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		p.Newline()
		p.Banner("Chart data copied as CSV.", tracker.SeveritySuccess)
	}
	return nil
}

// Discover command flags
var (
	discoverTimeout int
	discoverUse     bool
)

// discoverCmd finds tracker servers on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find tracker servers on the local network",
	Long: `Browse mDNS for tracker servers advertising ` + discovery.ServiceType + `.

With --use, the first server found is written to the settings file.`,
	Example: `  carbon discover
  carbon discover --timeout 10 --use`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 5, "Scan timeout in seconds")
	discoverCmd.Flags().BoolVar(&discoverUse, "use", false, "Save the first server found as the server URL")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p := ui.NewPrinter(cmd.OutOrStdout())

	p.Printf("Scanning for tracker servers (timeout: %ds)...\n\n", discoverTimeout)

	servers, err := discovery.QuickScan(cmd.Context(), time.Duration(discoverTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		p.Result(ui.NewWarningResult("No servers found",
			ui.Param{Key: "Service", Value: discovery.ServiceType},
			ui.Param{Key: "Hint", Value: "Pass --server or set " + config.ServerURLEnvVar + " instead"},
		))
		return nil
	}

	p.Printf("Found %d server(s):\n\n", len(servers))
	for i, s := range servers {
		p.Printf("%d. %s\n", i+1, s.Instance)
		p.Printf("   URL:     %s\n", s.BaseURL())
		p.Printf("   Host:    %s\n", s.Hostname)
		if v := s.Version(); v != "" {
			p.Printf("   Version: %s\n", v)
		}
		p.Newline()
	}

	if !discoverUse {
		p.Println("Use 'carbon discover --use' to save the first server")
		return nil
	}

	// Reload so flag overrides are not written to the file
	saved, err := config.Load(configPath)
	if err != nil {
		return err
	}
	saved.Server.URL = servers[0].BaseURL()
	if err := saved.Save(configPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	p.Result(ui.NewSuccessResult("Server saved", ui.Param{Key: "URL", Value: saved.Server.URL}))
	return nil
}

// configCmd groups the settings file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the settings file location",
	Annotations: map[string]string{skipSettings: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a settings file with the defaults",
	Annotations: map[string]string{skipSettings: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path, err := settingsPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.NewSettings().Save(path); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).Result(ui.NewSuccessResult("Settings written", ui.Param{Key: "Path", Value: path}))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
