package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/madhuerpdirect-droid/gts-chits/internal/amqp"
	"github.com/madhuerpdirect-droid/gts-chits/internal/backend"
	"github.com/madhuerpdirect-droid/gts-chits/internal/cli"
	"github.com/madhuerpdirect-droid/gts-chits/internal/config"
	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/importer"
	"github.com/madhuerpdirect-droid/gts-chits/internal/importer/csvfile"
	"github.com/madhuerpdirect-droid/gts-chits/internal/importer/gsheet"
	applog "github.com/madhuerpdirect-droid/gts-chits/internal/log"
	"github.com/madhuerpdirect-droid/gts-chits/internal/notify"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
	"github.com/madhuerpdirect-droid/gts-chits/internal/reports"
	"github.com/madhuerpdirect-droid/gts-chits/internal/services"
)

const usage = `Usage: chits <command> [flags]

Commands:
  status    show collections, totals and backup staleness
  backup    export the database to a dated JSON file
  restore   replace the database from a JSON backup file
  import    bulk-enroll members from a CSV file or Google Sheet
  due       list unpaid members of a group for a month
  pay       record an installment payment for a member
  allot     mark a member as having won the prize for a month
  remind    queue payment reminders for unpaid members
  forecast  show a member's next three installments
  quickpay  print the UPI collection link for a member's installment
  prefs     show or change the collection VPA and messaging preferences
`

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.NewFactory(logger).Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	ctx := context.Background()
	reg, err := registry.Load(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load registry", "error", err)
		os.Exit(1)
	}

	var cmdErr error
	switch os.Args[1] {
	case "status":
		cmdErr = runStatus(reg)
	case "backup":
		cmdErr = runBackup(ctx, reg, cfg)
	case "restore":
		cmdErr = runRestore(ctx, reg, cfg, os.Args[2:])
	case "import":
		cmdErr = runImport(ctx, logger, reg, cfg, os.Args[2:])
	case "due":
		cmdErr = runDue(reg, os.Args[2:])
	case "pay":
		cmdErr = runPay(ctx, reg, cfg, os.Args[2:])
	case "allot":
		cmdErr = runAllot(ctx, reg, cfg, os.Args[2:])
	case "remind":
		cmdErr = runRemind(ctx, logger, reg, cfg, os.Args[2:])
	case "forecast":
		cmdErr = runForecast(reg, os.Args[2:])
	case "quickpay":
		cmdErr = runQuickPay(ctx, reg, os.Args[2:])
	case "prefs":
		cmdErr = runPrefs(ctx, reg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", cmdErr)
		os.Exit(1)
	}
}

func runStatus(reg *registry.Registry) error {
	groups := reg.Groups()
	members := reg.Members()
	payments := reg.Payments()
	summary := reports.Summarize(groups, members, payments)

	fmt.Printf("Groups:      %d (%d active)\n", len(groups), summary.ActiveGroups)
	fmt.Printf("Members:     %d\n", summary.TotalMembers)
	fmt.Printf("Collections: %s\n", summary.TotalCollections)
	if lb := reg.LastBackup(); lb.IsZero() {
		fmt.Println("Last backup: never")
	} else {
		fmt.Printf("Last backup: %s\n", lb.Format("2006-01-02 15:04"))
	}
	if reg.NeedsBackup() {
		fmt.Println("WARNING: data has changed since the last backup")
	}
	return nil
}

func runBackup(ctx context.Context, reg *registry.Registry, cfg *config.Config) error {
	path, err := services.NewBackupService(reg, cfg.BackupDir).Export(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", path)
	return nil
}

func runRestore(ctx context.Context, reg *registry.Registry, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	yes := fs.Bool("yes", false, "confirm replacing the current database")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("restore requires exactly one backup file argument")
	}
	if !*yes {
		return errors.New("restore replaces the current database; re-run with -yes to confirm")
	}

	snap, err := services.NewBackupService(reg, cfg.BackupDir).Restore(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("Restored %d groups, %d members, %d payments\n",
		len(snap.Groups), len(snap.Members), len(snap.Payments))
	return nil
}

func runImport(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	csvPath := fs.String("csv", "", "path to a CSV file of candidate rows")
	sheet := fs.Bool("sheet", false, "read candidate rows from the configured Google Sheet")
	defaultGroup := fs.String("default-group", cfg.ImportDefaultGroup, "group name for rows without a recognizable group")
	verbose := fs.Bool("verbose", false, "print each rejected row")
	_ = fs.Parse(args)

	var src importer.RowSource
	switch {
	case *csvPath != "" && *sheet:
		return errors.New("use either -csv or -sheet, not both")
	case *csvPath != "":
		src = csvfile.New(*csvPath)
	case *sheet:
		s, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("google sheet source: %w", err)
		}
		src = s
	default:
		return errors.New("import requires -csv <file> or -sheet")
	}

	res, err := services.NewEnrollmentService(reg).BulkEnroll(ctx, src, *defaultGroup)
	if err != nil {
		return err
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentImporter).
		WithOperation(applog.OpImport)
	fields[applog.FieldAccepted] = len(res.Accepted)
	fields[applog.FieldRejected] = len(res.Rejected)
	logger.Info("Bulk import finished", fields.ToSlice()...)

	fmt.Printf("Imported %d members, rejected %d rows\n", len(res.Accepted), len(res.Rejected))
	if *verbose {
		for _, r := range res.Rejected {
			fmt.Printf("  row %d (%s): %s\n", r.Row, r.Name, r.Reason)
		}
	}
	return nil
}

func runDue(reg *registry.Registry, args []string) error {
	fs := flag.NewFlagSet("due", flag.ExitOnError)
	groupName := fs.String("group", "", "group name")
	month := fs.Int("month", 0, "chit month number")
	csvOut := fs.Bool("csv", false, "print as CSV")
	_ = fs.Parse(args)

	g, month0, err := resolveGroupMonth(reg, *groupName, *month)
	if err != nil {
		return err
	}

	rep := reports.Due(g, reg.Members(), reg.Payments(), month0)
	if *csvOut {
		return reports.DueCSV(os.Stdout, rep)
	}

	fmt.Printf("%s, month %d: %d unpaid, %s outstanding\n",
		g.Name, month0, len(rep.Entries), rep.Outstanding)
	for _, e := range rep.Entries {
		fmt.Printf("  %-24s %-12s %s\n", e.Member.Name, e.Member.Phone, e.Expected)
	}
	return nil
}

func runPay(ctx context.Context, reg *registry.Registry, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	phone := fs.String("phone", "", "member phone number")
	month := fs.Int("month", 0, "chit month number, defaults to the current one")
	amount := fs.Int64("amount", 0, "amount in rupees, defaults to the expected installment")
	mode := fs.String("mode", string(core.ModeCash), "payment mode: Cash, UPI, Cheque or Other")
	ref := fs.String("ref", "", "transaction reference")
	remarks := fs.String("remarks", "", "free-form remarks")
	_ = fs.Parse(args)

	m, g, err := resolveMember(reg, *phone)
	if err != nil {
		return err
	}
	if *month == 0 {
		*month = core.CurrentChitMonth(g.StartDate, core.Today().Time)
	}

	client := optionalAMQP(cfg)
	if client != nil {
		defer client.Close()
	}

	p, err := services.NewCollectionService(reg, client).RecordPayment(ctx, m.ID, core.PaymentInput{
		Month:          *month,
		Amount:         core.Money{Rupees: *amount},
		Mode:           core.PaymentMode(*mode),
		TransactionRef: *ref,
		Remarks:        *remarks,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s from %s for month %d, receipt %s\n",
		p.AmountPaid, m.Name, p.MonthNumber, p.ReceiptNumber)
	return nil
}

func runAllot(ctx context.Context, reg *registry.Registry, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("allot", flag.ExitOnError)
	phone := fs.String("phone", "", "member phone number")
	month := fs.Int("month", 0, "chit month number, defaults to the current one")
	_ = fs.Parse(args)

	m, g, err := resolveMember(reg, *phone)
	if err != nil {
		return err
	}
	if *month == 0 {
		*month = core.CurrentChitMonth(g.StartDate, core.Today().Time)
	}
	if *month < 1 || *month > g.TotalMonths {
		return core.ErrInvalidMonth
	}

	client := optionalAMQP(cfg)
	if client != nil {
		defer client.Close()
	}

	if err := services.NewAllotmentService(reg, client).AllotPrize(ctx, m.ID, *month); err != nil {
		return err
	}
	fmt.Printf("%s allotted the prize for month %d of %s\n", m.Name, *month, g.Name)
	return nil
}

// optionalAMQP connects only when an AMQP URL is configured. Commands that
// merely announce events keep working without a broker.
func optionalAMQP(cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Warn("AMQP unavailable, notifications skipped", "error", err)
		return nil
	}
	return client
}

func runRemind(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)
	groupName := fs.String("group", "", "group name")
	month := fs.Int("month", 0, "chit month number")
	_ = fs.Parse(args)

	g, month0, err := resolveGroupMonth(reg, *groupName, *month)
	if err != nil {
		return err
	}

	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is not configured")
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer client.Close()

	queued, err := services.NewCollectionService(reg, client).PublishReminders(ctx, g.ID, month0)
	if err != nil {
		return err
	}
	logger.Info("Reminders queued", "group", g.Name, "month", month0, "count", queued)
	fmt.Printf("Queued %d reminders for %s, month %d\n", queued, g.Name, month0)
	fmt.Printf("Installment due %s, reminders land by %s\n",
		core.InstallmentDueDate(g.StartDate, month0), core.ReminderDate(g.StartDate, month0))
	return nil
}

func runForecast(reg *registry.Registry, args []string) error {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	phone := fs.String("phone", "", "member phone number")
	month := fs.Int("month", 0, "starting chit month, defaults to the current one")
	_ = fs.Parse(args)

	m, g, err := resolveMember(reg, *phone)
	if err != nil {
		return err
	}
	if *month == 0 {
		*month = core.CurrentChitMonth(g.StartDate, core.Today().Time)
	}

	fmt.Println(notify.Forecast(m, g, *month))
	return nil
}

func runQuickPay(ctx context.Context, reg *registry.Registry, args []string) error {
	fs := flag.NewFlagSet("quickpay", flag.ExitOnError)
	phone := fs.String("phone", "", "member phone number")
	month := fs.Int("month", 0, "chit month number, defaults to the current one")
	_ = fs.Parse(args)

	m, g, err := resolveMember(reg, *phone)
	if err != nil {
		return err
	}
	if *month == 0 {
		*month = core.CurrentChitMonth(g.StartDate, core.Today().Time)
	}

	// Group-specific address wins over the global preference.
	vpa := g.UPIID
	if vpa == "" {
		vpa = reg.CollectionVPA(ctx)
	}
	if vpa == "" {
		return errors.New("no collection VPA configured for the group or registry")
	}

	amount := core.ExpectedInstallment(g, m, *month)
	fmt.Println(notify.QuickPay(m, *month, amount, vpa))
	fmt.Println(notify.UPILink(vpa, g.Name, amount))
	return nil
}

func runPrefs(ctx context.Context, reg *registry.Registry, args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	vpa := fs.String("vpa", "", "set the collection VPA")
	waWeb := fs.String("wa-web", "", "route WhatsApp links through the web client (true|false)")
	_ = fs.Parse(args)

	if *vpa != "" {
		if err := reg.SetCollectionVPA(ctx, *vpa); err != nil {
			return err
		}
	}
	if *waWeb != "" {
		useWeb, err := strconv.ParseBool(*waWeb)
		if err != nil {
			return fmt.Errorf("invalid -wa-web value %q", *waWeb)
		}
		if err := reg.SetWhatsAppUseWeb(ctx, useWeb); err != nil {
			return err
		}
	}

	current := reg.CollectionVPA(ctx)
	if current == "" {
		current = "(unset)"
	}
	fmt.Printf("Collection VPA:   %s\n", current)
	fmt.Printf("WhatsApp via web: %t\n", reg.WhatsAppUseWeb(ctx))
	return nil
}

func resolveMember(reg *registry.Registry, phone string) (core.Member, core.Group, error) {
	if phone == "" {
		return core.Member{}, core.Group{}, errors.New("-phone is required")
	}
	cleaned := core.CleanPhone(phone)
	for _, m := range reg.Members() {
		if m.Phone != cleaned {
			continue
		}
		g, ok := core.FindGroup(reg.Groups(), m.GroupID)
		if !ok {
			return core.Member{}, core.Group{}, core.ErrGroupNotFound
		}
		return m, g, nil
	}
	return core.Member{}, core.Group{}, core.ErrMemberNotFound
}

func resolveGroupMonth(reg *registry.Registry, groupName string, month int) (core.Group, int, error) {
	if groupName == "" {
		return core.Group{}, 0, errors.New("-group is required")
	}
	g, ok := core.FindGroupByName(reg.Groups(), groupName)
	if !ok {
		return core.Group{}, 0, core.ErrGroupNotFound
	}
	if month == 0 {
		month = core.CurrentChitMonth(g.StartDate, core.Today().Time)
	}
	if month < 1 || month > g.TotalMonths {
		return core.Group{}, 0, core.ErrInvalidMonth
	}
	return g, month, nil
}
