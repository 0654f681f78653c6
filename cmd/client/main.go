package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/linemk/secondhand-shop/internal/apiclient"
	"github.com/linemk/secondhand-shop/internal/app"
	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/config"
	"github.com/linemk/secondhand-shop/internal/lib/logger"
	"github.com/linemk/secondhand-shop/internal/session"
	"github.com/linemk/secondhand-shop/internal/tracing"
	"github.com/linemk/secondhand-shop/internal/workflow"
	"github.com/shopspring/decimal"
)

const usage = `usage: client [-config FILE] COMMAND [flags]

commands:
  login -u NAME -p PASS        logout
  register -u NAME -email E -p PASS
  products                     product -id N
  buy -id N                    orders        sales
  pay -id N                    cancel -id N
  comment -id N -content TEXT -rating 1..5
  profile                      update-profile [-phone P] [-address A]
  publish -name N -price P [-stock S] [-category C] [-desc D]
  my-products`

type options struct {
	cmd      string
	id       int64
	username string
	password string
	email    string
	content  string
	rating   int
	phone    string
	address  string
	name     string
	desc     string
	price    string
	stock    int
	category string
	yes      bool
}

var (
	success = color.New(color.FgGreen).SprintFunc()
	failure = color.New(color.FgRed, color.Bold).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

func main() {
	var opts options
	bindFlags(flag.CommandLine, &opts)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	// MustLoadClient объявляет -config и вызывает flag.Parse
	cfg := config.MustLoadClient()
	setFlags, err := parseCommand(flag.CommandLine, &opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, failure(err.Error()))
		flag.Usage()
		os.Exit(2)
	}

	log := logger.SetupLoggerTo(cfg.Env, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := tracing.Init(log, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		log.Warn("tracing disabled", slog.Any("error", err))
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() { _ = shutdownTracing(context.WithoutCancel(ctx)) }()

	store, closeStore, err := newStore(cfg.Session)
	if err != nil {
		fmt.Fprintln(os.Stderr, failure(err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	client := apiclient.New(log, cfg.API.BaseURL, cfg.API.Timeout)
	ctrl := app.NewController(log, cfg.Locale, client, store, workflow.OrderDefaults{
		ShippingAddress: cfg.Order.DefaultShippingAddress,
		ContactPhone:    cfg.Order.DefaultContactPhone,
	})

	if _, err := ctrl.Restore(ctx); err != nil {
		log.Warn("failed to restore session", slog.Any("error", err))
	}

	if err := run(ctx, ctrl, opts, setFlags); err != nil {
		fmt.Fprintln(os.Stderr, failure(apperr.UserMessage(err)))
		log.Debug("command failed", slog.String("cmd", opts.cmd), slog.Any("error", err))
		os.Exit(1)
	}
}

func bindFlags(fs *flag.FlagSet, o *options) {
	fs.StringVar(&o.cmd, "cmd", "products", "command to run, see -help")
	fs.Int64Var(&o.id, "id", 0, "product or order id")
	fs.StringVar(&o.username, "u", "", "username")
	fs.StringVar(&o.password, "p", "", "password")
	fs.StringVar(&o.email, "email", "", "email for register")
	fs.StringVar(&o.content, "content", "", "comment text")
	fs.IntVar(&o.rating, "rating", 0, "comment rating 1..5")
	fs.StringVar(&o.phone, "phone", "", "new contact phone")
	fs.StringVar(&o.address, "address", "", "new address")
	fs.StringVar(&o.name, "name", "", "product name")
	fs.StringVar(&o.desc, "desc", "", "product description")
	fs.StringVar(&o.price, "price", "", "product price")
	fs.IntVar(&o.stock, "stock", 1, "product stock")
	fs.StringVar(&o.category, "category", "", "product category")
	fs.BoolVar(&o.yes, "yes", false, "do not ask for confirmation")
}

// parseCommand вызывается после первого Parse: flag останавливается на команде,
// поэтому флаги после неё разбираются вторым проходом. Возвращает имена заданных флагов.
func parseCommand(fs *flag.FlagSet, o *options) (map[string]bool, error) {
	if fs.NArg() > 0 {
		o.cmd = fs.Arg(0)
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return nil, err
		}
		if fs.NArg() > 0 {
			return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set, nil
}

// newStore выбирает хранилище сессии по конфигу.
func newStore(cfg config.SessionConfig) (session.Store, func(), error) {
	switch cfg.Backend {
	case "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		rdb := session.NewRedisClient(cfg.RedisAddr)
		return session.NewRedisStore(rdb, cfg.KeyPrefix, cfg.TTL), func() { _ = rdb.Close() }, nil
	case "", "file":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = session.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}
		return session.NewFileStore(path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

func run(ctx context.Context, ctrl *app.Controller, o options, set map[string]bool) error {
	switch o.cmd {
	case "login":
		s, err := ctrl.Login(ctx, o.username, o.password)
		if err != nil {
			return err
		}
		fmt.Println(success(fmt.Sprintf("welcome, %s", s.Username)))

	case "logout":
		if err := ctrl.Logout(ctx); err != nil {
			return err
		}
		fmt.Println(success("logged out"))

	case "register":
		if err := ctrl.Register(ctx, o.username, o.email, o.password); err != nil {
			return err
		}
		fmt.Println(success("registered, now log in"))

	case "products":
		cards, err := ctrl.Products(ctx)
		if err != nil {
			return err
		}
		printProducts(cards)

	case "my-products":
		cards, err := ctrl.MyProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(cards)

	case "product":
		detail, err := ctrl.ProductDetail(ctx, o.id)
		if err != nil {
			return err
		}
		printDetail(detail)

	case "buy":
		price, name, err := ctrl.Price(ctx, o.id)
		if err != nil {
			return err
		}
		if !confirm(o.yes, fmt.Sprintf("buy %q for %s?", name, price.StringFixed(2))) {
			return nil
		}
		order, err := ctrl.Buy(ctx, o.id)
		if err != nil {
			return err
		}
		fmt.Println(success(fmt.Sprintf("order %s created, pay it with: pay -id %d", order.OrderNo, order.ID)))

	case "orders", "sales":
		list := ctrl.Orders
		if o.cmd == "sales" {
			list = ctrl.Sales
		}
		cards, err := list(ctx)
		if err != nil {
			return err
		}
		printOrders(cards)

	case "pay":
		if !confirm(o.yes, fmt.Sprintf("pay order %d?", o.id)) {
			return nil
		}
		cards, err := ctrl.PayOrder(ctx, o.id)
		if done(err, "paid") {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(success("paid"))
		printOrders(cards)

	case "cancel":
		if !confirm(o.yes, fmt.Sprintf("cancel order %d?", o.id)) {
			return nil
		}
		cards, err := ctrl.CancelOrder(ctx, o.id)
		if done(err, "cancelled") {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(success("cancelled"))
		printOrders(cards)

	case "comment":
		detail, err := ctrl.SubmitComment(ctx, o.id, o.content, o.rating)
		if err != nil {
			return err
		}
		fmt.Println(success("thanks for the review"))
		printDetail(detail)

	case "profile":
		p, err := ctrl.Profile(ctx)
		if err != nil {
			return err
		}
		printProfile(p)

	case "update-profile":
		var upd workflow.ProfileUpdate
		if set["phone"] {
			upd.Phone = &o.phone
		}
		if set["address"] {
			upd.Address = &o.address
		}
		if upd.Phone == nil && upd.Address == nil {
			return apperr.Validation("client.update-profile", "nothing to update, pass -phone or -address")
		}
		if _, err := ctrl.UpdateProfile(ctx, upd); err != nil {
			return err
		}
		fmt.Println(success("profile updated"))

	case "publish":
		price, err := decimal.NewFromString(o.price)
		if err != nil {
			return apperr.Validation("client.publish", "price must be a number")
		}
		p, err := ctrl.Publish(ctx, workflow.ProductDraft{
			Name:        o.name,
			Description: o.desc,
			Price:       price,
			Stock:       o.stock,
			Category:    o.category,
		})
		if err != nil {
			return err
		}
		fmt.Println(success(fmt.Sprintf("product %d published", p.ID)))

	default:
		return apperr.Validation("client", fmt.Sprintf("unknown command %q\n%s", o.cmd, usage))
	}
	return nil
}

// done: заказ изменён, не удалось только перечитать список. Это успех с предупреждением.
func done(err error, what string) bool {
	var refreshErr *app.RefreshError
	if !errors.As(err, &refreshErr) {
		return false
	}
	fmt.Println(success(what))
	fmt.Fprintln(os.Stderr, warning(refreshErr.Error()))
	return true
}

var errNoAnswer = errors.New("no answer")

// confirm спрашивает y/N в терминале; -yes пропускает вопрос.
func confirm(yes bool, question string) bool {
	if yes {
		return true
	}
	fmt.Printf("%s [y/N]: ", question)
	answer, err := readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errNoAnswer
	}
	return line, nil
}
