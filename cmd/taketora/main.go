package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taketora/internal/cache"
	"taketora/internal/cms"
	"taketora/internal/config"
	"taketora/internal/currency"
	httpserver "taketora/internal/http"
	applog "taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/seo"
	"taketora/internal/services"
	"taketora/internal/shipping"
	"taketora/internal/validate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taketora",
		Short:         "Taketora catalog site",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	serve := serveCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, sitemapCmd(), quoteCmd())
	return root
}

// stack is everything the commands share.
type stack struct {
	cfg     config.Config
	catalog *services.CatalogService
	blog    *services.BlogService
	closers []io.Closer
}

func (s *stack) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

func build(ctx context.Context, cfg config.Config) (*stack, error) {
	lg := applog.New(nil)
	hc := &http.Client{Timeout: 10 * time.Second}
	st := &stack{cfg: cfg}

	var store services.ProductStore
	switch cfg.ProductSource {
	case "supabase":
		r, err := repos.NewSupabaseRepo(cfg.SupabaseURL, cfg.SupabaseAnonKey, hc, lg)
		if err != nil {
			return nil, err
		}
		store = r
	default:
		db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db)
		store = repos.NewProductRepo(db, lg)
	}

	var posts cache.Store = cache.NewMemory()
	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("[warn] redis %s unavailable, using in-process cache: %v", cfg.RedisAddr, err)
		} else {
			posts = rc
			st.closers = append(st.closers, rc)
		}
	}

	st.catalog = services.NewCatalogService(store, lg)
	st.blog = services.NewBlogService(cms.New(cfg.CMSEndpoint, hc), posts, lg)
	st.blog.PostTTL = cfg.CMSRevalidate
	return st, nil
}

func setupLogFile(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			setupLogFile(cfg.LogFile)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := build(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			app := httpserver.New(httpserver.Options{
				Config:    cfg,
				Catalog:   st.catalog,
				Blog:      st.blog,
				AccessLog: true,
			})
			go func() {
				<-ctx.Done()
				_ = app.ShutdownWithTimeout(5 * time.Second)
			}()
			log.Printf("[http] listening on :%s (%s)", cfg.Port, cfg.Env)
			return app.Listen(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func sitemapCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			st, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			b, err := seo.Sitemap(cfg.BaseURL, time.Now(), st.catalog.SitemapProducts(ctx), st.blog.Slugs(ctx))
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file")
	return cmd
}

func quoteCmd() *cobra.Command {
	var (
		amount  int64
		weight  int
		country string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print currency conversions and shipping options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if amount < 0 {
				return fmt.Errorf("invalid amount %d", amount)
			}
			w, ok := validate.Weight(strconv.Itoa(weight))
			if !ok {
				return fmt.Errorf("weight must be 0-%d grams", validate.MaxWeight)
			}
			code, ok := validate.Country(country)
			if !ok {
				return fmt.Errorf("unsupported country %q", country)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s JPY\n", strconv.FormatInt(amount, 10))
			for _, q := range currency.Quote(amount) {
				fmt.Fprintf(out, "  %s\t%s\n", q.Code, q.Display)
			}
			fmt.Fprintf(out, "shipping %dg to %s\n", w, code)
			for _, o := range shipping.Calculate(w, code) {
				fmt.Fprintf(out, "  %s\t¥%d\t%s\n", o.Name, o.Price, o.Description)
			}
			return nil
		},
	}
	cmd.Flags().Int64VarP(&amount, "amount", "a", 0, "price in JPY")
	cmd.Flags().IntVarP(&weight, "weight", "w", 0, "parcel weight in grams")
	cmd.Flags().StringVarP(&country, "country", "c", "US", "destination country code")
	return cmd
}
