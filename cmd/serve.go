package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpLayer "debt-planner/http"
	"debt-planner/logging"
	"debt-planner/service"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	repaymentService := service.NewRepaymentService(a.debts, a.cache, a.explainer, logger, a.settings)
	debtService := service.NewDebtService(a.debts, logger)
	loanService := service.NewLoanService(a.cache, logger)
	projectionService := service.NewProjectionService(a.debts, logger, a.settings)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Repayment:  httpLayer.NewRepaymentHandler(repaymentService, logger),
		Debts:      httpLayer.NewDebtHandler(debtService, logger),
		Loan:       httpLayer.NewLoanHandler(loanService, logger),
		Projection: httpLayer.NewProjectionHandler(projectionService, logger),
	}, rateLimiter, logger)

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", logging.F(logging.FieldAddr, addr),
			logging.F("ai_enabled", a.explainer.Enabled()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		logger.WithError(err).Error("Error starting server")
		return err
	case <-quit:
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Error during server shutdown")
		return err
	}

	logger.Info("Server exited")
	return nil
}
