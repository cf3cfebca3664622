package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/openapi-orders/src/cmd/ticket/run"
	"github.com/jiaming2012/openapi-orders/src/config"
	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/normalizer"
	"github.com/jiaming2012/openapi-orders/src/services"
	"github.com/jiaming2012/openapi-orders/src/utils"
	"github.com/jiaming2012/openapi-orders/src/validator"
)

var rootCmd = &cobra.Command{
	Use:   "go run src/cmd/ticket/main.go",
	Short: "Build, validate and place orders on the trading OpenAPI",
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize --ticket ticket.json --order-type StopLimit",
	Short: "Reshape a ticket for an order type and duration without calling the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketPath, _ := cmd.Flags().GetString("ticket")
		orderType, _ := cmd.Flags().GetString("order-type")
		durationType, _ := cmd.Flags().GetString("duration-type")
		limitPrice, _ := cmd.Flags().GetFloat64("limit-price")

		ticket := config.DefaultTicketTemplate().Ticket
		if ticketPath != "" {
			var err error
			if ticket, err = run.ReadTicket(ticketPath); err != nil {
				return err
			}
		}

		n := normalizer.NewNormalizer(normalizer.DefaultPlaceholders(), utils.RealClock{})
		if limitPrice > 0 {
			n = n.WithLimitPrice(limitPrice)
		}

		var err error
		if orderType != "" {
			if ticket, err = n.NormalizeForOrderType(ticket, models.OrderType(orderType)); err != nil {
				return err
			}
		}

		if durationType != "" {
			if ticket, err = n.NormalizeForDuration(ticket, models.DurationType(durationType)); err != nil {
				return err
			}
		}

		return run.PrintTicket(cmd.OutOrStdout(), ticket)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate --ticket ticket.json --conditions details.json --accounts accounts.json",
	Short: "Check a ticket against saved instrument conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketPath, _ := cmd.Flags().GetString("ticket")
		conditionsPath, _ := cmd.Flags().GetString("conditions")
		accountsPath, _ := cmd.Flags().GetString("accounts")
		outDir, _ := cmd.Flags().GetString("outDir")
		fallbackPrice, _ := cmd.Flags().GetFloat64("fallback-price")

		ticket, err := run.ReadTicket(ticketPath)
		if err != nil {
			return err
		}

		conditions, err := run.ReadConditions(conditionsPath)
		if err != nil {
			return err
		}

		accounts, err := run.ReadAccounts(accountsPath)
		if err != nil {
			return err
		}

		var directory validator.AccountDirectory
		if accounts != nil {
			directory = accounts
		}

		findings := validator.NewValidator(directory, validator.WithFallbackPrice(fallbackPrice)).Validate(ticket, conditions)
		return reportFindings(cmd, findings, outDir)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check --order-type Limit",
	Short: "Fetch the instrument conditions and check the ticket against them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			if apply, _ := cmd.Flags().GetBool("apply-supported"); apply {
				ticket, changed, err := session.ApplySupportedOrderType(ctx)
				if err != nil {
					return err
				}

				if changed {
					log.Infof("order type changed to %s", ticket.OrderType)
				}
			}

			findings, err := session.CheckConditions(ctx)
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("outDir")
			return reportFindings(cmd, findings, outDir)
		})
	},
}

var precheckCmd = &cobra.Command{
	Use:   "precheck",
	Short: "Validate the order on the platform without placing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			result, err := session.PreCheck(ctx)
			if result != nil {
				run.PrintPreCheck(cmd.OutOrStdout(), result)
			}

			return err
		})
	},
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Place the order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			resp, err := session.Place(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OrderId: %s\n", resp.OrderId)
			return nil
		})
	},
}

var modifyCmd = &cobra.Command{
	Use:   "modify --order-id 76289286",
	Short: "Replace an order with the current ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			orderId, _ := cmd.Flags().GetString("order-id")
			session.ResumeOrder(orderId)

			resp, err := session.ModifyLast(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OrderId: %s\n", resp.OrderId)
			return nil
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel --order-id 76289286",
	Short: "Cancel an order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			orderId, _ := cmd.Flags().GetString("order-id")
			session.ResumeOrder(orderId)

			resp, err := session.CancelLast(ctx)
			if err != nil {
				return err
			}

			for _, o := range resp.Orders {
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled: %s\n", o.OrderId)
			}

			return nil
		})
	},
}

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show the costs of the order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, session *services.TicketSession) error {
			costs, err := session.Costs(ctx)
			if err != nil {
				return err
			}

			run.PrintCosts(cmd.OutOrStdout(), costs)
			return nil
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ticket API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}

		defer func() {
			if err := env.Shutdown(context.Background()); err != nil {
				log.Errorf("failed to shutdown telemetry: %v", err)
			}
		}()

		useRequestID, _ := cmd.Flags().GetBool("request-id")
		return run.Serve(ctx, env, useRequestID)
	},
}

func setupEnv(cmd *cobra.Command) (*run.Env, error) {
	goEnv, _ := cmd.Flags().GetString("go-env")
	envDir, _ := cmd.Flags().GetString("env-dir")
	templatePath, _ := cmd.Flags().GetString("template")

	return run.Setup(cmd.Context(), envDir, goEnv, templatePath)
}

// withSession builds a session from the template and the ticket flags and
// passes it to fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, session *services.TicketSession) error) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if err := env.Shutdown(context.Background()); err != nil {
			log.Errorf("failed to shutdown telemetry: %v", err)
		}
	}()

	useRequestID, _ := cmd.Flags().GetBool("request-id")

	session, err := env.NewSession(env.Template, useRequestID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	uic, _ := cmd.Flags().GetInt("uic")
	assetType, _ := cmd.Flags().GetString("asset-type")
	if uic > 0 {
		session.SetInstrument(uic, models.AssetType(assetType))
	}

	if amount, _ := cmd.Flags().GetFloat64("amount"); amount > 0 {
		if _, err := session.SetAmount(amount); err != nil {
			return err
		}
	}

	if buySell, _ := cmd.Flags().GetString("buy-sell"); buySell != "" {
		if _, err := session.SetBuySell(models.BuySell(buySell)); err != nil {
			return err
		}
	}

	if orderType, _ := cmd.Flags().GetString("order-type"); orderType != "" {
		if _, err := session.SelectOrderType(ctx, models.OrderType(orderType)); err != nil {
			return err
		}
	}

	if durationType, _ := cmd.Flags().GetString("duration-type"); durationType != "" {
		if _, err := session.SelectOrderDuration(models.DurationType(durationType)); err != nil {
			return err
		}
	}

	if err := fn(ctx, session); err != nil {
		return err
	}

	session.Bus().WaitAsync()
	return nil
}

func reportFindings(cmd *cobra.Command, findings models.Findings, outDir string) error {
	run.PrintFindings(cmd.OutOrStdout(), findings)

	if outDir != "" {
		csvPath, err := run.ExportFindings(outDir, findings, "findings")
		if err != nil {
			return fmt.Errorf("failed to export to CSV: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "CSV file written to: ", csvPath)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return findings.Err()
	}

	return nil
}

func main() {
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("env-dir", "", "The directory of the .env files.")
	rootCmd.PersistentFlags().String("template", "", "The ticket template yaml. Defaults to $TICKET_TEMPLATE.")

	for _, cmd := range []*cobra.Command{checkCmd, precheckCmd, placeCmd, modifyCmd, cancelCmd, costsCmd} {
		cmd.Flags().Int("uic", 0, "The instrument id.")
		cmd.Flags().String("asset-type", "", "The asset type of the instrument.")
		cmd.Flags().Float64("amount", 0, "The order amount.")
		cmd.Flags().String("buy-sell", "", "Buy or Sell.")
		cmd.Flags().String("order-type", "", "The order type, e.g. Limit or TrailingStopIfTraded.")
		cmd.Flags().String("duration-type", "", "The order duration, e.g. DayOrder or GoodTillDate.")
		cmd.Flags().Bool("request-id", false, "Send the ExternalReference as X-Request-ID.")
	}

	serveCmd.Flags().Bool("request-id", false, "Send the ExternalReference as X-Request-ID.")

	for _, cmd := range []*cobra.Command{validateCmd, checkCmd} {
		cmd.Flags().String("outDir", "", "The directory to write the findings csv to.")
		cmd.Flags().Bool("strict", false, "Exit with an error when there are findings.")
	}

	checkCmd.Flags().Bool("apply-supported", false, "Switch to a supported order type first.")

	normalizeCmd.Flags().String("ticket", "", "The ticket json. Defaults to the built-in template.")
	normalizeCmd.Flags().String("order-type", "", "The order type to normalize for.")
	normalizeCmd.Flags().String("duration-type", "", "The duration to normalize for.")
	normalizeCmd.Flags().Float64("limit-price", 0, "The price of a limit order.")

	validateCmd.Flags().String("ticket", "", "The ticket json.")
	validateCmd.Flags().String("conditions", "", "The instrument details json.")
	validateCmd.Flags().String("accounts", "", "The accounts json.")
	validateCmd.Flags().Float64("fallback-price", normalizer.FictivePrice, "The price used for the order value when the ticket has none.")
	validateCmd.MarkFlagRequired("ticket")
	validateCmd.MarkFlagRequired("conditions")

	modifyCmd.Flags().String("order-id", "", "The order to modify.")
	modifyCmd.MarkFlagRequired("order-id")
	cancelCmd.Flags().String("order-id", "", "The order to cancel.")
	cancelCmd.MarkFlagRequired("order-id")

	rootCmd.AddCommand(normalizeCmd, validateCmd, checkCmd, precheckCmd, placeCmd, modifyCmd, cancelCmd, costsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		var diagnostic *models.Diagnostic
		if errors.As(err, &diagnostic) {
			log.Errorf("diagnostic: %v", diagnostic)
		}

		os.Exit(1)
	}
}
