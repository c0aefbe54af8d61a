package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"bankledger/app"
	"bankledger/auth"
	"bankledger/config"
	"bankledger/rates"

	"github.com/spf13/cobra"
)

var (
	// Shared application service instance
	bankService *app.BankService
	rateSource  rates.Source
	cfg         config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bankledger",
	Short: "A CLI for the retail-banking ledger",
	Long: `bankledger is a command-line interface to the in-memory retail-banking
ledger. It manages customers and their accounts, performs deposits,
withdrawals, interest accrual and cross-currency transfers, and queries
balances, statements and analytics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg = config.Load()

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	table := rates.NewTable()
	rateSource = rates.NewStaticSource()
	bankService = app.NewBankService(table, issuer, cfg.BcryptCost)

	// Seed the recognized currencies and their rates so transfers work
	// out of the box.
	bankService.AddCurrency("USD", "US Dollar", "$")
	bankService.AddCurrency("EUR", "Euro", "€")
	bankService.AddCurrency("GBP", "Pound Sterling", "£")
	for _, base := range []string{"USD", "EUR", "GBP"} {
		if err := bankService.RefreshRates(context.Background(), rateSource, base, cfg.RateTimeout); err != nil {
			log.Printf("Warning: could not seed rates for base %s: %v", base, err)
		}
	}
}

// Helper function to print errors and stop the command.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
