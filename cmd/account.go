package cmd

import (
	"fmt"

	"bankledger/app"
	"bankledger/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Variables to hold flag values for account commands
var (
	acctCustomerID string
	acctKind       string
	acctCurrency   string
	acctBalanceStr string
	acctRateStr    string
	acctLimitStr   string
	acctNumber     string
)

// accountCmd represents the account command group
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage bank accounts",
	Long:  `Provides commands to open accounts and apply interest.`,
}

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a new account for a customer",
	Long: `Opens a savings or checking account denominated in a recognized
currency. Savings accounts take --interest-rate, checking accounts take
--overdraft-limit; the initial balance may be zero.`,
	Run: func(cmd *cobra.Command, args []string) {
		if acctCustomerID == "" {
			exitWithError(fmt.Errorf("customer id (--customer) is required"))
		}
		customerID, err := uuid.Parse(acctCustomerID)
		if err != nil {
			exitWithError(fmt.Errorf("invalid customer id %q: %w", acctCustomerID, err))
		}
		if acctCurrency == "" {
			exitWithError(fmt.Errorf("currency (--currency) is required"))
		}

		kind := shared.AccountKind(acctKind)
		if !kind.Valid() {
			exitWithError(fmt.Errorf("invalid account kind %q. Supported: %s, %s", acctKind, shared.Savings, shared.Checking))
		}

		balance, err := decimal.NewFromString(acctBalanceStr)
		if err != nil {
			exitWithError(fmt.Errorf("invalid balance format: %q. %v", acctBalanceStr, err))
		}
		rate, err := decimal.NewFromString(acctRateStr)
		if err != nil {
			exitWithError(fmt.Errorf("invalid interest rate format: %q. %v", acctRateStr, err))
		}
		limit, err := decimal.NewFromString(acctLimitStr)
		if err != nil {
			exitWithError(fmt.Errorf("invalid overdraft limit format: %q. %v", acctLimitStr, err))
		}

		number, err := bankService.OpenAccount(app.OpenAccountCommand{
			CustomerID:     customerID,
			Kind:           kind,
			CurrencyCode:   acctCurrency,
			InitialBalance: balance,
			InterestRate:   rate,
			OverdraftLimit: limit,
		})
		if err != nil {
			exitWithError(fmt.Errorf("failed to open account: %w", err))
		}
		fmt.Printf("Opened %s account '%s' (%s) with initial balance %s.\n", kind, number, acctCurrency, balance.StringFixed(2))
	},
}

// interestCmd represents the interest command
var interestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Apply interest to a savings account",
	Long:  `Credits balance * interest-rate to the account and appends an Interest transaction.`,
	Run: func(cmd *cobra.Command, args []string) {
		if acctNumber == "" {
			exitWithError(fmt.Errorf("account number (--number) is required"))
		}

		interest, err := bankService.ApplyInterest(app.ApplyInterestCommand{AccountNumber: acctNumber})
		if err != nil {
			exitWithError(fmt.Errorf("failed to apply interest: %w", err))
		}
		fmt.Printf("Interest of %s credited to account '%s'.\n", interest.StringFixed(2), acctNumber)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(openCmd)
	accountCmd.AddCommand(interestCmd)

	openCmd.Flags().StringVar(&acctCustomerID, "customer", "", "Customer id the account belongs to")
	openCmd.Flags().StringVar(&acctKind, "kind", string(shared.Savings), "Account kind: savings or checking")
	openCmd.Flags().StringVar(&acctCurrency, "currency", "", "Currency code, e.g. USD")
	openCmd.Flags().StringVar(&acctBalanceStr, "balance", "0", "Initial balance")
	openCmd.Flags().StringVar(&acctRateStr, "interest-rate", "0", "Interest rate for savings accounts, e.g. 0.01")
	openCmd.Flags().StringVar(&acctLimitStr, "overdraft-limit", "0", "Overdraft limit for checking accounts")

	interestCmd.Flags().StringVar(&acctNumber, "number", "", "Account number")
}
