package cmd

import (
	"fmt"

	"bankledger/app"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Variables for query flags
var (
	queryNumber     string
	queryCustomerID string
	queryConvertTo  string
)

// queryCmd represents the query command group
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query account and customer information",
	Long:  `Provides commands to query balances, statements, and customer analytics.`,
}

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Get an account's current balance",
	Run: func(cmd *cobra.Command, args []string) {
		if queryNumber == "" {
			exitWithError(fmt.Errorf("account number (--number) is required"))
		}

		account, err := bankService.Account(queryNumber)
		if err != nil {
			exitWithError(fmt.Errorf("failed to get balance: %w", err))
		}
		fmt.Printf("Account '%s' (%s, %s): %s %s\n",
			account.Number(), account.Kind(), account.Currency().Code,
			account.Balance().StringFixed(2), account.Currency().Code)
	},
}

// statementCmd represents the statement command
var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Print an account's statement",
	Long:  `Renders the account's full transaction ledger in chronological order.`,
	Run: func(cmd *cobra.Command, args []string) {
		if queryNumber == "" {
			exitWithError(fmt.Errorf("account number (--number) is required"))
		}

		statement, err := bankService.Statement(queryNumber)
		if err != nil {
			exitWithError(fmt.Errorf("failed to get statement: %w", err))
		}
		fmt.Print(statement)
	},
}

// analyticsCmd represents the analytics command
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Compute aggregate analytics for a customer",
	Long: `Sums balances and transaction counts across all of a customer's
accounts. Without --convert the totals mix currencies without
conversion; with --convert every balance is converted to the target
currency first.`,
	Run: func(cmd *cobra.Command, args []string) {
		if queryCustomerID == "" {
			exitWithError(fmt.Errorf("customer id (--customer) is required"))
		}
		customerID, err := uuid.Parse(queryCustomerID)
		if err != nil {
			exitWithError(fmt.Errorf("invalid customer id %q: %w", queryCustomerID, err))
		}

		if queryConvertTo != "" {
			analytics, err := bankService.GenerateConvertedAnalytics(app.AnalyticsQuery{CustomerID: customerID}, queryConvertTo)
			if err != nil {
				exitWithError(fmt.Errorf("failed to compute analytics: %w", err))
			}
			fmt.Printf("Analytics for customer %s (in %s):\n", customerID, analytics.Currency.Code)
			fmt.Printf("  Total balance:       %s %s\n", analytics.TotalBalance.StringFixed(2), analytics.Currency.Code)
			fmt.Printf("  Transactions:        %d\n", analytics.TransactionCount)
			fmt.Printf("  Average transaction: %s %s\n", analytics.AverageTransactionAmount.StringFixed(2), analytics.Currency.Code)
			return
		}

		analytics, err := bankService.GenerateAnalytics(app.AnalyticsQuery{CustomerID: customerID})
		if err != nil {
			exitWithError(fmt.Errorf("failed to compute analytics: %w", err))
		}
		fmt.Printf("Analytics for customer %s (mixed currencies, unconverted):\n", customerID)
		fmt.Printf("  Total balance:       %s\n", analytics.TotalBalance.StringFixed(2))
		fmt.Printf("  Transactions:        %d\n", analytics.TransactionCount)
		fmt.Printf("  Average transaction: %s\n", analytics.AverageTransactionAmount.StringFixed(2))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(balanceCmd)
	queryCmd.AddCommand(statementCmd)
	queryCmd.AddCommand(analyticsCmd)

	balanceCmd.Flags().StringVar(&queryNumber, "number", "", "Account number")
	statementCmd.Flags().StringVar(&queryNumber, "number", "", "Account number")
	analyticsCmd.Flags().StringVar(&queryCustomerID, "customer", "", "Customer id")
	analyticsCmd.Flags().StringVar(&queryConvertTo, "convert", "", "Optional target currency code for conversion-aware analytics")
}
