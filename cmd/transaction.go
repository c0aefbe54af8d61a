package cmd

import (
	"context"
	"fmt"

	"bankledger/app"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Variables to hold flag values for transaction commands
var (
	txNumber    string
	txAmountStr string
	txFrom      string
	txTo        string
	txBase      string
)

// transactionCmd represents the transaction command group
var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Perform ledger transactions",
	Long:  `Provides commands for depositing, withdrawing, and transferring funds between accounts.`,
}

func parseAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		exitWithError(fmt.Errorf("invalid amount format: %q. %v", raw, err))
	}
	if !amount.IsPositive() {
		exitWithError(fmt.Errorf("amount must be positive: %s", amount))
	}
	return amount
}

// depositCmd represents the deposit command
var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit funds into an account",
	Long:  `Adds a positive amount to an account's balance in the account's own currency.`,
	Run: func(cmd *cobra.Command, args []string) {
		if txNumber == "" {
			exitWithError(fmt.Errorf("account number (--number) is required"))
		}
		amount := parseAmount(txAmountStr)

		err := bankService.Deposit(app.DepositCommand{AccountNumber: txNumber, Amount: amount})
		if err != nil {
			exitWithError(fmt.Errorf("failed to deposit funds: %w", err))
		}
		fmt.Printf("Successfully deposited %s into account '%s'.\n", amount.StringFixed(2), txNumber)
	},
}

// withdrawCmd represents the withdraw command
var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw funds from an account",
	Long:  `Removes a positive amount from an account's balance, respecting the account's withdrawal floor.`,
	Run: func(cmd *cobra.Command, args []string) {
		if txNumber == "" {
			exitWithError(fmt.Errorf("account number (--number) is required"))
		}
		amount := parseAmount(txAmountStr)

		err := bankService.Withdraw(app.WithdrawCommand{AccountNumber: txNumber, Amount: amount})
		if err != nil {
			exitWithError(fmt.Errorf("failed to withdraw funds: %w", err))
		}
		fmt.Printf("Successfully withdrew %s from account '%s'.\n", amount.StringFixed(2), txNumber)
	},
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer funds between two accounts",
	Long: `Atomically moves funds between two accounts. When the accounts are
denominated in different currencies the amount is converted at the
current directional exchange rate; the withdrawn amount is always in
the source account's currency.`,
	Run: func(cmd *cobra.Command, args []string) {
		if txFrom == "" || txTo == "" {
			exitWithError(fmt.Errorf("source (--from) and destination (--to) account numbers are required"))
		}
		amount := parseAmount(txAmountStr)

		err := bankService.Transfer(app.TransferCommand{FromAccount: txFrom, ToAccount: txTo, Amount: amount})
		if err != nil {
			exitWithError(fmt.Errorf("failed to transfer funds: %w", err))
		}
		fmt.Printf("Successfully transferred %s from '%s' to '%s'.\n", amount.StringFixed(2), txFrom, txTo)
	},
}

// refreshRatesCmd represents the refresh-rates command
var refreshRatesCmd = &cobra.Command{
	Use:   "refresh-rates",
	Short: "Refresh exchange rates for a base currency",
	Long:  `Replaces the exchange-rate table entries for one base currency from the rate source.`,
	Run: func(cmd *cobra.Command, args []string) {
		if txBase == "" {
			exitWithError(fmt.Errorf("base currency (--base) is required"))
		}
		err := bankService.RefreshRates(context.Background(), rateSource, txBase, cfg.RateTimeout)
		if err != nil {
			exitWithError(fmt.Errorf("failed to refresh rates: %w", err))
		}
		fmt.Printf("Exchange rates refreshed for base %s.\n", txBase)
	},
}

func init() {
	rootCmd.AddCommand(transactionCmd)
	transactionCmd.AddCommand(depositCmd)
	transactionCmd.AddCommand(withdrawCmd)
	transactionCmd.AddCommand(transferCmd)
	transactionCmd.AddCommand(refreshRatesCmd)

	depositCmd.Flags().StringVar(&txNumber, "number", "", "Account number")
	depositCmd.Flags().StringVarP(&txAmountStr, "amount", "a", "", "Amount to deposit")

	withdrawCmd.Flags().StringVar(&txNumber, "number", "", "Account number")
	withdrawCmd.Flags().StringVarP(&txAmountStr, "amount", "a", "", "Amount to withdraw")

	transferCmd.Flags().StringVar(&txFrom, "from", "", "Source account number")
	transferCmd.Flags().StringVar(&txTo, "to", "", "Destination account number")
	transferCmd.Flags().StringVarP(&txAmountStr, "amount", "a", "", "Amount to transfer (in the source currency)")

	refreshRatesCmd.Flags().StringVar(&txBase, "base", "", "Base currency code, e.g. USD")
}
