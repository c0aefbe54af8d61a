package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"bankledger/app"
	"bankledger/auth"
	"bankledger/cmd"
	"bankledger/config"
	"bankledger/domain"
	"bankledger/rates"
	"bankledger/shared"
)

func main() {
	// With arguments, run the CLI; bare invocation runs the scripted
	// simulation below.
	if len(os.Args) > 1 {
		cmd.Execute()
		return
	}

	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("Starting Retail Banking Ledger...")

	cfg := config.Load()
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to build token issuer: %v", err)
	}
	table := rates.NewTable()
	source := rates.NewStaticSource()
	bank := app.NewBankService(table, issuer, cfg.BcryptCost)

	fmt.Println("\n--- Simulating Operations ---")

	fmt.Println("\n[Step 1] Registering currencies and refreshing rates...")
	bank.AddCurrency("USD", "US Dollar", "$")
	bank.AddCurrency("EUR", "Euro", "€")
	bank.AddCurrency("GBP", "Pound Sterling", "£")
	for _, base := range []string{"USD", "EUR", "GBP"} {
		if err := bank.RefreshRates(context.Background(), source, base, cfg.RateTimeout); err != nil {
			log.Fatalf("Failed to refresh rates for base %s: %v", base, err)
		}
	}

	fmt.Println("\n[Step 2] Registering a customer...")
	aliceID, err := bank.RegisterCustomer(app.RegisterCustomerCommand{
		Name:     "Alice Example",
		Email:    "alice@example.com",
		Phone:    "+1-555-0100",
		Password: "correct horse battery staple",
	})
	if err != nil {
		log.Fatalf("Failed to register Alice: %v", err)
	}
	fmt.Printf(" -> Alice's customer ID: %s\n", aliceID)

	fmt.Println("\n[Step 2b] Testing duplicate registration (should fail)...")
	_, err = bank.RegisterCustomer(app.RegisterCustomerCommand{Email: "alice@example.com", Password: "another"})
	if errors.Is(err, domain.ErrCustomerExists) {
		fmt.Printf(" -> Duplicate registration failed as expected: %v\n", err)
	} else {
		log.Fatalf("Expected ErrCustomerExists, got: %v", err)
	}

	fmt.Println("\n[Step 3] Opening accounts...")
	savingsNum, err := bank.OpenAccount(app.OpenAccountCommand{
		CustomerID:     aliceID,
		Kind:           shared.Savings,
		CurrencyCode:   "USD",
		InitialBalance: decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromFloat(0.01),
	})
	if err != nil {
		log.Fatalf("Failed to open savings account: %v", err)
	}
	fmt.Printf(" -> Savings account (USD): %s\n", savingsNum)

	checkingNum, err := bank.OpenAccount(app.OpenAccountCommand{
		CustomerID:     aliceID,
		Kind:           shared.Checking,
		CurrencyCode:   "EUR",
		InitialBalance: decimal.NewFromInt(500),
		OverdraftLimit: decimal.NewFromInt(100),
	})
	if err != nil {
		log.Fatalf("Failed to open checking account: %v", err)
	}
	fmt.Printf(" -> Checking account (EUR): %s\n", checkingNum)

	fmt.Println("\n[Step 4] Deposit 500 USD into savings...")
	err = bank.Deposit(app.DepositCommand{AccountNumber: savingsNum, Amount: decimal.NewFromInt(500)})
	handleOperationError("Deposit to savings", err)

	fmt.Println("\n[Step 5] Withdraw 200 EUR from checking (within overdraft)...")
	err = bank.Withdraw(app.WithdrawCommand{AccountNumber: checkingNum, Amount: decimal.NewFromInt(200)})
	handleOperationError("Withdrawal from checking", err)

	fmt.Println("\n[Step 5b] Testing overdraft breach (should fail)...")
	err = bank.Withdraw(app.WithdrawCommand{AccountNumber: checkingNum, Amount: decimal.NewFromInt(500)})
	if errors.Is(err, domain.ErrInsufficientFunds) {
		fmt.Printf(" -> Withdrawal failed as expected: %v\n", err)
	} else {
		log.Fatalf("Expected ErrInsufficientFunds, got: %v", err)
	}

	fmt.Println("\n[Step 6] Applying 1% interest to savings...")
	interest, err := bank.ApplyInterest(app.ApplyInterestCommand{AccountNumber: savingsNum})
	handleOperationError("Interest accrual", err)
	fmt.Printf(" -> Interest credited: %s USD\n", interest.StringFixed(2))

	fmt.Println("\n[Step 7] Transferring 300 USD from savings to checking (USD -> EUR)...")
	err = bank.Transfer(app.TransferCommand{FromAccount: savingsNum, ToAccount: checkingNum, Amount: decimal.NewFromInt(300)})
	handleOperationError("Cross-currency transfer", err)

	fmt.Println("\n[Step 8] Final balances and statements...")
	displayAccount(bank, savingsNum)
	displayAccount(bank, checkingNum)

	fmt.Println("\n[Step 9] Customer analytics...")
	analytics, err := bank.GenerateAnalytics(app.AnalyticsQuery{CustomerID: aliceID})
	if err != nil {
		log.Fatalf("Failed to compute analytics: %v", err)
	}
	fmt.Printf(" -> Total balance (mixed currencies, unconverted): %s\n", analytics.TotalBalance.StringFixed(2))
	fmt.Printf(" -> Transactions: %d, average: %s\n", analytics.TransactionCount, analytics.AverageTransactionAmount.StringFixed(2))

	converted, err := bank.GenerateConvertedAnalytics(app.AnalyticsQuery{CustomerID: aliceID}, "USD")
	if err != nil {
		log.Fatalf("Failed to compute converted analytics: %v", err)
	}
	fmt.Printf(" -> Total balance in USD: %s\n", converted.TotalBalance.StringFixed(2))

	fmt.Println("\n[Step 10] Login and token verification...")
	token, err := bank.Login("alice@example.com", "correct horse battery staple")
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	verifiedID, err := bank.Authenticate(token)
	if err != nil {
		log.Fatalf("Token verification failed: %v", err)
	}
	fmt.Printf(" -> Token verified for customer %s\n", verifiedID)

	_, err = bank.Login("alice@example.com", "wrong password")
	if errors.Is(err, domain.ErrAuthenticationFailed) {
		fmt.Printf(" -> Bad password rejected as expected: %v\n", err)
	} else {
		log.Fatalf("Expected ErrAuthenticationFailed, got: %v", err)
	}

	fmt.Println("\n--- Simulation Complete ---")
}

func handleOperationError(operationName string, err error) {
	if err != nil {
		log.Printf(" -> ERROR during operation '%s': %v", operationName, err)
	} else {
		fmt.Printf(" -> Operation '%s' successful.\n", operationName)
	}
}

func displayAccount(bank *app.BankService, number string) {
	statement, err := bank.Statement(number)
	if err != nil {
		log.Printf("Error getting statement for %s: %v", number, err)
		return
	}
	fmt.Print(statement)
}
