package cmd

import (
	"fmt"

	"bankledger/app"

	"github.com/spf13/cobra"
)

// Variables to hold flag values for customer commands
var (
	custName     string
	custEmail    string
	custPhone    string
	custPassword string
)

// customerCmd represents the customer command group
var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage bank customers",
	Long:  `Provides commands to register customers and authenticate them.`,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new customer",
	Long: `Registers a new customer with the bank. The customer identity is
derived from the email address, so the same email cannot register twice.`,
	Run: func(cmd *cobra.Command, args []string) {
		if custEmail == "" {
			exitWithError(fmt.Errorf("email (--email) is required"))
		}
		if custPassword == "" {
			exitWithError(fmt.Errorf("password (--password) is required"))
		}

		id, err := bankService.RegisterCustomer(app.RegisterCustomerCommand{
			Name:     custName,
			Email:    custEmail,
			Phone:    custPhone,
			Password: custPassword,
		})
		if err != nil {
			exitWithError(fmt.Errorf("failed to register customer: %w", err))
		}
		fmt.Printf("Customer '%s' registered with id %s.\n", custEmail, id)
	},
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate a customer and issue a token",
	Long:  `Verifies the customer's credentials and prints a signed, time-limited token.`,
	Run: func(cmd *cobra.Command, args []string) {
		if custEmail == "" {
			exitWithError(fmt.Errorf("email (--email) is required"))
		}
		if custPassword == "" {
			exitWithError(fmt.Errorf("password (--password) is required"))
		}

		token, err := bankService.Login(custEmail, custPassword)
		if err != nil {
			exitWithError(fmt.Errorf("login failed: %w", err))
		}
		fmt.Printf("Login successful. Token:\n%s\n", token)
	},
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(registerCmd)
	customerCmd.AddCommand(loginCmd)

	registerCmd.Flags().StringVar(&custName, "name", "", "Customer full name")
	registerCmd.Flags().StringVar(&custEmail, "email", "", "Customer email (identity key)")
	registerCmd.Flags().StringVar(&custPhone, "phone", "", "Customer phone number")
	registerCmd.Flags().StringVar(&custPassword, "password", "", "Customer password")

	loginCmd.Flags().StringVar(&custEmail, "email", "", "Customer email")
	loginCmd.Flags().StringVar(&custPassword, "password", "", "Customer password")
}
