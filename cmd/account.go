package cmd

import (
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in as an employer",
	Example: `  vagalivre login --email rh@empresa.com.br --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return cmd.Help()
		}

		if !application.Board.Login(cmd.Context(), email, password) {
			cmd.Println(errorStyle.Render("Invalid email or password."))
			return nil
		}

		session := application.Board.Session()
		cmd.Printf("✓ Logged in as %s\n", session.CompanyName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current employer",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		application.Board.Logout(cmd.Context())
		cmd.Println("✓ Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Register a new employer account",
	Example: `  vagalivre register --company "Tech Solutions" --email rh@techsolutions.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		company, _ := cmd.Flags().GetString("company")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if company == "" || email == "" || password == "" {
			return cmd.Help()
		}

		if !application.Board.Register(cmd.Context(), company, email, password) {
			cmd.Println(errorStyle.Render("Registration failed: email may already be in use."))
			return nil
		}

		cmd.Printf("✓ Registered and logged in as %s\n", company)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in employer",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		session := application.Board.Session()
		if session == nil {
			cmd.Println("Not logged in.")
			return nil
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Company:"), session.CompanyName)
		cmd.Printf("%s %s\n", labelStyle.Render("Email:"), session.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("email", "", "Employer email")
	loginCmd.Flags().String("password", "", "Employer password")

	registerCmd.Flags().String("company", "", "Company name")
	registerCmd.Flags().String("email", "", "Employer email")
	registerCmd.Flags().String("password", "", "Employer password")
}
