package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/board"
	"github.com/vagalivre/vagalivre/pkg/models"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Leave or read feedback about the platform",
}

var addFeedbackCmd = &cobra.Command{
	Use:     "add",
	Short:   "Leave feedback",
	Example: `  vagalivre feedback add --author "Ana" --kind sugestao --message "Seria ótimo ter alertas de vagas"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		author, _ := cmd.Flags().GetString("author")
		kind, _ := cmd.Flags().GetString("kind")
		message, _ := cmd.Flags().GetString("message")

		input := board.FeedbackInput{
			Author:  author,
			Kind:    models.FeedbackKind(kind),
			Message: message,
		}
		if err := application.Board.AddFeedback(cmd.Context(), input); err != nil {
			return fmt.Errorf("save feedback: %w", err)
		}
		cmd.Println("✓ Obrigado pelo feedback!")
		return nil
	},
}

var listFeedbackCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		entries := application.Board.Feedbacks()
		if len(entries) == 0 {
			cmd.Println("No feedback yet.")
			return nil
		}

		cmd.Println(titleStyle.Render("Feedback"))
		for _, fb := range entries {
			cmd.Printf("• [%s] %s — %s\n", fb.Kind, fb.Author, fb.Date)
			cmd.Printf("  %s\n", fb.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(addFeedbackCmd)
	feedbackCmd.AddCommand(listFeedbackCmd)

	addFeedbackCmd.Flags().String("author", "", "Your name")
	addFeedbackCmd.Flags().String("kind", "sugestao", "Kind: elogio, critica, duvida, sugestao")
	addFeedbackCmd.Flags().String("message", "", "Your message")
}
