package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/board"
	"github.com/vagalivre/vagalivre/internal/resume"
)

var applyCmd = &cobra.Command{
	Use:     "apply <job-id>",
	Short:   "Apply to a job",
	Long:    "Submit an application with your contact details and a resume, uploaded or pasted, as the job's policy requires.",
	Example: `  vagalivre apply job-1 --name "Ana Silva" --email ana@example.com --phone "11 99999-0000" --resume-file cv.pdf
  vagalivre apply job-3 --name "Ana Silva" --email ana@example.com --phone "11 99999-0000" --resume-text "Experiência: ..."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		input := board.ApplicationInput{}
		input.FullName, _ = cmd.Flags().GetString("name")
		input.Email, _ = cmd.Flags().GetString("email")
		input.Phone, _ = cmd.Flags().GetString("phone")
		input.ResumeText, _ = cmd.Flags().GetString("resume-text")

		if path, _ := cmd.Flags().GetString("resume-file"); path != "" {
			file, err := resume.EncodeFile(path)
			if err != nil {
				return fmt.Errorf("prepare resume: %w", err)
			}
			input.ResumeFile = file
		}

		err = application.Board.AddApplication(cmd.Context(), args[0], input)
		switch {
		case err == nil:
			cmd.Println("✓ Application submitted. Boa sorte!")
		case errors.Is(err, board.ErrJobNotFound):
			cmd.Printf("No job with id %s\n", args[0])
		case errors.Is(err, board.ErrResumeFileRequired),
			errors.Is(err, board.ErrResumeTextRequired),
			errors.Is(err, board.ErrResumeRequired):
			cmd.Println(errorStyle.Render(err.Error()))
		default:
			return fmt.Errorf("submit application: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().String("name", "", "Your full name")
	applyCmd.Flags().String("email", "", "Your email")
	applyCmd.Flags().String("phone", "", "Your phone number")
	applyCmd.Flags().String("resume-file", "", "Path to a resume file")
	applyCmd.Flags().String("resume-text", "", "Resume as plain text")
}
