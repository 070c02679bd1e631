package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/board"
	"github.com/vagalivre/vagalivre/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse jobs interactively",
	Long:  "Browse the job listings interactively: search, filter by type, and open a listing to see its details.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		runBrowser(cmd, application.Board)
		return nil
	},
}

func runBrowser(cmd *cobra.Command, b board.Board) {
	b.SetPage(models.PageHome)
	reader := bufio.NewReader(os.Stdin)
	search := ""
	var jobType models.JobType

	for {
		jobs := board.FilterJobs(b.Jobs(), search, "", jobType)

		fmt.Println(titleStyle.Render("VagaLivre"))
		if search != "" || jobType != "" {
			fmt.Printf("Filtro: %q tipo=%s\n", search, jobType)
		}
		fmt.Println("Enter a job number for details, '/term' to search, 't type' to filter, 'c' to clear, 'q' to quit")
		fmt.Println()

		if len(jobs) == 0 {
			fmt.Println("Nenhuma vaga encontrada.")
		}
		for i, job := range jobs {
			company := job.CompanyName
			if company == "" {
				company = "(não informado)"
			}
			fmt.Printf("%d. %s — %s (%s)\n", i+1, job.Title, company, job.Location)
		}

		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch {
		case input == "q" || input == "Q":
			return
		case input == "c":
			search = ""
			jobType = ""
		case strings.HasPrefix(input, "/"):
			search = strings.TrimPrefix(input, "/")
		case strings.HasPrefix(input, "t "):
			jobType = models.JobType(strings.TrimSpace(strings.TrimPrefix(input, "t ")))
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(jobs) {
				fmt.Println("Invalid selection")
				continue
			}
			printJob(cmd, jobs[n-1])
			fmt.Print("\nPress Enter to go back")
			reader.ReadString('\n')
		}
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
