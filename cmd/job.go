package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/board"
	"github.com/vagalivre/vagalivre/pkg/models"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
	Long:  "Post, list, view, edit, and remove job postings",
}

var postJobCmd = &cobra.Command{
	Use:     "post",
	Short:   "Post a new job (requires login)",
	Example: `  vagalivre job post --title "Auxiliar Administrativo" --location "São Paulo, SP" --type emprego
  vagalivre job post --title "Estágio em Marketing" --location "Remoto" --type estagio --resume text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		input := jobInputFromFlags(cmd)
		if err := application.Board.AddJob(cmd.Context(), input); err != nil {
			if errors.Is(err, board.ErrNotLoggedIn) {
				cmd.Println(errorStyle.Render("You must be logged in as an employer to post a job."))
				return nil
			}
			// Creation failures must reach the employer: a silent miss
			// would leave them believing the post went live
			cmd.Println(errorStyle.Render(fmt.Sprintf("Job was NOT posted: %v", err)))
			return nil
		}

		cmd.Printf("✓ Job posted: %s\n", input.Title)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		location, _ := cmd.Flags().GetString("location")
		jobType, _ := cmd.Flags().GetString("type")

		jobs := board.FilterJobs(application.Board.Jobs(), search, location, models.JobType(jobType))
		if len(jobs) == 0 {
			cmd.Println("No jobs found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Job Listings"))
		for _, job := range jobs {
			company := job.CompanyName
			if company == "" {
				company = "(não informado)"
			}
			cmd.Printf("• %s — %s\n", job.Title, company)
			cmd.Printf("  %s %s | %s %s | %s %s\n",
				labelStyle.Render("ID:"), job.ID,
				labelStyle.Render("Local:"), job.Location,
				labelStyle.Render("Tipo:"), job.JobType)
		}
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job posting in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		for _, job := range application.Board.Jobs() {
			if job.ID != args[0] {
				continue
			}
			printJob(cmd, job)

			// Applications are visible to the owning employer only
			session := application.Board.Session()
			if session != nil && session.ID == job.EmployerID {
				cmd.Printf("\n%s %d\n", labelStyle.Render("Candidaturas:"), len(job.Applications))
				for _, a := range job.Applications {
					cmd.Printf("  • %s <%s> %s — %s\n", a.FullName, a.Email, a.Phone, a.Date)
				}
			}
			return nil
		}
		cmd.Printf("No job with id %s\n", args[0])
		return nil
	},
}

var editJobCmd = &cobra.Command{
	Use:   "edit <job-id>",
	Short: "Edit a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		input := jobInputFromFlags(cmd)
		if err := application.Board.UpdateJob(cmd.Context(), args[0], input); err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		cmd.Printf("✓ Job %s updated\n", args[0])
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		application.Board.DeleteJob(cmd.Context(), args[0])
		cmd.Printf("✓ Job %s removed\n", args[0])
		return nil
	},
}

// printJob renders the full job card
func printJob(cmd *cobra.Command, job models.Job) {
	cmd.Println(titleStyle.Render(job.Title))
	if job.CompanyName != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Empresa:"), job.CompanyName)
	}
	cmd.Printf("%s %s\n", labelStyle.Render("Tipo:"), job.JobType)
	cmd.Printf("%s %s\n", labelStyle.Render("Local:"), job.Location)
	if job.Area != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Área:"), job.Area)
	}
	if job.Salary != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Salário:"), job.Salary)
	}
	if job.Benefits != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Benefícios:"), job.Benefits)
	}
	if job.WorkHours != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Carga horária:"), job.WorkHours)
	}
	if job.WorkSchedule != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Horário:"), job.WorkSchedule)
	}
	if job.WorkScale != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Escala:"), job.WorkScale)
	}
	if job.Duration != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Duração:"), job.Duration)
	}
	req := job.Requirements
	if req.Education != "" || req.Experience != "" || req.Profile != "" {
		cmd.Println(labelStyle.Render("Requisitos:"))
		if req.Education != "" {
			cmd.Printf("  Escolaridade: %s\n", req.Education)
		}
		if req.Experience != "" {
			cmd.Printf("  Experiência: %s\n", req.Experience)
		}
		if req.Profile != "" {
			cmd.Printf("  Perfil: %s\n", req.Profile)
		}
	}
	if job.Description != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Descrição:"), job.Description)
	}
	if job.CourseContact != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Contato do curso:"), job.CourseContact)
	}
	cmd.Printf("%s %s\n", labelStyle.Render("Publicada em:"), job.PostedDate)
	cmd.Printf("%s %s\n", labelStyle.Render("Currículo:"), job.ResumePreference)
}

// jobInputFromFlags collects the posting flags shared by post and edit
func jobInputFromFlags(cmd *cobra.Command) board.JobInput {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return board.JobInput{
		JobType:       models.JobType(get("type")),
		Title:         get("title"),
		CompanyName:   get("company"),
		Area:          get("area"),
		Location:      get("location"),
		Duration:      get("duration"),
		Salary:        get("salary"),
		Benefits:      get("benefits"),
		WorkHours:     get("hours"),
		WorkSchedule:  get("schedule"),
		WorkScale:     get("scale"),
		Description:   get("description"),
		CourseContact: get("course-contact"),
		Requirements: models.Requirements{
			Education:  get("education"),
			Experience: get("experience"),
			Profile:    get("profile"),
		},
		ResumePreference: models.ResumePreference(get("resume")),
	}
}

// registerJobFlags attaches the posting flags to a command
func registerJobFlags(c *cobra.Command) {
	c.Flags().String("type", "emprego", "Job type: emprego, estagio, jovem-aprendiz, curso")
	c.Flags().String("title", "", "Job title")
	c.Flags().String("company", "", "Company name shown on the listing")
	c.Flags().String("area", "", "Area/sector")
	c.Flags().String("location", "", "Location")
	c.Flags().String("duration", "", "Contract duration")
	c.Flags().String("salary", "", "Salary")
	c.Flags().String("benefits", "", "Benefits")
	c.Flags().String("hours", "", "Weekly hours")
	c.Flags().String("schedule", "", "Work schedule")
	c.Flags().String("scale", "", "Work arrangement (presencial, híbrido, remoto...)")
	c.Flags().String("education", "", "Required education")
	c.Flags().String("experience", "", "Required experience")
	c.Flags().String("profile", "", "Desired profile")
	c.Flags().String("description", "", "Job description")
	c.Flags().String("course-contact", "", "Contact for course listings")
	c.Flags().String("resume", "", "Resume policy: file, text, both, none")
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(postJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(editJobCmd)
	jobCmd.AddCommand(removeJobCmd)

	registerJobFlags(postJobCmd)
	registerJobFlags(editJobCmd)

	listJobsCmd.Flags().String("search", "", "Filter by title or company substring")
	listJobsCmd.Flags().String("location", "", "Filter by location substring")
	listJobsCmd.Flags().String("type", "", "Filter by job type")
}
