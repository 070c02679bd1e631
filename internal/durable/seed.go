package durable

import "github.com/vagalivre/vagalivre/pkg/models"

// SeedJobs returns the built-in job dataset used when the store holds no
// usable snapshot. Fresh slices every call so callers can mutate freely.
func SeedJobs() []models.Job {
	return []models.Job{
		{
			ID:           "job-1",
			EmployerID:   "emp-1",
			JobType:      models.JobTypeEmprego,
			Title:        "Auxiliar Administrativo",
			CompanyName:  "Tech Solutions Ltda.",
			Location:     "São Paulo, SP",
			Salary:       "R$ 2.500,00",
			Benefits:     "Vale Transporte, Vale Refeição, Plano de Saúde",
			WorkHours:    "40 horas/semana",
			WorkSchedule: "Segunda a Sexta, 09h-18h",
			WorkScale:    "Presencial",
			Requirements: models.Requirements{
				Education:  "Ensino Médio Completo",
				Experience: "Mínimo de 1 ano na área",
				Profile:    "Organizado, proativo e com boa comunicação.",
			},
			PostedDate:       "2024-07-20",
			Applications:     []models.Application{},
			ResumePreference: models.ResumeFileOnly,
		},
		{
			ID:           "job-2",
			EmployerID:   "emp-2",
			JobType:      models.JobTypeEmprego,
			Title:        "Mecânico de Manutenção",
			CompanyName:  "Indústria Metalúrgica Brasil",
			Location:     "Rio de Janeiro, RJ",
			Salary:       "R$ 3.800,00",
			Benefits:     "Vale Transporte, Vale Alimentação, Periculosidade",
			WorkHours:    "44 horas/semana",
			WorkSchedule: "Turnos rotativos",
			WorkScale:    "6x1",
			Requirements: models.Requirements{
				Education:  "Curso Técnico em Mecânica",
				Experience: "3 anos de experiência com maquinário pesado",
				Profile:    "Atenção aos detalhes, capacidade de trabalhar em equipe.",
			},
			PostedDate:       "2024-07-19",
			Applications:     []models.Application{},
			ResumePreference: models.ResumeEither,
		},
		{
			ID:           "job-3",
			EmployerID:   "emp-1",
			JobType:      models.JobTypeEstagio,
			Title:        "Estágio em Marketing Digital",
			Location:     "Belo Horizonte, MG",
			Salary:       "R$ 1.200,00 (Bolsa auxílio)",
			Benefits:     "Vale Transporte",
			WorkHours:    "30 horas/semana",
			WorkSchedule: "Flexível",
			WorkScale:    "Híbrido",
			Requirements: models.Requirements{
				Education: "Cursando Superior em Marketing, Publicidade ou áreas correlatas",
				Profile:   "Criativo, com conhecimento em redes sociais e vontade de aprender.",
			},
			PostedDate:       "2024-07-18",
			Applications:     []models.Application{},
			ResumePreference: models.ResumeTextOnly,
		},
		{
			ID:           "job-4",
			EmployerID:   "emp-2",
			JobType:      models.JobTypeJovemAprendiz,
			Title:        "Jovem Aprendiz - Logística",
			CompanyName:  "Log Express",
			Location:     "Curitiba, PR",
			Salary:       "Salário Mínimo-hora",
			Benefits:     "Vale Transporte, Curso de Capacitação",
			WorkHours:    "20 horas/semana",
			WorkSchedule: "Segunda a Sexta, 13h-17h",
			WorkScale:    "Presencial",
			Requirements: models.Requirements{
				Education: "Ensino Médio Cursando ou Completo",
				Profile:   "Vontade de aprender e se desenvolver na área de logística.",
			},
			PostedDate:       "2024-07-21",
			Applications:     []models.Application{},
			ResumePreference: models.ResumeFileOnly,
		},
	}
}

// SeedEmployers returns the built-in employer dataset
func SeedEmployers() []models.Employer {
	return []models.Employer{
		{
			ID:          "emp-1",
			CompanyName: "Tech Solutions Ltda.",
			Email:       "contato@techsolutions.com",
			Password:    "password123",
		},
		{
			ID:          "emp-2",
			CompanyName: "Indústria Metalúrgica Brasil",
			Email:       "rh@industriametal.com.br",
			Password:    "password123",
		},
	}
}
