// Package content holds the immutable content blocks of the product:
// news articles, the about text, and the education guides. Served as
// configuration data, never mutated.
package content

import "github.com/vagalivre/vagalivre/pkg/models"

// News returns the news articles shown on the news page
func News() []models.NewsArticle {
	return []models.NewsArticle{
		{
			Title:       "Cursos Gratuitos de Tecnologia Abrem Inscrições",
			Description: "A plataforma 'Futuro Digital' anunciou a abertura de 5.000 vagas para cursos online gratuitos nas áreas de programação, análise de dados e inteligência artificial. As inscrições vão até o final do mês e são abertas para todo o Brasil.",
			Link:        "https://example.com/cursos-tecnologia",
			Source:      "Futuro Digital News",
		},
		{
			Title:       "Concurso Nacional Anuncia Edital com Salários de até R$ 15 mil",
			Description: "Foi publicado o edital para o concurso do Tribunal de Contas Nacional, com vagas para níveis médio e superior em diversas áreas. As provas estão previstas para novembro e as inscrições começam na próxima semana.",
			Link:        "https://example.com/concurso-nacional",
			Source:      "Diário Oficial",
		},
		{
			Title:       "Programa de Bolsas de Estudo para Universidades no Exterior",
			Description: "O programa 'Mundo afora' está com inscrições abertas para bolsas de estudo integrais para cursos de graduação e pós-graduação em universidades na Europa e América do Norte. O prazo final para candidatura é 30 de setembro.",
			Link:        "https://example.com/bolsas-exterior",
			Source:      "Educação Internacional",
		},
		{
			Title:       "Vestibulares de Inverno: Fique Atento aos Prazos",
			Description: "As principais universidades estaduais e federais divulgaram os calendários de seus vestibulares de inverno. Candidatos devem ficar atentos aos prazos de isenção de taxa e inscrição para não perderem a oportunidade.",
			Link:        "https://example.com/vestibulares-inverno",
			Source:      "Guia do Estudante",
		},
	}
}

// About returns the about-page text
func About() string {
	return `Quem Somos

A VagaLivre nasceu com a missão de simplificar e humanizar o processo de
recrutamento e seleção. Acreditamos que conectar o talento certo à
oportunidade certa pode transformar vidas e impulsionar negócios. Nossa
plataforma foi desenhada para ser intuitiva, eficiente e acessível tanto
para candidatos em busca de novos desafios quanto para empresas que
procuram os melhores profissionais.

Nossos Serviços

- Para Candidatos: uma vasta gama de vagas em todo o Brasil, com filtros
  de busca avançados e um processo de candidatura simplificado. Tudo de
  forma 100% gratuita.
- Para Empregadores: uma plataforma robusta para publicação e
  gerenciamento de vagas, com acompanhamento de candidaturas e acesso
  aos currículos dos talentos mais promissores do mercado.

Nosso compromisso é com a transparência, a inovação e o sucesso de
nossos usuários.`
}

// Guide is one educational guide block
type Guide struct {
	Title  string
	Topics []string
}

// Guides returns the education-page guides
func Guides() []Guide {
	return []Guide{
		{
			Title: "Educação Financeira e Econômica",
			Topics: []string{
				"Gestão de Orçamento Pessoal",
				"Planejamento Financeiro",
				"Noções de Economia",
			},
		},
		{
			Title: "Preparo e Melhoria de Currículo",
			Topics: []string{
				"Estrutura Básica",
				"Dicas de Ouro",
				"O Que Evitar",
			},
		},
		{
			Title: "Como se Preparar para Entrevistas",
			Topics: []string{
				"Antes da Entrevista",
				"Durante a Entrevista",
				"Perguntas Comuns e Como Responder",
				"Após a Entrevista",
				"Dica Extra: Entrevistas Online",
			},
		},
	}
}
