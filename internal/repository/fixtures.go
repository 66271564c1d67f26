package repository

import (
	"context"
	"fmt"
	"time"

	"gestorial/internal/model"
	"gestorial/pkg/rbac"
)

// Fixtures is a complete entity set in load order.
type Fixtures struct {
	Companies  []model.Company
	Projects   []model.Project
	Milestones []model.Milestone
	Metrics    []model.FinancialMetric
}

// Load inserts the fixtures parents first.
func (f Fixtures) Load(ctx context.Context, w Writer) error {
	for _, c := range f.Companies {
		if err := w.InsertCompany(ctx, c); err != nil {
			return fmt.Errorf("load companies: %w", err)
		}
	}
	for _, p := range f.Projects {
		if err := w.InsertProject(ctx, p); err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
	}
	for _, m := range f.Milestones {
		if err := w.InsertMilestone(ctx, m); err != nil {
			return fmt.Errorf("load milestones: %w", err)
		}
	}
	for _, m := range f.Metrics {
		if err := w.InsertFinancialMetric(ctx, m); err != nil {
			return fmt.Errorf("load financial metrics: %w", err)
		}
	}
	return nil
}

// Len is the number of entities in f.
func (f Fixtures) Len() int {
	return len(f.Companies) + len(f.Projects) + len(f.Milestones) + len(f.Metrics)
}

// Missing returns the part of f that s does not hold yet, matched by id.
// Loading it completes an interrupted earlier Load.
func (f Fixtures) Missing(ctx context.Context, s Store) (Fixtures, error) {
	var out Fixtures
	for _, c := range f.Companies {
		got, err := s.GetCompany(ctx, c.ID)
		if err != nil {
			return Fixtures{}, fmt.Errorf("check company %s: %w", c.ID, err)
		}
		if got == nil {
			out.Companies = append(out.Companies, c)
		}
	}
	for _, p := range f.Projects {
		got, err := s.GetProject(ctx, p.ID)
		if err != nil {
			return Fixtures{}, fmt.Errorf("check project %s: %w", p.ID, err)
		}
		if got == nil {
			out.Projects = append(out.Projects, p)
		}
	}

	milestoneIDs := map[string]map[string]bool{}
	metricIDs := map[string]map[string]bool{}
	for _, p := range f.Projects {
		ms, err := s.ListMilestonesByProject(ctx, p.ID)
		if err != nil {
			return Fixtures{}, fmt.Errorf("check milestones of %s: %w", p.ID, err)
		}
		milestoneIDs[p.ID] = map[string]bool{}
		for _, m := range ms {
			milestoneIDs[p.ID][m.ID] = true
		}

		fs, err := s.ListFinancialMetricsByProject(ctx, p.ID)
		if err != nil {
			return Fixtures{}, fmt.Errorf("check financial metrics of %s: %w", p.ID, err)
		}
		metricIDs[p.ID] = map[string]bool{}
		for _, m := range fs {
			metricIDs[p.ID][m.ID] = true
		}
	}
	for _, m := range f.Milestones {
		if !milestoneIDs[m.ProjectID][m.ID] {
			out.Milestones = append(out.Milestones, m)
		}
	}
	for _, m := range f.Metrics {
		if !metricIDs[m.ProjectID][m.ID] {
			out.Metrics = append(out.Metrics, m)
		}
	}
	return out, nil
}

// NewFixtureStore returns a MemoryStore holding the demo data set.
func NewFixtureStore() *MemoryStore {
	s := NewMemoryStore()
	if err := DemoFixtures().Load(context.Background(), s); err != nil {
		// the demo set is static; a failure here is a programming error
		panic(err)
	}
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// DemoMatrix is the realization matrix shared by the demo projects.
func DemoMatrix() model.RealizationMatrix {
	return model.RealizationMatrix{
		Realization: model.RealizationSection{
			Name:     "Gestorial",
			Producer: "Gustavo",
			Reasons: []string{
				"Democratização da gestão para a felicidade da realização e autorrealização",
				"Legado, referência e fama",
				"Fonte de renda com receita recorrente",
			},
			Values: []string{
				"Ética, correição, honestidade",
				"Realização, auto-realização",
				"Tecnologia, proatividade, inovação",
			},
		},
		Vision: model.VisionSection{
			Definition: "Empresa de treinamento e consultoria em desenvolvimento de negócios",
			Audience:   "Pessoas e instituições que querem realizar",
			Purpose:    "Municiar pessoas e instituições com conhecimento e método para realizarem",
			Offerings: []string{
				"Modelo/método",
				"Conteúdos/Aplicações/Ferramentas",
				"Desenvolvimento de Gestores",
				"Desenvolvimento de Organizações",
				"Desenvolvimento de Projetos (serviços, produtos, instituições etc.)",
			},
		},
		Direction: model.DirectionSection{
			Aspiration: "Modelo/método conhecido, valorizado e aplicado pelo mercado",
			Situation: model.SituationalAnalysis{
				Opportunities: []string{"Pessoas/instituições com realizações complexas e sem saber como se organizarem"},
				Threats:       []string{"Elevada concorrência e tecnologias disruptivas"},
				Strengths:     []string{"Rede e referência, mesmo que ainda vinculado à pessoa do Produtor"},
				Weaknesses:    []string{"Eupreza, autônomo, falta de estrutura e recursos, divulgação e transformação digital"},
			},
			Roadmap: []string{
				"Consolidação do modelo/método",
				"Desenvolvimento e lançamento de referenciais (livros e aplicações)",
				"Marketing e comunicação (foco digital)",
				"Aplicações práticas do modelo e método",
			},
			Roles: model.RoleAssignments{
				Conductor:   "Gustavo",
				Operators:   []string{"Gustavo", "Juliana e outros profissionais a contratar"},
				Facilitator: "Gustavo",
				Pointer:     "Gustavo e outro profissional a contratar",
				Mentor:      "Gustavo",
			},
		},
		Action: model.ActionSection{
			Priorities: []string{
				"Elaboração e lançamento dos livros",
				"Atualização da identidade visual",
				"Marketing e comunicação digital",
				"Vendas e desenvolvimento de projetos",
			},
			Owners:    []string{"Gustavo e contratados"},
			Timeframe: "2025",
			Checkpoints: []string{
				"Organização/divisão do tempo para desenvolvimento e aplicação",
				"Interesse de editora de renome",
				"Contratação de agência adequada",
				"Gestão do fluxo de caixa e reservas",
			},
		},
		Provision: model.ProvisionSection{
			People:    []string{"Vide Controle Financeiro"},
			Materials: []string{"Vide Controle Financeiro"},
			Services:  []string{"Vide Controle Financeiro"},
			Capital:   1680000,
		},
		Reaction: model.ReactionSection{
			ExternalFinancial:    "1,68 milhão de receita bruta alcançada até dezembro de 2025",
			InternalFinancial:    "25% de lucro líquido alcançado em 2025",
			InternalNonFinancial: "1 livro publicado até dezembro de 2025",
			ExternalNonFinancial: "3 redes sociais ativas e geridas até dezembro de 2025",
		},
	}
}

// DemoFixtures is the data set the dashboard ships with.
func DemoFixtures() Fixtures {
	expansion := DemoMatrix()
	expansion.Realization.Name = "GreenEnergy Expansion"
	expansion.Realization.Producer = "Maria Silva"

	return Fixtures{
		Companies: []model.Company{
			{
				ID:          "company-1",
				Name:        "Tech Innovations Ltd",
				Description: "Leading technology solutions provider",
				CreatedAt:   day(2024, 1, 15),
				UpdatedAt:   day(2024, 1, 15),
			},
			{
				ID:          "company-2",
				Name:        "GreenEnergy Corp",
				Description: "Sustainable energy solutions",
				CreatedAt:   day(2024, 2, 10),
				UpdatedAt:   day(2024, 2, 10),
			},
		},
		Projects: []model.Project{
			{
				ID:            "project-1",
				Name:          "Digital Transformation Initiative",
				Description:   "Complete digital transformation of business processes and customer engagement",
				CompanyID:     "company-1",
				Status:        model.ProjectActive,
				StartDate:     day(2024, 3, 1),
				EndDate:       ptr(day(2024, 12, 31)),
				Budget:        500000,
				CurrentSpent:  125000,
				TargetRevenue: ptr(750000.0),
				Matrix:        DemoMatrix(),
				CreatedAt:     day(2024, 2, 15),
				UpdatedAt:     day(2024, 6, 20),
			},
			{
				ID:            "project-2",
				Name:          "Sustainable Energy Expansion",
				Description:   "Expansion into renewable energy markets with new product lines",
				CompanyID:     "company-2",
				Status:        model.ProjectPlanning,
				StartDate:     day(2024, 7, 1),
				EndDate:       ptr(day(2025, 6, 30)),
				Budget:        1200000,
				CurrentSpent:  50000,
				TargetRevenue: ptr(1800000.0),
				Matrix:        expansion,
				CreatedAt:     day(2024, 5, 10),
				UpdatedAt:     day(2024, 6, 15),
			},
		},
		Milestones: []model.Milestone{
			{
				ID:          "milestone-1",
				ProjectID:   "project-1",
				Title:       "Requirements Analysis Complete",
				Description: "Complete analysis of current systems and requirements for digital transformation",
				DueDate:     day(2024, 4, 15),
				Status:      model.MilestoneCompleted,
				AssignedTo:  []string{"user-1", "user-2"},
				Progress:    100,
				CreatedAt:   day(2024, 3, 1),
				UpdatedAt:   day(2024, 4, 15),
			},
			{
				ID:          "milestone-2",
				ProjectID:   "project-1",
				Title:       "System Architecture Design",
				Description: "Design and document the new system architecture",
				DueDate:     day(2024, 7, 30),
				Status:      model.MilestoneInProgress,
				AssignedTo:  []string{"user-1"},
				Progress:    65,
				CreatedAt:   day(2024, 3, 1),
				UpdatedAt:   day(2024, 7, 15),
			},
			{
				ID:          "milestone-3",
				ProjectID:   "project-1",
				Title:       "MVP Development",
				Description: "Develop minimum viable product for core features",
				DueDate:     day(2024, 10, 15),
				Status:      model.MilestonePending,
				AssignedTo:  []string{"user-3"},
				Progress:    0,
				CreatedAt:   day(2024, 3, 1),
				UpdatedAt:   day(2024, 3, 1),
			},
		},
		Metrics: []model.FinancialMetric{
			{
				ID:           "metric-1",
				ProjectID:    "project-1",
				Category:     model.MetricBudget,
				Name:         "Total Project Budget",
				CurrentValue: 125000,
				TargetValue:  500000,
				Unit:         model.UnitCurrency,
				Period:       model.PeriodYearly,
				CreatedAt:    day(2024, 3, 1),
				UpdatedAt:    day(2024, 7, 15),
			},
			{
				ID:           "metric-2",
				ProjectID:    "project-1",
				Category:     model.MetricTarget,
				Name:         "Revenue Target",
				CurrentValue: 200000,
				TargetValue:  750000,
				Unit:         model.UnitCurrency,
				Period:       model.PeriodYearly,
				CreatedAt:    day(2024, 3, 1),
				UpdatedAt:    day(2024, 7, 15),
			},
			{
				ID:           "metric-3",
				ProjectID:    "project-1",
				Category:     model.MetricObjective,
				Name:         "Customer Satisfaction",
				CurrentValue: 85,
				TargetValue:  95,
				Unit:         model.UnitPercentage,
				Period:       model.PeriodQuarterly,
				CreatedAt:    day(2024, 3, 1),
				UpdatedAt:    day(2024, 7, 15),
			},
		},
	}
}

// DemoUsers are the accounts of the demo credential table.
func DemoUsers() []model.User {
	return []model.User{
		{
			ID:        "1",
			Name:      "Gestorial Admin",
			Email:     "admin@gestorial.com",
			Role:      rbac.RoleAdmin,
			CreatedAt: day(2024, 1, 1),
			UpdatedAt: day(2024, 1, 1),
		},
		{
			ID:        "2",
			Name:      "Client User",
			Email:     "client@example.com",
			Role:      rbac.RoleClientAdmin,
			CompanyID: ptr("company-1"),
			CreatedAt: day(2024, 1, 1),
			UpdatedAt: day(2024, 1, 1),
		},
	}
}
