package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorial/internal/model"
)

func TestFixtureStoreListsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "project-1", projects[0].ID)
	assert.Equal(t, "project-2", projects[1].ID)

	companies, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Tech Innovations Ltd", companies[0].Name)
	assert.Equal(t, "GreenEnergy Corp", companies[1].Name)

	milestones, err := s.ListMilestonesByProject(ctx, "project-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(milestones))
	for _, m := range milestones {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"milestone-1", "milestone-2", "milestone-3"}, ids)
}

func TestFixtureStoreLookups(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	p, err := s.GetProject(ctx, "project-2")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.ProjectPlanning, p.Status)
	assert.Equal(t, "GreenEnergy Expansion", p.Matrix.Realization.Name)
	assert.Equal(t, "Maria Silva", p.Matrix.Realization.Producer)

	c, err := s.GetCompany(ctx, "company-1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Tech Innovations Ltd", c.Name)
}

func TestAbsentIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	p, err := s.GetProject(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, p)

	c, err := s.GetCompany(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, c)

	ms, err := s.ListMilestonesByProject(ctx, "project-2")
	assert.NoError(t, err)
	assert.NotNil(t, ms)
	assert.Empty(t, ms)

	fs, err := s.ListFinancialMetricsByProject(ctx, "missing")
	assert.NoError(t, err)
	assert.NotNil(t, fs)
	assert.Empty(t, fs)
}

func TestEmptyStoreListsAreEmptyNotNil(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ps, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)

	cs, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Empty(t, cs)
}

// Every milestone and metric belongs to exactly one project's listing.
func TestProjectListingsPartitionChildren(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()
	fx := DemoFixtures()

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)

	milestoneSeen := map[string]int{}
	metricSeen := map[string]int{}
	for _, p := range projects {
		ms, err := s.ListMilestonesByProject(ctx, p.ID)
		require.NoError(t, err)
		for _, m := range ms {
			assert.Equal(t, p.ID, m.ProjectID)
			milestoneSeen[m.ID]++
		}
		fs, err := s.ListFinancialMetricsByProject(ctx, p.ID)
		require.NoError(t, err)
		for _, f := range fs {
			assert.Equal(t, p.ID, f.ProjectID)
			metricSeen[f.ID]++
		}
	}

	require.Len(t, milestoneSeen, len(fx.Milestones))
	for id, n := range milestoneSeen {
		assert.Equal(t, 1, n, id)
	}
	require.Len(t, metricSeen, len(fx.Metrics))
	for id, n := range metricSeen {
		assert.Equal(t, 1, n, id)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	p, err := s.GetProject(ctx, "project-1")
	require.NoError(t, err)
	p.Name = "changed"
	p.Matrix.Realization.Reasons[0] = "changed"

	again, err := s.GetProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, "Digital Transformation Initiative", again.Name)
	assert.NotEqual(t, "changed", again.Matrix.Realization.Reasons[0])

	ms, err := s.ListMilestonesByProject(ctx, "project-1")
	require.NoError(t, err)
	ms[0].AssignedTo[0] = "someone"
	ms, err = s.ListMilestonesByProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", ms[0].AssignedTo[0])
}

func TestInsertValidation(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	t.Run("duplicate company", func(t *testing.T) {
		err := s.InsertCompany(ctx, model.Company{ID: "company-1"})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("project with unknown company", func(t *testing.T) {
		err := s.InsertProject(ctx, model.Project{ID: "p-x", CompanyID: "ghost", Status: model.ProjectActive})
		assert.ErrorIs(t, err, ErrUnknownCompany)
	})

	t.Run("project with bad status", func(t *testing.T) {
		err := s.InsertProject(ctx, model.Project{ID: "p-y", CompanyID: "company-1", Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("milestone with unknown project", func(t *testing.T) {
		err := s.InsertMilestone(ctx, model.Milestone{ID: "m-x", ProjectID: "ghost", Status: model.MilestonePending})
		assert.ErrorIs(t, err, ErrUnknownProject)
	})

	t.Run("milestone stored as overdue", func(t *testing.T) {
		err := s.InsertMilestone(ctx, model.Milestone{ID: "m-y", ProjectID: "project-1", Status: model.MilestoneOverdue})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("metric with bad unit", func(t *testing.T) {
		err := s.InsertFinancialMetric(ctx, model.FinancialMetric{
			ID:        "f-x",
			ProjectID: "project-1",
			Category:  model.MetricBudget,
			Unit:      "euros",
			Period:    model.PeriodMonthly,
		})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("metric with unknown project", func(t *testing.T) {
		err := s.InsertFinancialMetric(ctx, model.FinancialMetric{
			ID:        "f-y",
			ProjectID: "ghost",
			Category:  model.MetricBudget,
			Unit:      model.UnitCurrency,
			Period:    model.PeriodMonthly,
		})
		assert.ErrorIs(t, err, ErrUnknownProject)
	})
}

func TestUpdateProjectMatrix(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := s.GetProject(ctx, "project-1")
	require.NoError(t, err)
	m := p.Matrix.Clone()
	model.SetActionTimeframe("2026").Apply(&m)

	require.NoError(t, s.UpdateProjectMatrix(ctx, "project-1", m, at))

	p, err = s.GetProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, "2026", p.Matrix.Action.Timeframe)
	assert.True(t, at.Equal(p.UpdatedAt))

	err = s.UpdateProjectMatrix(ctx, "ghost", m, at)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivitiesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	insert := func(id string, at time.Time) {
		t.Helper()
		require.NoError(t, s.InsertActivity(ctx, model.Activity{
			ID:        id,
			ProjectID: "project-1",
			UserID:    "2",
			Author:    "Client User",
			Type:      model.ActivityComment,
			Content:   id,
			CreatedAt: at,
		}))
	}
	insert("a1", base)
	insert("a2", base.Add(time.Hour))
	insert("a3", base.Add(time.Hour))
	insert("a4", base.Add(-time.Hour))

	feed, err := s.ListActivitiesByProject(ctx, "project-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(feed))
	for _, a := range feed {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a3", "a2", "a1", "a4"}, ids)

	other, err := s.ListActivitiesByProject(ctx, "project-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	err = s.InsertActivity(ctx, model.Activity{ID: "a1", ProjectID: "project-1", Type: model.ActivityComment})
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = s.InsertActivity(ctx, model.Activity{ID: "a9", ProjectID: "ghost", Type: model.ActivityComment})
	assert.ErrorIs(t, err, ErrUnknownProject)
}

func TestFixturesLoadRejectsSecondLoad(t *testing.T) {
	s := NewFixtureStore()
	err := DemoFixtures().Load(context.Background(), s)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestFixturesMissingCompletesPartialLoad(t *testing.T) {
	ctx := context.Background()
	full := DemoFixtures()
	s := NewMemoryStore()

	partial := Fixtures{Companies: full.Companies, Projects: full.Projects[:1], Milestones: full.Milestones[:1]}
	require.NoError(t, partial.Load(ctx, s))

	missing, err := full.Missing(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, missing.Companies)
	assert.Len(t, missing.Projects, len(full.Projects)-1)
	assert.Len(t, missing.Milestones, len(full.Milestones)-1)
	assert.Len(t, missing.Metrics, len(full.Metrics))
	require.NoError(t, missing.Load(ctx, s))

	missing, err = full.Missing(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, missing.Len())

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, len(full.Projects))
}

func TestDemoUsersAreValid(t *testing.T) {
	for _, u := range DemoUsers() {
		assert.NoError(t, validateUser(u), u.Email)
	}
	assert.Error(t, validateUser(model.User{ID: "x", Email: "x@y", Role: "client_user"}))
}
