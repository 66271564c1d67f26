package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	contracts "gestorial/contracts/mq"
	"gestorial/internal/model"
	"gestorial/internal/repository"
	"gestorial/internal/service/auth"
	"gestorial/internal/sessionstore"
	"gestorial/pkg/rbac"
)

var (
	aug1 = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	ctx  = context.Background()
)

func newService(t *testing.T, opts ...Option) (*Service, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewFixtureStore()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithClock(func() time.Time { return aug1 })}, opts...)
	return NewService(store, opts...), store
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, payload)
	return nil
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, any) error { return errors.New("broker down") }

type allow bool

func (a allow) CanEditProject(context.Context, string) bool { return bool(a) }

func TestGetProjectMatchesQueriedID(t *testing.T) {
	s, _ := newService(t)
	for _, p := range repository.DemoFixtures().Projects {
		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
	}
	for _, id := range []string{"", "project-3", "PROJECT-1", "company-1"} {
		got, err := s.GetProject(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got, id)
	}
}

func TestCompanies(t *testing.T) {
	s, _ := newService(t)
	cs, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	c, err := s.GetCompany(ctx, "company-2")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "GreenEnergy Corp", c.Name)

	c, err = s.GetCompany(ctx, "company-9")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestChildListings(t *testing.T) {
	s, _ := newService(t)

	ms, err := s.ListMilestonesForProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Len(t, ms, 3)

	fs, err := s.ListFinancialMetricsForProject(ctx, "project-1")
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.True(t, fs[2].OnTarget())

	fs, err = s.ListFinancialMetricsForProject(ctx, "project-2")
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestComputeProjectStats(t *testing.T) {
	s, _ := newService(t)

	stats, err := s.ComputeProjectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProjectStats{
		Total:       2,
		Active:      1,
		Planning:    1,
		TotalBudget: 1700000,
		TotalSpent:  175000,
	}, stats)
	assert.InDelta(t, 175000.0/1700000*100, stats.Utilization(), 1e-9)

	again, err := s.ComputeProjectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestStatsBucketsExcludeOnHoldAndCancelled(t *testing.T) {
	s, store := newService(t)
	for i, st := range []model.ProjectStatus{model.ProjectOnHold, model.ProjectCancelled, model.ProjectCompleted} {
		require.NoError(t, store.InsertProject(ctx, model.Project{
			ID:        fmt.Sprintf("extra-%d", i),
			CompanyID: "company-1",
			Status:    st,
			Budget:    100,
		}))
	}

	stats, err := s.ComputeProjectStats(ctx)
	require.NoError(t, err)
	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)

	assert.Equal(t, len(projects), stats.Total)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.LessOrEqual(t, stats.Active+stats.Completed+stats.Planning, stats.Total)
	assert.Equal(t, 3, stats.Active+stats.Completed+stats.Planning)

	var sum float64
	for _, p := range projects {
		sum += p.Budget
	}
	assert.Equal(t, sum, stats.TotalBudget)
}

func TestEmptyPortfolioStats(t *testing.T) {
	s := NewService(repository.NewMemoryStore())
	stats, err := s.ComputeProjectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProjectStats{}, stats)
	assert.Zero(t, stats.Utilization())
}

func TestOverdueMilestones(t *testing.T) {
	s, _ := newService(t)

	ms, err := s.ListMilestonesForProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneCompleted, s.MilestoneStatus(ms[0]))
	assert.Equal(t, model.MilestoneOverdue, s.MilestoneStatus(ms[1]))
	assert.Equal(t, model.MilestonePending, s.MilestoneStatus(ms[2]))

	overdue, err := s.OverdueMilestones(ctx, "project-1")
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "milestone-2", overdue[0].ID)

	early := NewService(repository.NewFixtureStore(), WithClock(func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}))
	overdue, err = early.OverdueMilestones(ctx, "project-1")
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestEditMatrix(t *testing.T) {
	pub := &recordingPublisher{}
	s, store := newService(t, WithPublisher(pub))

	before, err := store.GetProject(ctx, "project-1")
	require.NoError(t, err)

	p, err := s.EditMatrix(ctx, allow(true), "project-1",
		model.SetVisionPurpose("Novo propósito"),
		model.SetDirectionThreats([]string{"a", "b"}),
		model.SetProvisionCapital(2000000),
	)
	require.NoError(t, err)
	assert.Equal(t, "Novo propósito", p.Matrix.Vision.Purpose)
	assert.True(t, aug1.Equal(p.UpdatedAt))

	stored, err := store.GetProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, stored.Matrix.Direction.Situation.Threats)
	assert.Equal(t, 2000000.0, stored.Matrix.Provision.Capital)
	// untouched fields survive
	assert.Equal(t, before.Matrix.Vision.Definition, stored.Matrix.Vision.Definition)
	assert.Equal(t, before.Matrix.Direction.Situation.Strengths, stored.Matrix.Direction.Situation.Strengths)

	require.Equal(t, []string{contracts.RoutingKeyMatrixUpdated}, pub.keys)
	ev := pub.events[0].(contracts.MatrixUpdatedPayload)
	assert.Equal(t, []string{"vision.purpose", "direction.situation.threats", "provision.capital"}, ev.Fields)
	assert.Equal(t, "company-1", ev.CompanyID)
}

func TestEditMatrixDenied(t *testing.T) {
	pub := &recordingPublisher{}
	s, store := newService(t, WithPublisher(pub))

	_, err := s.EditMatrix(ctx, allow(false), "project-1", model.SetActionTimeframe("2030"))
	var denied *rbac.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, rbac.PermissionEditMatrix, denied.Permission)

	_, err = s.EditMatrix(ctx, nil, "project-1", model.SetActionTimeframe("2030"))
	require.ErrorAs(t, err, &denied)

	p, err := store.GetProject(ctx, "project-1")
	require.NoError(t, err)
	assert.Equal(t, "2025", p.Matrix.Action.Timeframe)
	assert.Empty(t, pub.keys)
}

func TestEditMatrixNilSessionIsDenied(t *testing.T) {
	s, _ := newService(t)
	var session *auth.Session

	_, err := s.EditMatrix(ctx, session, "project-1", model.SetActionTimeframe("2030"))
	var denied *rbac.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Empty(t, denied.UserID)
	assert.Equal(t, "project:project-1", denied.Resource)
}

func TestEditMatrixSkipsZeroEdits(t *testing.T) {
	pub := &recordingPublisher{}
	s, _ := newService(t, WithPublisher(pub))

	_, err := s.EditMatrix(ctx, allow(true), "project-1", model.MatrixEdit{}, model.SetActionTimeframe("2030"))
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, []string{"action.timeframe"}, pub.events[0].(contracts.MatrixUpdatedPayload).Fields)

	_, err = s.EditMatrix(ctx, allow(true), "project-1", model.MatrixEdit{})
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestEditMatrixUnknownProject(t *testing.T) {
	s, _ := newService(t)
	_, err := s.EditMatrix(ctx, allow(true), "ghost", model.SetActionTimeframe("2030"))
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestEditMatrixWithoutEditsIsNoop(t *testing.T) {
	pub := &recordingPublisher{}
	s, _ := newService(t, WithPublisher(pub))
	p, err := s.EditMatrix(ctx, allow(true), "project-2")
	require.NoError(t, err)
	assert.Equal(t, "GreenEnergy Expansion", p.Matrix.Realization.Name)
	assert.Empty(t, pub.keys)
}

func TestEditMatrixPublishFailureDoesNotFailEdit(t *testing.T) {
	s, _ := newService(t, WithPublisher(failingPublisher{}))
	p, err := s.EditMatrix(ctx, allow(true), "project-1", model.SetRealizationName("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", p.Matrix.Realization.Name)
}

// A client session may edit its own company's project only.
func TestEditMatrixWithSession(t *testing.T) {
	pub := &recordingPublisher{}
	s, _ := newService(t, WithPublisher(pub))

	verifier, err := auth.NewFixtureVerifier(repository.DemoUsers(), "demo123")
	require.NoError(t, err)
	session := auth.NewSession(verifier, sessionstore.NewMemoryStore())
	_, err = session.Login(ctx, "client@example.com", "demo123")
	require.NoError(t, err)

	_, err = s.EditMatrix(ctx, session, "project-1", model.SetReactionInternalFinancial("30%"))
	require.NoError(t, err)

	_, err = s.EditMatrix(ctx, session, "project-2", model.SetReactionInternalFinancial("30%"))
	var denied *rbac.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "2", denied.UserID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "2", pub.events[0].(contracts.MatrixUpdatedPayload).UserID)
}

func TestComments(t *testing.T) {
	pub := &recordingPublisher{}
	ids := 0
	s, _ := newService(t, WithPublisher(pub), WithIDGenerator(func() string {
		ids++
		return fmt.Sprintf("act-%d", ids)
	}))
	client := repository.DemoUsers()[1]
	admin := repository.DemoUsers()[0]

	a, err := s.AddComment(ctx, &client, "project-1", "  Looks good  ")
	require.NoError(t, err)
	assert.Equal(t, "act-1", a.ID)
	assert.Equal(t, "Looks good", a.Content)
	assert.Equal(t, "Client User", a.Author)
	assert.Equal(t, model.ActivityComment, a.Type)

	_, err = s.AddComment(ctx, &admin, "project-2", "Kickoff next week")
	require.NoError(t, err)

	_, err = s.AddComment(ctx, &client, "project-2", "not mine")
	var denied *rbac.PermissionDeniedError
	assert.ErrorAs(t, err, &denied)

	_, err = s.AddComment(ctx, nil, "project-1", "anon")
	assert.ErrorAs(t, err, &denied)

	_, err = s.AddComment(ctx, &client, "project-1", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = s.AddComment(ctx, &client, "ghost", "hello")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	feed, err := s.ListActivity(ctx, "project-1")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "act-1", feed[0].ID)

	assert.Equal(t, []string{contracts.RoutingKeyCommentAdded, contracts.RoutingKeyCommentAdded}, pub.keys)
}
