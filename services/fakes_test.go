package services

import (
	"context"
	"sync"

	"github.com/Amirkhan01/campaign-system/live"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
)

// In-memory repository fakes. They cover only what the service tests
// exercise; unused methods fail loudly if a test starts depending on them.

type fakeCampaignRepo struct {
	campaigns map[int]*models.Campaign
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id int) (*models.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, repositories.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignRepo) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	for _, c := range f.campaigns {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCampaignNotFound
}

func (f *fakeCampaignRepo) List(ctx context.Context, status *models.CampaignStatus) ([]*models.Campaign, error) {
	out := make([]*models.Campaign, 0)
	for _, c := range f.campaigns {
		if status == nil || c.Status == *status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	if _, ok := f.campaigns[c.ID]; !ok {
		return repositories.ErrCampaignNotFound
	}
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) UpdateStatus(ctx context.Context, id int, status models.CampaignStatus) error {
	c, ok := f.campaigns[id]
	if !ok {
		return repositories.ErrCampaignNotFound
	}
	c.Status = status
	return nil
}

type fakeGroupRepo struct {
	groups map[int]*models.Group
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *models.Group) error {
	f.groups[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id int) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupRepo) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Group, error) {
	out := make([]*models.Group, 0)
	for _, g := range f.groups {
		if g.CampaignID == campaignID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.groups[id]; !ok {
		return repositories.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error {
	f.teams[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, t := range f.teams {
		if t.CampaignID == campaignID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListByGroup(ctx context.Context, groupID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, t := range f.teams {
		if t.GroupID != nil && *t.GroupID == groupID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, t *models.Team) error {
	if _, ok := f.teams[t.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	f.teams[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) CountMatchesReferencing(ctx context.Context, teamID int) (int, error) {
	return 0, nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func (f *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	f.players[p.ID] = p
	return nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	out := make([]*models.Player, 0)
	for _, p := range f.players {
		if p.TeamID == teamID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(f.players))
	for _, p := range f.players {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeMatchRepo struct {
	nextID  int
	matches map[int]*models.Match
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.matches[m.ID] = &cp
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatchRepo) ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if m.GroupID != nil && *m.GroupID == groupID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByCampaign(ctx context.Context, campaignID int, stage *models.Stage) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if m.CampaignID != campaignID {
			continue
		}
		if stage != nil && m.Stage != *stage {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, id int, homeScore, awayScore *int, played bool) error {
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	m.Played = played
	return nil
}

func (f *fakeMatchRepo) UpdateKickoff(ctx context.Context, id int, match models.Match) error {
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.KickoffAt = match.KickoffAt
	return nil
}

func (f *fakeMatchRepo) SetExcluded(ctx context.Context, id int, excluded bool) error {
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Excluded = excluded
	return nil
}

type fakeGoalRepo struct {
	nextID int
	goals  map[int]*models.Goal
}

func (f *fakeGoalRepo) Create(ctx context.Context, g *models.Goal) error {
	f.nextID++
	g.ID = f.nextID
	cp := *g
	f.goals[g.ID] = &cp
	return nil
}

func (f *fakeGoalRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error) {
	out := make([]*models.Goal, 0)
	for _, g := range f.goals {
		if g.MatchID == matchID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Goal, error) {
	out := make([]*models.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeGoalRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.goals[id]; !ok {
		return repositories.ErrGoalNotFound
	}
	delete(f.goals, id)
	return nil
}

// fakeHub records broadcast events so tests can assert on notifications.
type fakeHub struct {
	mu     sync.Mutex
	events []live.Event
	rooms  []string
}

func (f *fakeHub) BroadcastToRoom(room string, event live.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, room)
	f.events = append(f.events, event)
}

func (f *fakeHub) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}
	return types
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[int]*models.Goal)}
}
