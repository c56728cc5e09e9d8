package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/store"
	"github.com/AnshRaj112/portfolio-backend/internal/validation"
)

// collection carries the read and delete operations every resource shares
// plus the write helpers that keep assets and documents paired.
type collection[T any] struct {
	repo     store.Repository[T]
	resource string
	assets   assetKeeper
	// asset returns the asset owned by a document; nil when T has none.
	asset func(*T) models.Asset
}

func (c *collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, c.resource)
	}
	return doc, nil
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	return c.repo.FindAll(ctx)
}

// Delete removes the document, then releases its asset once.
func (c *collection[T]) Delete(ctx context.Context, id string) error {
	doc, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, c.resource)
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return storeError(err, c.resource)
	}
	if c.asset != nil {
		c.assets.release(ctx, c.asset(doc))
	}
	return nil
}

func (c *collection[T]) insert(ctx context.Context, doc *T, fresh models.Asset) error {
	if err := c.repo.Create(ctx, doc); err != nil {
		c.assets.release(ctx, fresh)
		return storeError(err, c.resource)
	}
	return nil
}

// replace stores doc. fresh is the asset uploaded for this write and stale
// the one it supersedes.
func (c *collection[T]) replace(ctx context.Context, doc *T, fresh, stale models.Asset) error {
	if err := c.repo.Replace(ctx, doc); err != nil {
		c.assets.release(ctx, fresh)
		return storeError(err, c.resource)
	}
	if !fresh.IsZero() && fresh.PublicID != stale.PublicID {
		c.assets.release(ctx, stale)
	}
	return nil
}

// Messages

type MessageInput struct {
	SenderName string
	Subject    string
	Message    string
}

type MessageService struct {
	*collection[models.Message]
	now func() time.Time
}

func NewMessageService(repo store.Repository[models.Message]) *MessageService {
	return &MessageService{
		collection: &collection[models.Message]{repo: repo, resource: "Message"},
		now:        time.Now,
	}
}

// Send stores a contact-form message.
func (s *MessageService) Send(ctx context.Context, in MessageInput) (*models.Message, error) {
	msg := &models.Message{
		SenderName: strings.TrimSpace(in.SenderName),
		Subject:    strings.TrimSpace(in.Subject),
		Message:    strings.TrimSpace(in.Message),
		CreatedAt:  s.now().UTC(),
	}
	if err := validation.ValidateStruct(msg); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, msg, models.Asset{}); err != nil {
		return nil, err
	}
	return msg, nil
}

// Projects

// ProjectInput fields left nil keep their stored value on update.
type ProjectInput struct {
	Title        *string
	Description  *string
	GitRepoURL   *string
	ProjectLink  *string
	Technologies []string
	Stack        *string
	Deployed     *bool
}

func (in ProjectInput) apply(p *models.Project) {
	setString(&p.Title, in.Title)
	setString(&p.Description, in.Description)
	setString(&p.GitRepoURL, in.GitRepoURL)
	setString(&p.ProjectLink, in.ProjectLink)
	setString(&p.Stack, in.Stack)
	if in.Technologies != nil {
		p.Technologies = in.Technologies
	}
	if in.Deployed != nil {
		p.Deployed = *in.Deployed
	}
}

type ProjectService struct {
	*collection[models.Project]
}

func NewProjectService(repo store.Repository[models.Project], media Media) *ProjectService {
	return &ProjectService{&collection[models.Project]{
		repo:     repo,
		resource: "Project",
		assets:   assetKeeper{media: media},
		asset:    func(p *models.Project) models.Asset { return p.Banner },
	}}
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput, banner *FileUpload) (*models.Project, error) {
	p := &models.Project{}
	in.apply(p)
	if err := withViolations(validation.ValidateStruct(p), requireFile(banner, "Project Banner Image Required")); err != nil {
		return nil, err
	}

	var err error
	if p.Banner, err = s.assets.upload(ctx, banner, FolderProjects, "project banner"); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, p, p.Banner); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput, banner *FileUpload) (*models.Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := *current
	in.apply(&p)
	if err := validation.ValidateStruct(&p); err != nil {
		return nil, err
	}

	var fresh models.Asset
	if banner != nil {
		if fresh, err = s.assets.upload(ctx, banner, FolderProjects, "project banner"); err != nil {
			return nil, err
		}
		p.Banner = fresh
	}
	if err := s.replace(ctx, &p, fresh, current.Banner); err != nil {
		return nil, err
	}
	return &p, nil
}

// Skills

type SkillInput struct {
	Title       *string
	Proficiency *int
}

type SkillService struct {
	*collection[models.Skill]
}

func NewSkillService(repo store.Repository[models.Skill], media Media) *SkillService {
	return &SkillService{&collection[models.Skill]{
		repo:     repo,
		resource: "Skill",
		assets:   assetKeeper{media: media},
		asset:    func(s *models.Skill) models.Asset { return s.Icon },
	}}
}

// Create stores a skill. The icon is optional.
func (s *SkillService) Create(ctx context.Context, in SkillInput, icon *FileUpload) (*models.Skill, error) {
	sk := &models.Skill{}
	setString(&sk.Title, in.Title)
	var missing string
	if in.Proficiency != nil {
		sk.Proficiency = *in.Proficiency
	} else {
		missing = "Proficiency is required"
	}
	if err := withViolations(validation.ValidateStruct(sk), missing); err != nil {
		return nil, err
	}

	if icon != nil {
		var err error
		if sk.Icon, err = s.assets.upload(ctx, icon, FolderSkills, "skill icon"); err != nil {
			return nil, err
		}
	}
	if err := s.insert(ctx, sk, sk.Icon); err != nil {
		return nil, err
	}
	return sk, nil
}

func (s *SkillService) Update(ctx context.Context, id string, in SkillInput, icon *FileUpload) (*models.Skill, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sk := *current
	setString(&sk.Title, in.Title)
	if in.Proficiency != nil {
		sk.Proficiency = *in.Proficiency
	}
	if err := validation.ValidateStruct(&sk); err != nil {
		return nil, err
	}

	var fresh models.Asset
	if icon != nil {
		if fresh, err = s.assets.upload(ctx, icon, FolderSkills, "skill icon"); err != nil {
			return nil, err
		}
		sk.Icon = fresh
	}
	if err := s.replace(ctx, &sk, fresh, current.Icon); err != nil {
		return nil, err
	}
	return &sk, nil
}

// Timeline events

type TimelineInput struct {
	Title       *string
	Description *string
	From        *string
	To          *string
}

type TimelineService struct {
	*collection[models.Timeline]
}

func NewTimelineService(repo store.Repository[models.Timeline]) *TimelineService {
	return &TimelineService{&collection[models.Timeline]{repo: repo, resource: "Timeline"}}
}

func (in TimelineInput) apply(t *models.Timeline) {
	setString(&t.Title, in.Title)
	setString(&t.Description, in.Description)
	setString(&t.Timeline.From, in.From)
	if in.To != nil {
		// an empty "to" reopens the period
		t.Timeline.To = strings.TrimSpace(*in.To)
	}
}

func (s *TimelineService) Create(ctx context.Context, in TimelineInput) (*models.Timeline, error) {
	t := &models.Timeline{}
	in.apply(t)
	if err := validation.ValidateStruct(t); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, t, models.Asset{}); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TimelineService) Update(ctx context.Context, id string, in TimelineInput) (*models.Timeline, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := *current
	in.apply(&t)
	if err := validation.ValidateStruct(&t); err != nil {
		return nil, err
	}
	if err := s.replace(ctx, &t, models.Asset{}, models.Asset{}); err != nil {
		return nil, err
	}
	return &t, nil
}

// Software applications

type SoftwareAppService struct {
	*collection[models.SoftwareApp]
}

func NewSoftwareAppService(repo store.Repository[models.SoftwareApp], media Media) *SoftwareAppService {
	return &SoftwareAppService{&collection[models.SoftwareApp]{
		repo:     repo,
		resource: "Software application",
		assets:   assetKeeper{media: media},
		asset:    func(a *models.SoftwareApp) models.Asset { return a.Icon },
	}}
}

func (s *SoftwareAppService) Create(ctx context.Context, name string, icon *FileUpload) (*models.SoftwareApp, error) {
	app := &models.SoftwareApp{Name: strings.TrimSpace(name)}
	if err := withViolations(validation.ValidateStruct(app), requireFile(icon, "Software Application Icon/SVG Required")); err != nil {
		return nil, err
	}

	var err error
	if app.Icon, err = s.assets.upload(ctx, icon, FolderSoftwareApps, "software application icon"); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, app, app.Icon); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *SoftwareAppService) Update(ctx context.Context, id string, name *string, icon *FileUpload) (*models.SoftwareApp, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	app := *current
	setString(&app.Name, name)
	if err := validation.ValidateStruct(&app); err != nil {
		return nil, err
	}

	var fresh models.Asset
	if icon != nil {
		if fresh, err = s.assets.upload(ctx, icon, FolderSoftwareApps, "software application icon"); err != nil {
			return nil, err
		}
		app.Icon = fresh
	}
	if err := s.replace(ctx, &app, fresh, current.Icon); err != nil {
		return nil, err
	}
	return &app, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
