package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// fakeCampaignRepo is an in-memory port.CampaignRepository recording
// every mutation for assertions.
type fakeCampaignRepo struct {
	campaigns   map[uuid.UUID]*domain.Campaign
	connections map[uuid.UUID]*domain.Connection
	publishData map[uuid.UUID][]byte

	publishDataErr error
	deleteErr      error
	childErrs      map[string]error

	deleteCalls      int
	deletedRows      int
	childDeleteCalls []string
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns:   make(map[uuid.UUID]*domain.Campaign),
		connections: make(map[uuid.UUID]*domain.Connection),
		publishData: make(map[uuid.UUID][]byte),
		childErrs:   make(map[string]error),
	}
}

func (f *fakeCampaignRepo) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCampaignRepo) ListCampaigns(_ context.Context, ownerID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range f.campaigns {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) ListCampaignNames(_ context.Context, ownerID string) ([]string, error) {
	var out []string
	for _, c := range f.campaigns {
		if c.OwnerID == ownerID {
			out = append(out, strings.ToLower(c.Name))
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) RenameCampaign(_ context.Context, id uuid.UUID, name string) (*domain.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, nil
	}
	for other, oc := range f.campaigns {
		if other != id && oc.OwnerID == c.OwnerID && strings.EqualFold(oc.Name, name) {
			return nil, port.ErrNameTaken
		}
	}
	c.Name = name
	clone := *c
	return &clone, nil
}

func (f *fakeCampaignRepo) SetPublishData(_ context.Context, id uuid.UUID, payload []byte) error {
	if f.publishDataErr != nil {
		return f.publishDataErr
	}
	f.publishData[id] = payload
	return nil
}

func (f *fakeCampaignRepo) DeleteCampaign(_ context.Context, id uuid.UUID) (bool, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.campaigns[id]; !ok {
		return false, nil
	}
	delete(f.campaigns, id)
	f.deletedRows++
	return true, nil
}

func (f *fakeCampaignRepo) DeleteAdsByCampaign(_ context.Context, id uuid.UUID) error {
	f.childDeleteCalls = append(f.childDeleteCalls, "ads")
	return f.childErrs["ads"]
}

func (f *fakeCampaignRepo) DeletePublishRecordsByCampaign(_ context.Context, id uuid.UUID) error {
	f.childDeleteCalls = append(f.childDeleteCalls, "publish records")
	return f.childErrs["publish records"]
}

func (f *fakeCampaignRepo) DeleteConversationsByCampaign(_ context.Context, id uuid.UUID) error {
	f.childDeleteCalls = append(f.childDeleteCalls, "conversation history")
	return f.childErrs["conversation history"]
}

func (f *fakeCampaignRepo) GetConnection(_ context.Context, campaignID uuid.UUID) (*domain.Connection, error) {
	c, ok := f.connections[campaignID]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

// fakeAdRepo is an in-memory port.AdRepository.
type fakeAdRepo struct {
	bundles map[uuid.UUID]*port.AdBundle
	records map[uuid.UUID][]domain.PublishRecord
	names   map[string]struct{}

	createErr        error
	createConflicts  int
	setResultErr     error
	insertRecordErr  error
	created          []*domain.Ad
	setResultCalls   int
	insertedRecords  int
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{
		bundles: make(map[uuid.UUID]*port.AdBundle),
		records: make(map[uuid.UUID][]domain.PublishRecord),
		names:   make(map[string]struct{}),
	}
}

func (f *fakeAdRepo) GetAd(_ context.Context, id uuid.UUID) (*domain.Ad, error) {
	b, ok := f.bundles[id]
	if !ok {
		return nil, nil
	}
	clone := b.Ad
	return &clone, nil
}

func (f *fakeAdRepo) GetAdBundle(_ context.Context, id uuid.UUID) (*port.AdBundle, error) {
	b, ok := f.bundles[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeAdRepo) CreateAd(_ context.Context, ad *domain.Ad) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.createConflicts > 0 {
		f.createConflicts--
		return port.ErrNameTaken
	}
	if _, taken := f.names[strings.ToLower(ad.Name)]; taken {
		return port.ErrNameTaken
	}
	f.names[strings.ToLower(ad.Name)] = struct{}{}
	f.created = append(f.created, ad)
	return nil
}

func (f *fakeAdRepo) SetPublishResult(_ context.Context, adID uuid.UUID, metaAdID, status string) error {
	f.setResultCalls++
	if f.setResultErr != nil {
		return f.setResultErr
	}
	if b, ok := f.bundles[adID]; ok {
		b.Ad.MetaAdID = metaAdID
		b.Ad.Status = status
	}
	return nil
}

func (f *fakeAdRepo) InsertPublishRecord(_ context.Context, rec *domain.PublishRecord) error {
	if f.insertRecordErr != nil {
		return f.insertRecordErr
	}
	f.insertedRecords++
	f.records[rec.AdID] = append(f.records[rec.AdID], *rec)
	return nil
}

func (f *fakeAdRepo) ListPublishRecords(_ context.Context, adID uuid.UUID) ([]domain.PublishRecord, error) {
	return f.records[adID], nil
}

// fakeMetaClient records submissions and answers with a canned result.
type fakeMetaClient struct {
	result *port.MetaPublishResult
	err    error
	calls  int
	last   *domain.PublishData
}

func (f *fakeMetaClient) PublishCampaign(_ context.Context, _, _ string, payload *domain.PublishData) (*port.MetaPublishResult, error) {
	f.calls++
	f.last = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeQueue records enqueued reconciliation tasks.
type fakeQueue struct {
	tasks []domain.ReconcileTask
	err   error
}

func (f *fakeQueue) Enqueue(_ context.Context, task domain.ReconcileTask) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}
