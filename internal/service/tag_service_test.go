package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"linkbucket/internal/models"
	"linkbucket/pkg/utils"
)

type memoryTagRepository struct {
	nextID     uint
	tags       []models.Tag
	links      map[uint]int64
	failWith   error
	calls      int
	countCalls int
}

func newMemoryTagRepository() *memoryTagRepository {
	return &memoryTagRepository{links: make(map[uint]int64)}
}

func (r *memoryTagRepository) FirstOrCreate(_ context.Context, tags []models.Tag) ([]models.Tag, error) {
	r.calls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	result := make([]models.Tag, 0, len(tags))
	for _, candidate := range tags {
		if existing := r.find(candidate.UserID, candidate.Slug); existing != nil {
			result = append(result, *existing)
			continue
		}
		r.nextID++
		candidate.ID = r.nextID
		r.tags = append(r.tags, candidate)
		result = append(result, candidate)
	}
	return result, nil
}

func (r *memoryTagRepository) GetBySlug(_ context.Context, userID uint, slug string) (*models.Tag, error) {
	if tag := r.find(userID, slug); tag != nil {
		copied := *tag
		return &copied, nil
	}
	return &models.Tag{}, gorm.ErrRecordNotFound
}

func (r *memoryTagRepository) ListByUser(_ context.Context, userID uint) ([]models.Tag, error) {
	var result []models.Tag
	for _, tag := range r.tags {
		if tag.UserID == userID {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (r *memoryTagRepository) CountLinks(_ context.Context, tagIDs []uint) (map[uint]int64, error) {
	r.countCalls++
	counts := make(map[uint]int64, len(tagIDs))
	for _, id := range tagIDs {
		if total, ok := r.links[id]; ok {
			counts[id] = total
		}
	}
	return counts, nil
}

func (r *memoryTagRepository) find(userID uint, slug string) *models.Tag {
	for i := range r.tags {
		if r.tags[i].UserID == userID && r.tags[i].Slug == slug {
			return &r.tags[i]
		}
	}
	return nil
}

func TestTagService_CreateTagsNormalizesAndDeduplicates(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)

	tags, err := svc.CreateTags(context.Background(), 1, []string{"  Web   Dev ", "", "web-dev", "Golang", "   "})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d: %+v", len(tags), tags)
	}
	if tags[0].Name != "Web Dev" || tags[0].Slug != "web-dev" {
		t.Fatalf("unexpected first tag %+v", tags[0])
	}
	if tags[1].Name != "Golang" || tags[1].Slug != "golang" {
		t.Fatalf("unexpected second tag %+v", tags[1])
	}
	for _, tag := range tags {
		if tag.UserID != 1 {
			t.Fatalf("expected user id 1, got %d", tag.UserID)
		}
	}
}

func TestTagService_CreateTagsReusesExisting(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	first, err := svc.CreateTags(ctx, 1, []string{"News"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}
	second, err := svc.CreateTags(ctx, 1, []string{"news", "Reading"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}

	if second[0].ID != first[0].ID {
		t.Fatalf("expected existing tag to be reused, got ids %d and %d", first[0].ID, second[0].ID)
	}
	if second[0].Name != "News" {
		t.Fatalf("expected original name to be kept, got %q", second[0].Name)
	}

	other, err := svc.CreateTags(ctx, 2, []string{"News"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}
	if other[0].ID == first[0].ID {
		t.Fatalf("expected tags to be scoped per user")
	}
}

func TestTagService_CreateTagsRejectsInvalidInput(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	if _, err := svc.CreateTags(ctx, 0, []string{"go"}); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if _, err := svc.CreateTags(ctx, 1, []string{" ", ""}); !errors.Is(err, ErrInvalidTagName) {
		t.Fatalf("expected ErrInvalidTagName for blank names, got %v", err)
	}
	if _, err := svc.CreateTags(ctx, 1, []string{"go", "!!!"}); !errors.Is(err, ErrInvalidTagName) {
		t.Fatalf("expected ErrInvalidTagName for punctuation-only name, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("expected repository to be untouched, got %d calls", repo.calls)
	}
}

func TestTagService_CreateTagsWrapsRepositoryErrors(t *testing.T) {
	repo := newMemoryTagRepository()
	repo.failWith = errors.New("connection reset")
	svc := NewTagService(repo, nil)

	_, err := svc.CreateTags(context.Background(), 1, []string{"go"})
	if err == nil || !errors.Is(err, repo.failWith) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestTagService_GetTag(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	if _, err := svc.CreateTags(ctx, 1, []string{"Open Source"}); err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}

	tag, err := svc.GetTag(ctx, 1, "open-source")
	if err != nil {
		t.Fatalf("GetTag returned error: %v", err)
	}
	if tag.Name != "Open Source" {
		t.Fatalf("unexpected tag %+v", tag)
	}

	if _, err := svc.GetTag(ctx, 2, "open-source"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound for other user, got %v", err)
	}
	if _, err := svc.GetTag(ctx, 1, "---"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound for empty slug, got %v", err)
	}
}

func TestTagService_ResponsesIncludeCounts(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	tags, err := svc.CreateTags(ctx, 1, []string{"go", "rust"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}
	repo.links[tags[0].ID] = 3

	responses, err := svc.Responses(ctx, 1)
	if err != nil {
		t.Fatalf("Responses returned error: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if responses[0] != (models.ResponseTag{Name: "go", Slug: "go", Count: 3}) {
		t.Fatalf("unexpected response %+v", responses[0])
	}
	if responses[1].Count != 0 {
		t.Fatalf("expected zero count for unused tag, got %d", responses[1].Count)
	}

	single, err := svc.Response(ctx, &tags[0])
	if err != nil {
		t.Fatalf("Response returned error: %v", err)
	}
	if single.Count != 3 {
		t.Fatalf("expected count 3, got %d", single.Count)
	}
}

func TestTagService_GetTagsEmpty(t *testing.T) {
	svc := NewTagService(newMemoryTagRepository(), nil)
	tags, err := svc.GetTags(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetTags returned error: %v", err)
	}
	if tags == nil || len(tags) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tags)
	}
}

func TestTagService_ResponsesForBatchesCounts(t *testing.T) {
	repo := newMemoryTagRepository()
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	tags, err := svc.CreateTags(ctx, 1, []string{"go", "rust", "zig"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}
	repo.links[tags[2].ID] = 4

	responses, err := svc.ResponsesFor(ctx, tags)
	if err != nil {
		t.Fatalf("ResponsesFor returned error: %v", err)
	}
	if repo.countCalls != 1 {
		t.Fatalf("expected a single count query, got %d", repo.countCalls)
	}
	if len(responses) != 3 || responses[2].Slug != "zig" || responses[2].Count != 4 {
		t.Fatalf("unexpected responses %+v", responses)
	}
}

func TestTagService_CreateTagsLongNames(t *testing.T) {
	svc := NewTagService(newMemoryTagRepository(), nil)

	tags, err := svc.CreateTags(context.Background(), 1, []string{strings.Repeat("ß", 64), "Чтение"})
	if err != nil {
		t.Fatalf("CreateTags returned error: %v", err)
	}
	if len(tags[0].Slug) > utils.MaxSlugLength {
		t.Fatalf("slug exceeds column width: %d bytes", len(tags[0].Slug))
	}
	if tags[1].Slug != "chtenie" {
		t.Fatalf("expected transliterated slug, got %q", tags[1].Slug)
	}
}
