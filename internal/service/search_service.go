package service

import (
	"log"

	"anoa.com/lesprivat/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService mirrors subjects and adverts into Meilisearch so the
// frontend can offer typo-tolerant search. The primary store stays
// authoritative; indexing failures are logged, never propagated, and a nil
// client turns the whole service into a no-op (local development without
// Meilisearch).
type SearchService interface {
	IndexSubject(subject *model.Subject)
	IndexAdvert(advert *model.Advert)
	DeleteAdvert(id string)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}

	if _, err := s.client.Index("subjects").UpdateSearchableAttributes(&[]string{"title", "description"}); err != nil {
		log.Printf("failed to configure subjects index: %v", err)
	}
	if _, err := s.client.Index("adverts").UpdateSearchableAttributes(&[]string{"subject_title", "description"}); err != nil {
		log.Printf("failed to configure adverts index: %v", err)
	}
}

func (s *searchService) IndexSubject(subject *model.Subject) {
	if s.client == nil {
		return
	}

	doc := map[string]interface{}{
		"id":          subject.ID.String(),
		"title":       s.sanitizer.Sanitize(subject.Title),
		"description": s.sanitizer.Sanitize(subject.Description),
	}
	if _, err := s.client.Index("subjects").AddDocuments([]map[string]interface{}{doc}, nil); err != nil {
		log.Printf("failed to index subject %s: %v", subject.ID, err)
	}
}

func (s *searchService) IndexAdvert(advert *model.Advert) {
	if s.client == nil {
		return
	}

	doc := map[string]interface{}{
		"id":            advert.ID.String(),
		"subject_title": s.sanitizer.Sanitize(advert.Subject.Title),
		"description":   s.sanitizer.Sanitize(advert.Description),
		"price":         advert.Price,
		"is_active":     advert.IsActive,
	}
	if _, err := s.client.Index("adverts").AddDocuments([]map[string]interface{}{doc}, nil); err != nil {
		log.Printf("failed to index advert %s: %v", advert.ID, err)
	}
}

func (s *searchService) DeleteAdvert(id string) {
	if s.client == nil {
		return
	}

	if _, err := s.client.Index("adverts").DeleteDocument(id); err != nil {
		log.Printf("failed to delete advert %s from index: %v", id, err)
	}
}
