package services

import (
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/scolaris/scolaris-api/internal/config"
	"github.com/scolaris/scolaris-api/internal/models"
)

type SearchService struct {
	client *meilisearch.Client
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure programs index exists (best effort)
	_, err := client.GetIndex("programs")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "programs",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch programs index: %v", err)
		}

		_, err = client.Index("programs").UpdateFilterableAttributes(&[]string{"mention_id", "program_type_id", "code"})
		if err != nil {
			log.Printf("Failed to update programs filterable attributes: %v", err)
		}

		_, err = client.Index("programs").UpdateSearchableAttributes(&[]string{"code", "label", "abbreviation"})
		if err != nil {
			log.Printf("Failed to update programs searchable attributes: %v", err)
		}
	}

	// Ensure students index exists (best effort)
	_, err = client.GetIndex("students")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "students",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch students index: %v", err)
		}

		_, err = client.Index("students").UpdateSearchableAttributes(&[]string{"last_name", "first_names", "registration_number", "email"})
		if err != nil {
			log.Printf("Failed to update students searchable attributes: %v", err)
		}
	}

	return &SearchService{client: client}
}

func (s *SearchService) IndexPrograms(programs []models.Program) error {
	if len(programs) == 0 {
		return nil
	}
	_, err := s.client.Index("programs").AddDocuments(programs)
	return err
}

func (s *SearchService) IndexStudents(students []models.Student) error {
	if len(students) == 0 {
		return nil
	}
	_, err := s.client.Index("students").AddDocuments(students)
	return err
}

func (s *SearchService) SearchPrograms(query string, mentionID string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 50,
	}

	if mentionID != "" {
		request.Filter = "mention_id = " + mentionID
	}

	return s.client.Index("programs").Search(query, request)
}

func (s *SearchService) SearchStudents(query string) (*meilisearch.SearchResponse, error) {
	return s.client.Index("students").Search(query, &meilisearch.SearchRequest{Limit: 50})
}

func (s *SearchService) GetProgramCount() (int64, error) {
	stats, err := s.client.Index("programs").GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
