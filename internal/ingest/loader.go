package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"courseqa/internal/domain"
)

// courseSection mirrors one entry of the course export: a JSON object
// keyed by section name.
type courseSection struct {
	Content   string `json:"content"`
	URL       string `json:"url"`
	ScrapedAt string `json:"scraped_at"`
}

// discourseExport mirrors a forum export file.
type discourseExport struct {
	Topics []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Posts []struct {
			CleanedText string `json:"cleaned_text"`
			Username    string `json:"username"`
			PostNumber  int    `json:"post_number"`
			CreatedAt   string `json:"created_at"`
		} `json:"posts"`
	} `json:"topics"`
}

// minPostChars drops near-empty forum posts before chunking.
const minPostChars = 50

// LoadCourseFile reads a course-content export (sections keyed by name)
// and returns one document per section, ordered by section name.
func LoadCourseFile(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course file: %w", err)
	}
	sections := map[string]courseSection{}
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parse course file %s: %w", path, err)
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var docs []domain.Document
	for _, name := range names {
		sec := sections[name]
		if sec.Content == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:   name,
			Text: sec.Content,
			Metadata: domain.Metadata{
				domain.MetaSource:    name,
				domain.MetaURL:       sec.URL,
				domain.MetaType:      domain.TypeCourseContent,
				domain.MetaScrapedAt: sec.ScrapedAt,
			},
		})
	}
	return docs, nil
}

// LoadDiscourseFiles reads every forum export matching the glob and
// returns one document per post, skipping posts shorter than minPostChars.
// baseURL is the forum origin used to derive topic URLs.
func LoadDiscourseFiles(glob, baseURL string) ([]domain.Document, error) {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("bad discourse glob %q: %w", glob, err)
	}
	sort.Strings(paths)

	var docs []domain.Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read discourse file: %w", err)
		}
		var export discourseExport
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, fmt.Errorf("parse discourse file %s: %w", path, err)
		}
		for _, topic := range export.Topics {
			for _, post := range topic.Posts {
				if len(post.CleanedText) <= minPostChars {
					continue
				}
				source := fmt.Sprintf("discourse_topic_%d", topic.ID)
				docs = append(docs, domain.Document{
					ID:   fmt.Sprintf("%s_post_%d", source, post.PostNumber),
					Text: post.CleanedText,
					Metadata: domain.Metadata{
						domain.MetaSource:     source,
						domain.MetaURL:        fmt.Sprintf("%s/t/%d", baseURL, topic.ID),
						domain.MetaType:       domain.TypeDiscoursePost,
						domain.MetaTopicID:    strconv.Itoa(topic.ID),
						domain.MetaUsername:   post.Username,
						domain.MetaPostNumber: strconv.Itoa(post.PostNumber),
						domain.MetaCreatedAt:  post.CreatedAt,
					},
				})
			}
		}
	}
	return docs, nil
}
