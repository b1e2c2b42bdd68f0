package feed

import (
	"fmt"

	"github.com/dreamlabs/dreams-server/app/database"
)

// Service assembles the content source for each tab and hands it to the
// generator. The tracker only needs a content list and a reward amount
// per item; whether the list originates from the curated catalog or
// user-created posts is invisible to it.
type Service struct {
	postRepo  database.PostRepository
	generator *Generator
}

func NewService(postRepo database.PostRepository) *Service {
	return &Service{
		postRepo:  postRepo,
		generator: NewGenerator(),
	}
}

// Page builds one shuffled feed batch for the given tab. The for-you tab
// merges the user's own uploads into the curated set; explore narrows the
// catalog by category; following serves posts from followed creators.
func (s *Service) Page(userID string, tab Tab, category string) ([]ContentItem, error) {
	var posts []database.Post
	var err error

	switch tab {
	case TabFollowing:
		posts, err = s.postRepo.GetFollowedPosts(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load following feed: %w", err)
		}
	case TabExplore:
		posts, err = s.postRepo.GetCatalogPosts(category)
		if err != nil {
			return nil, fmt.Errorf("failed to load explore feed: %w", err)
		}
	default:
		posts, err = s.postRepo.GetCatalogPosts("")
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog posts: %w", err)
		}
		own, err := s.postRepo.GetPostsByCreator(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load own posts: %w", err)
		}
		posts = append(posts, own...)
	}

	return s.generator.Page(posts), nil
}
