package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// postRepository handles database operations for posts
type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `p.id, p.creator_id, u.username, p.caption, p.media_kind,
	p.video_url, p.image_urls, p.category, p.monetized, p.reward_cents,
	p.likes_count, p.comments_count, p.shares_count, p.source, p.catalog_name,
	p.created_at, p.updated_at`

const postSelect = `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.creator_id`

func scanPost(scanner interface {
	Scan(dest ...interface{}) error
}) (*Post, error) {
	var p Post
	err := scanner.Scan(
		&p.ID, &p.CreatorID, &p.CreatorHandle, &p.Caption, &p.MediaKind,
		&p.VideoURL, pq.Array(&p.ImageURLs), &p.Category, &p.Monetized, &p.RewardCents,
		&p.LikesCount, &p.CommentsCount, &p.SharesCount, &p.Source, &p.CatalogName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) queryPosts(query string, args ...interface{}) ([]Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

func (r *postRepository) CreatePost(post NewPost) (*Post, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO posts (creator_id, caption, media_kind, video_url, image_urls,
			category, monetized, reward_cents, source, catalog_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, post.CreatorID, post.Caption, post.MediaKind, post.VideoURL, pq.Array(post.ImageURLs),
		post.Category, post.Monetized, post.RewardCents, post.Source, post.CatalogName).Scan(&id)

	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return r.GetPost(id)
}

// UpsertCatalogPost registers a curated catalog entry, updating it in
// place when the catalog file changed.
func (r *postRepository) UpsertCatalogPost(post NewPost) (*Post, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO posts (creator_id, caption, media_kind, video_url, image_urls,
			category, monetized, reward_cents, source, catalog_name,
			likes_count, comments_count, shares_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'catalog', $9, $10, $11, $12)
		ON CONFLICT (catalog_name) WHERE catalog_name IS NOT NULL DO UPDATE SET
			caption = EXCLUDED.caption,
			media_kind = EXCLUDED.media_kind,
			video_url = EXCLUDED.video_url,
			image_urls = EXCLUDED.image_urls,
			category = EXCLUDED.category,
			monetized = EXCLUDED.monetized,
			reward_cents = EXCLUDED.reward_cents,
			updated_at = NOW()
		RETURNING id
	`, post.CreatorID, post.Caption, post.MediaKind, post.VideoURL, pq.Array(post.ImageURLs),
		post.Category, post.Monetized, post.RewardCents, post.CatalogName,
		post.LikesCount, post.CommentsCount, post.SharesCount).Scan(&id)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert catalog post: %w", err)
	}
	return r.GetPost(id)
}

func (r *postRepository) GetPost(id string) (*Post, error) {
	row := r.db.QueryRow(postSelect+` WHERE p.id = $1`, id)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (r *postRepository) GetPostsByCreator(creatorID string) ([]Post, error) {
	posts, err := r.queryPosts(postSelect+` WHERE p.creator_id = $1 ORDER BY p.created_at DESC`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by creator: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetCatalogPosts(category string) ([]Post, error) {
	var posts []Post
	var err error
	if category == "" {
		posts, err = r.queryPosts(postSelect + ` WHERE p.source = 'catalog' ORDER BY p.created_at DESC`)
	} else {
		posts, err = r.queryPosts(postSelect+` WHERE p.source = 'catalog' AND p.category = $1 ORDER BY p.created_at DESC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetFollowedPosts(followerID string) ([]Post, error) {
	posts, err := r.queryPosts(postSelect+`
		JOIN follows f ON f.creator_id = p.creator_id
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC`, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) IncrementShareCount(postID string) error {
	_, err := r.db.Exec(`
		UPDATE posts SET shares_count = shares_count + 1, updated_at = NOW()
		WHERE id = $1
	`, postID)

	if err != nil {
		return fmt.Errorf("failed to increment share count: %w", err)
	}
	return nil
}

func (r *postRepository) GetPostCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}
