package services

import (
	"context"
	"fmt"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

type ArticleService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewArticleService(logger *gecho.Logger, db *database.DB) *ArticleService {
	return &ArticleService{
		logger: logger,
		db:     db,
	}
}

func (as *ArticleService) ListPublished(ctx context.Context) ([]tables.Article, error) {
	articles, err := database.Query[tables.Article](as.db).
		Where("is_published", true).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// GetPublished finds a published article by slug.
func (as *ArticleService) GetPublished(ctx context.Context, slug string) (*tables.Article, error) {
	article, err := database.Query[tables.Article](as.db).
		Where("slug", slug).
		Where("is_published", true).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	if article == nil {
		return nil, &lib.NotFoundError{Resource: "article", Key: slug, Message: "Artikel tidak ditemukan"}
	}
	return article, nil
}

func (as *ArticleService) List(ctx context.Context) ([]tables.Article, error) {
	articles, err := database.Query[tables.Article](as.db).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

func (as *ArticleService) Get(ctx context.Context, id int64) (*tables.Article, error) {
	return findByID[tables.Article](ctx, as.db, "article", id)
}

func (as *ArticleService) Create(ctx context.Context, req *structs.ArticleRequest) (*tables.Article, error) {
	slug, err := slugOr(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &tables.Article{
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Image:       req.Image,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Create(as.db, ctx, article); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Slug artikel sudah digunakan")
	}

	as.logger.Info("Article created", gecho.Field("slug", article.Slug))
	return article, nil
}

func (as *ArticleService) Update(ctx context.Context, id int64, req *structs.ArticleRequest) (*tables.Article, error) {
	article, err := as.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := slugOr(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Slug = slug
	article.Content = req.Content
	article.Image = req.Image
	article.IsPublished = req.IsPublished
	article.UpdatedAt = time.Now().UTC()

	if _, err := database.Query[tables.Article](as.db).Where("id", id).Update(ctx, article); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Slug artikel sudah digunakan")
	}
	return article, nil
}

func (as *ArticleService) Delete(ctx context.Context, id int64) error {
	return deleteByID[tables.Article](ctx, as.db, "article", id)
}
