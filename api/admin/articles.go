package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

// ListArticles includes drafts.
func (ar *AdminRoutesManager) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := ar.articleService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch articles", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(articles), gecho.Send())
}

func (ar *AdminRoutesManager) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid article id", ar.logger, w)
		return
	}

	article, err := ar.articleService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch article", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(article), gecho.Send())
}

func (ar *AdminRoutesManager) CreateArticle(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ArticleRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create article", ar.logger, w)
		return
	}

	article, err := ar.articleService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to create article", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Article created"),
		gecho.WithData(article),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid article id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ArticleRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update article", ar.logger, w)
		return
	}

	article, err := ar.articleService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update article", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Article updated"),
		gecho.WithData(article),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid article id", ar.logger, w)
		return
	}

	if err := ar.articleService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete article", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Article deleted"), gecho.Send())
}
