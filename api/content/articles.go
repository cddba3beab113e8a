package content

import (
	"net/http"

	"digistore_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (crm *ContentRoutesManager) FetchArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := crm.articleService.ListPublished(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch articles", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(articles),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) FetchArticle(w http.ResponseWriter, r *http.Request) {
	article, err := crm.articleService.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "Failed to fetch article", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(article),
		gecho.Send(),
	)
}
