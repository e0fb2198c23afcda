package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/mytheresa/catalog-admin/app/apperrors"
	"github.com/mytheresa/catalog-admin/app/i18n"
	"github.com/mytheresa/catalog-admin/app/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates. Pages are addressed by
// file name, e.g. "category_index.html".
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

const langKey = "lang"

// Tag returns the request language chosen by the Language middleware.
func Tag(c *gin.Context) language.Tag {
	if v, ok := c.Get(langKey); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	tag, _ := i18n.ResolveTag(c.Request)
	return tag
}

// T returns the catalog lookup for the request language.
func T(c *gin.Context) func(key string, args ...any) string {
	return i18n.Translator(Tag(c))
}

// Page renders the named template with the common layout data: T, Lang
// and the pending flash message, which is consumed.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	t := T(c)

	data["T"] = t
	data["Lang"] = Tag(c).String()
	if key := popFlash(c); key != "" {
		if i18n.Has(key) {
			data["Flash"] = t(key)
		} else {
			data["Flash"] = key
		}
	}

	c.HTML(status, name, data)
}

// RenderError logs err and renders the error page with its status.
func RenderError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	log := logging.FromContext(c.Request.Context())

	if appErr.HTTPCode >= http.StatusInternalServerError {
		log.Error("request failed", "code", appErr.Code, "error", err, "path", c.Request.URL.Path)
	} else {
		log.Info("request rejected", "code", appErr.Code, "error", err, "path", c.Request.URL.Path)
	}

	t := T(c)
	Page(c, appErr.HTTPCode, "error.html", gin.H{
		"Title":   t("error.title", appErr.HTTPCode),
		"Status":  appErr.HTTPCode,
		"Message": t("error." + string(appErr.Code)),
	})
}
