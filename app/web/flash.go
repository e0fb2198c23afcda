package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a one-shot message key read by the next rendered page.
func SetFlash(c *gin.Context, key string) {
	c.SetCookie(flashCookie, key, 60, "/", "", false, true)
}

func popFlash(c *gin.Context) string {
	key, err := c.Cookie(flashCookie)
	if err != nil || key == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return key
}

// Redirect answers with 303 See Other so the browser follows with a GET.
func Redirect(c *gin.Context, location, flashKey string) {
	if flashKey != "" {
		SetFlash(c, flashKey)
	}
	c.Redirect(http.StatusSeeOther, location)
}
