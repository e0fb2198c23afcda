package profiles

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mytheresa/catalog-admin/app/apperrors"
	"github.com/mytheresa/catalog-admin/app/auth"
	"github.com/mytheresa/catalog-admin/app/logging"
	"github.com/mytheresa/catalog-admin/app/storage"
	"github.com/mytheresa/catalog-admin/app/web"
	"github.com/mytheresa/catalog-admin/models"
)

// ImageDir is the blob namespace for profile images.
const ImageDir = "profile"

type ProfileProvider interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	LatestProfileForUser(ctx context.Context, userID uint) (*models.Profile, error)
}

type UserProvider interface {
	FindUser(ctx context.Context, id uint) (*models.User, error)
}

type ProfileHandler struct {
	profiles ProfileProvider
	users    UserProvider
	store    storage.Storage
	assetURL string
}

func NewProfileHandler(p ProfileProvider, u UserProvider, s storage.Storage, assetURL string) *ProfileHandler {
	return &ProfileHandler{profiles: p, users: u, store: s, assetURL: assetURL}
}

// RegisterRoutes expects r to run the auth middleware.
func (h *ProfileHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/profile/create", h.HandleCreate)
	r.POST("/profile", h.HandleStore)
	r.GET("/profile", h.HandleShow)
}

func (h *ProfileHandler) currentUser(c *gin.Context) (*models.User, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		web.RenderError(c, apperrors.Unauthorized("not authenticated"))
		return nil, false
	}

	user, err := h.users.FindUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			web.RenderError(c, apperrors.NotFound(err, "User"))
		} else {
			web.RenderError(c, apperrors.Internal(err))
		}
		return nil, false
	}
	return user, true
}

func (h *ProfileHandler) HandleCreate(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	web.Page(c, http.StatusOK, "profile_create.html", gin.H{
		"Title":     web.T(c)("profile.create.title", user.Name),
		"FirstName": "",
	})
}

func (h *ProfileHandler) HandleStore(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	firstName := strings.TrimSpace(c.PostForm("first_name"))

	fh, err := formFile(c, "image")
	if err != nil {
		if web.IsTooLarge(err) {
			web.RenderError(c, apperrors.TooLarge(err))
		} else {
			web.RenderError(c, apperrors.BadRequest(err))
		}
		return
	}

	var image string
	if fh != nil {
		image, err = storage.PutUpload(ctx, h.store, ImageDir, fh)
		if err != nil {
			web.RenderError(c, apperrors.Storage(err))
			return
		}
	}

	profile := &models.Profile{
		UserID:    user.ID,
		FirstName: firstName,
		Image:     image,
	}
	if err := h.profiles.CreateProfile(ctx, profile); err != nil {
		if image != "" {
			key := storage.Key(ImageDir, image)
			if delErr := h.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
				logging.FromContext(ctx).Warn("failed to delete profile image", "key", key, "error", delErr)
			}
		}
		web.RenderError(c, apperrors.Internal(err))
		return
	}

	logging.FromContext(ctx).Info("profile created", "profile_id", profile.ID)
	web.Redirect(c, "/profile", "flash.profile_created")
}

func (h *ProfileHandler) HandleShow(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		web.RenderError(c, apperrors.Unauthorized("not authenticated"))
		return
	}

	profile, err := h.profiles.LatestProfileForUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			web.RenderError(c, apperrors.NotFound(err, "Profile"))
		} else {
			web.RenderError(c, apperrors.Internal(err))
		}
		return
	}

	web.Page(c, http.StatusOK, "profile_show.html", gin.H{
		"Title":     web.T(c)("profile.show.title"),
		"FirstName": profile.FirstName,
		"ImageURL":  ImageURL(h.assetURL, profile.Image),
	})
}

func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}
