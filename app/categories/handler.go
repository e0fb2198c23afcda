package categories

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mytheresa/catalog-admin/app/apperrors"
	"github.com/mytheresa/catalog-admin/app/logging"
	"github.com/mytheresa/catalog-admin/app/slug"
	"github.com/mytheresa/catalog-admin/app/storage"
	"github.com/mytheresa/catalog-admin/app/validation"
	"github.com/mytheresa/catalog-admin/app/web"
	"github.com/mytheresa/catalog-admin/models"
)

const (
	// PerPage is the fixed list page size.
	PerPage = 5
	// ImageDir is the blob namespace for category images.
	ImageDir = "category"
)

var imageMimes = []string{"jpeg", "png", "jpg"}

type storeForm struct {
	Name string `form:"name" validate:"required,max=255"`
}

// Update allows shorter names and smaller images than create.
type updateForm struct {
	Name string `form:"name" validate:"required,max=100"`
}

var (
	storeImageRule  = validation.FileRule{Required: true, Image: true, Mimes: imageMimes, MaxKB: 5120}
	updateImageRule = validation.FileRule{Image: true, Mimes: imageMimes, MaxKB: 2048}
)

// CategoryRow is a category as shown in the list.
type CategoryRow struct {
	ID       uint
	Name     string
	Slug     string
	ImageURL string
}

type CategoryProvider interface {
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category, columns ...string) error
	DeleteCategory(ctx context.Context, category *models.Category) error
	ListRecentCategories(ctx context.Context, page, perPage int) ([]models.Category, models.Pagination, error)
}

type CategoryHandler struct {
	repo     CategoryProvider
	store    storage.Storage
	validate *validation.Validator
}

func NewCategoryHandler(r CategoryProvider, s storage.Storage, v *validation.Validator) *CategoryHandler {
	return &CategoryHandler{repo: r, store: s, validate: v}
}

func (h *CategoryHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/category")
	g.GET("", h.HandleIndex)
	g.GET("/create", h.HandleCreate)
	g.POST("", h.HandleStore)
	g.GET("/:id/edit", h.HandleEdit)
	g.PUT("/:id", h.HandleUpdate)
	g.PATCH("/:id", h.HandleUpdate)
	g.DELETE("/:id", h.HandleDestroy)
}

func (h *CategoryHandler) imageURL(image string) string {
	if image == "" {
		return ""
	}
	return h.store.URL(storage.Key(ImageDir, image))
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *CategoryHandler) HandleIndex(c *gin.Context) {
	page := parsePage(c.Query("page"))

	categories, pagination, err := h.repo.ListRecentCategories(c.Request.Context(), page, PerPage)
	if err != nil {
		web.RenderError(c, apperrors.Internal(err))
		return
	}

	rows := make([]CategoryRow, len(categories))
	for i, cat := range categories {
		rows[i] = CategoryRow{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			ImageURL: h.imageURL(cat.Image),
		}
	}

	web.Page(c, http.StatusOK, "category_index.html", gin.H{
		"Title":      web.T(c)("category.index.title"),
		"Categories": rows,
		"Pagination": pagination,
	})
}

func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, "", map[string]string{})
}

func (h *CategoryHandler) renderCreate(c *gin.Context, status int, name string, errs map[string]string) {
	web.Page(c, status, "category_create.html", gin.H{
		"Title":  web.T(c)("category.create.title"),
		"Name":   name,
		"Errors": errs,
	})
}

func (h *CategoryHandler) HandleStore(c *gin.Context) {
	var form storeForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, bindError(err))
		return
	}
	form.Name = strings.TrimSpace(form.Name)

	fh, err := formFile(c, "image")
	if err != nil {
		web.RenderError(c, bindError(err))
		return
	}

	errs, err := h.check(form, fh, storeImageRule)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	if len(errs) > 0 {
		h.renderCreate(c, http.StatusUnprocessableEntity, form.Name, errs.Messages(web.T(c), "category"))
		return
	}

	ctx := c.Request.Context()
	image, err := storage.PutUpload(ctx, h.store, ImageDir, fh)
	if err != nil {
		web.RenderError(c, apperrors.Storage(err))
		return
	}

	category := &models.Category{
		Name:  form.Name,
		Slug:  slug.Make(form.Name),
		Image: image,
	}
	if err := h.repo.CreateCategory(ctx, category); err != nil {
		h.discard(ctx, image)
		web.RenderError(c, apperrors.Internal(err))
		return
	}

	logging.FromContext(ctx).Info("category created", "category_id", category.ID)
	web.Redirect(c, "/category", "flash.category_created")
}

func (h *CategoryHandler) HandleEdit(c *gin.Context) {
	category, ok := h.load(c)
	if !ok {
		return
	}

	web.Page(c, http.StatusOK, "category_edit.html", gin.H{
		"Title":    web.T(c)("category.edit.title"),
		"ID":       category.ID,
		"Name":     category.Name,
		"ImageURL": h.imageURL(category.Image),
		"Errors":   map[string]string{},
	})
}

func (h *CategoryHandler) HandleUpdate(c *gin.Context) {
	category, ok := h.load(c)
	if !ok {
		return
	}

	var form updateForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, bindError(err))
		return
	}
	form.Name = strings.TrimSpace(form.Name)

	fh, err := formFile(c, "image")
	if err != nil {
		web.RenderError(c, bindError(err))
		return
	}

	errs, err := h.check(form, fh, updateImageRule)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	if len(errs) > 0 {
		web.Page(c, http.StatusUnprocessableEntity, "category_edit.html", gin.H{
			"Title":    web.T(c)("category.edit.title"),
			"ID":       category.ID,
			"Name":     form.Name,
			"ImageURL": h.imageURL(category.Image),
			"Errors":   errs.Messages(web.T(c), ""),
		})
		return
	}

	ctx := c.Request.Context()
	category.Name = form.Name
	category.Slug = slug.Make(form.Name)

	if fh == nil {
		if err := h.repo.UpdateCategory(ctx, category, "name", "slug"); err != nil {
			web.RenderError(c, repoError(err))
			return
		}
		web.Redirect(c, "/category", "")
		return
	}

	image, err := storage.PutUpload(ctx, h.store, ImageDir, fh)
	if err != nil {
		web.RenderError(c, apperrors.Storage(err))
		return
	}

	previous := category.Image
	category.Image = image
	if err := h.repo.UpdateCategory(ctx, category, "name", "slug", "image"); err != nil {
		h.discard(ctx, image)
		web.RenderError(c, repoError(err))
		return
	}
	if previous != "" {
		h.discard(ctx, previous)
	}

	logging.FromContext(ctx).Info("category image replaced", "category_id", category.ID)
	web.Redirect(c, "/category", "flash.category_updated")
}

func (h *CategoryHandler) HandleDestroy(c *gin.Context) {
	category, ok := h.load(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.repo.DeleteCategory(ctx, category); err != nil {
		web.RenderError(c, repoError(err))
		return
	}
	if category.Image != "" {
		h.discard(ctx, category.Image)
	}

	logging.FromContext(ctx).Info("category deleted", "category_id", category.ID)
	web.Redirect(c, "/category", "flash.category_deleted")
}

// load resolves the :id parameter, rendering the error page when it fails.
func (h *CategoryHandler) load(c *gin.Context) (*models.Category, bool) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		web.RenderError(c, apperrors.NotFound(nil, "Category"))
		return nil, false
	}

	category, err := h.repo.FindCategory(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, repoError(err))
		return nil, false
	}
	return category, true
}

func (h *CategoryHandler) check(form any, fh *multipart.FileHeader, rule validation.FileRule) (validation.Errors, error) {
	errs, err := h.validate.Struct(form)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if errs == nil {
		errs = validation.Errors{}
	}

	fe, err := validation.CheckFile("image", fh, rule)
	if err != nil {
		return nil, apperrors.BadRequest(err)
	}
	if fe != nil {
		errs.Add(*fe)
	}
	return errs, nil
}

// discard deletes an image blob, logging instead of failing.
func (h *CategoryHandler) discard(ctx context.Context, image string) {
	ctx = context.WithoutCancel(ctx)
	key := storage.Key(ImageDir, image)
	if err := h.store.Delete(ctx, key); err != nil {
		logging.FromContext(ctx).Warn("failed to delete category image", "key", key, "error", err)
	}
}

func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}

func bindError(err error) error {
	if web.IsTooLarge(err) {
		return apperrors.TooLarge(err)
	}
	return apperrors.BadRequest(err)
}

func repoError(err error) error {
	if errors.Is(err, models.ErrCategoryNotFound) {
		return apperrors.NotFound(err, "Category")
	}
	return apperrors.Internal(err)
}
