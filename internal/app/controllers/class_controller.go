package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/app/services"
	"github.com/yigit/abimath/internal/middleware"
)

// ClassController handles class-related operations
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// ListClasses returns every class in short form
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassShortListResponse
// @Failure 404 {object} dto.ErrorResponse "There are no classes"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewClassShortList(classes))
}

// ListClassesDetail returns every class in long form
// @Summary List classes with results
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassLongListResponse
// @Failure 404 {object} dto.ErrorResponse "There are no classes"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /classes-detail [get]
func (c *ClassController) ListClassesDetail(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewClassLongList(classes...))
}

// GetClass returns one class in long form
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.ClassLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewClassLongList(class))
}

// ExportClassResults downloads the class grids as a workbook
// @Summary Export a class's results
// @Tags classes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id}/results.xlsx [get]
func (c *ClassController) ExportClassResults(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeWorkbook(ctx, fmt.Sprintf("class-%d-results.xlsx", class.ID), class.Name, class.ResultSet)
}

// CreateClass adds a class
// @Summary Create a class
// @Description Creates a class with all result grids set to zero. Class names are unique.
// @Tags classes
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class name"
// @Success 200 {object} dto.ClassLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, blank or duplicate name"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := middleware.BindRequest(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("classID", class.ID).Msg("Class created")
	ctx.JSON(http.StatusOK, dto.NewClassLongList(class))
}

// UpdateClass partially updates a class
// @Summary Update a class
// @Tags classes
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param request body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} dto.ClassLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /classes/{id} [patch]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := middleware.BindRequest(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, err := c.classService.UpdateClass(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("classID", id).Msg("Class updated")
	ctx.JSON(http.StatusOK, dto.NewClassLongList(class))
}

// DeleteClass removes a class that has no students
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse "Class still has students"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("classID", id).Msg("Class deleted")
	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: true, Delete: id})
}
