package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/app/services"
	"github.com/yigit/abimath/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents returns every student in short form
// @Summary List students
// @Description Returns the id, class_id and name of every student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentShortListResponse
// @Failure 401 {object} dto.AuthErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "There are no students"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStudentShortList(students))
}

// ListStudentsDetail returns every student in long form
// @Summary List students with results
// @Description Returns every student including the four result grids
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentLongListResponse
// @Failure 401 {object} dto.AuthErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "There are no students"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /students-detail [get]
func (c *StudentController) ListStudentsDetail(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStudentLongList(students...))
}

// GetStudent returns one student in long form
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.StudentLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStudentLongList(student))
}

// ExportStudentResults downloads the student's grids as a workbook
// @Summary Export a student's results
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/results.xlsx [get]
func (c *StudentController) ExportStudentResults(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeWorkbook(ctx, fmt.Sprintf("student-%d-results.xlsx", student.ID), student.Name, student.ResultSet)
}

// CreateStudent adds a student to a class
// @Summary Create a student
// @Description Creates a student with all result grids set to zero. The name must be unique within the class.
// @Tags students
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student name and class"
// @Success 200 {object} dto.StudentLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, blank or duplicate input"
// @Failure 401 {object} dto.AuthErrorResponse "Missing or invalid token"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := middleware.BindRequest(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("studentID", student.ID).Int64("classID", student.ClassID).Msg("Student created")
	ctx.JSON(http.StatusOK, dto.NewStudentLongList(student))
}

// UpdateStudent partially updates a student
// @Summary Update a student
// @Description Applies only the supplied fields. Result grids must be 10×10.
// @Tags students
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.StudentLongListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := middleware.BindRequest(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("studentID", id).Msg("Student updated")
	ctx.JSON(http.StatusOK, dto.NewStudentLongList(student))
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Database error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	audit(ctx).Int64("studentID", id).Msg("Student deleted")
	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: true, Delete: id})
}

// ListClassStudents returns the students of one class in short form
// @Summary List the students of a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.StudentShortListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Class not found or empty"
// @Router /classes/{id}/students [get]
func (c *StudentController) ListClassStudents(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.ListStudentsByClass(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStudentShortList(students))
}
