package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/middleware"
)

// StudentController handles administrative student operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// UpdateStudent edits a student's identity fields
// @Summary Update a student
// @Description Updates a student's name, admission number or department. Amounts cannot be edited here; they only move through contribution submissions and payments.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update; empty fields are left unchanged"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing session"
// @Failure 404 {object} dto.ErrorResponse "Student or department not found"
// @Failure 409 {object} dto.ErrorResponse "Admission number already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.BindingErrorDetail(err, "Invalid student data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteStudents removes students by id, or all of them
// @Summary Delete students
// @Description Deletes the students named by 'ids', or every student when 'deleteAll' is true. Their contribution ledgers go with them.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteStudentsRequest true "Student IDs, or deleteAll"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Students deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students [delete]
func (c *StudentController) DeleteStudents(ctx *gin.Context) {
	var req dto.DeleteStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.BindingErrorDetail(err, "Invalid request. Provide 'ids' array or 'deleteAll': true")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	deleted, err := c.studentService.DeleteStudents(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: fmt.Sprintf("Deleted %d student(s)", deleted)},
		Timestamp: time.Now(),
	})
}
