package controller

import (
	"errors"
	"strings"

	"qodwa_backend/internals/features/users/user/dto"
	"qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

/* ============================================
   GET /api/a/users
   Query: ?q=&role=&is_teacher=&approval=&page=&per_page=
   ============================================ */
func (ctrl *UserAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{})

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(COALESCE(full_name,'')) LIKE ?", like, like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", strings.ToLower(role))
	}
	if isTeacher := c.Query("is_teacher"); isTeacher != "" {
		q = q.Where("is_teacher = ?", isTeacher == "true")
	}
	if approval := strings.TrimSpace(c.Query("approval")); approval != "" {
		q = q.Where("teacher_approval_status = ?", strings.ToUpper(approval))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, "Users fetched", dto.FromModels(users),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* ============================================
   GET /api/a/users/:id
   ============================================ */
func (ctrl *UserAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	return helper.JsonOK(c, "User fetched", dto.FromModel(&user))
}

/* ============================================
   PUT /api/a/users/:id
   ============================================ */
func (ctrl *UserAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	body.ApplyToModel(&user)
	if err := ctrl.DB.WithContext(c.Context()).Save(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Username already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helper.JsonUpdated(c, "User updated", dto.FromModel(&user))
}

/* ============================================
   DELETE /api/a/users/:id  (soft delete)
   ============================================ */
func (ctrl *UserAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.WithContext(c.Context()).Delete(&model.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}
