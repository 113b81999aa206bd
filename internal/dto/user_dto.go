package dto

// UpdateUserRequest carries a partial update. Pointer fields distinguish
// "absent, leave unchanged" from "present, apply" so a field can be
// cleared explicitly.
type UpdateUserRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	ProfileImageURL *string `json:"profile_image_url"`
	Role            *string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
